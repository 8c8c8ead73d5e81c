package client

import (
	"testing"

	"github.com/sirupsen/logrus"
	logTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

func TestParseBalance(t *testing.T) {
	got, err := ParseBalance(`{"result":{"value":42}}`)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	got, err = ParseBalance(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":18446744073709551615},"id":1}`)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), got)

	for _, bad := range []string{
		`{"result":{}}`,
		`{"result":{"value":"42"}}`,
		`{"result":{"value":-1}}`,
		`{"result":{"value":1.5}}`,
		`{"error":{"code":-32602,"message":"Invalid param"}}`,
		`{"result":`,
		``,
	} {
		_, err := ParseBalance(bad)
		require.ErrorIs(t, err, apperr.ErrJSONParse, bad)
	}
}

func TestParseBlockhash(t *testing.T) {
	got, err := ParseBlockhash(`{"result":{"context":{"slot":2},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":3090}}}`)
	require.NoError(t, err)
	assert.Equal(t, "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", got)

	for _, bad := range []string{
		`{"result":{"value":{}}}`,
		`{"result":{"value":{"blockhash":7}}}`,
		`{"result":{}}`,
		`not json`,
	} {
		_, err := ParseBlockhash(bad)
		require.ErrorIs(t, err, apperr.ErrJSONParse, bad)
	}
}

func TestParseStringResult(t *testing.T) {
	got, err := ParseStringResult(`{"jsonrpc":"2.0","result":"5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW","id":1}`)
	require.NoError(t, err)
	assert.Equal(t, "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW", got)

	_, err = ParseStringResult(`{"error":{"code":429,"message":"airdrop limit reached"}}`)
	require.ErrorIs(t, err, apperr.ErrIO)
	assert.Contains(t, err.Error(), "airdrop limit reached")

	_, err = ParseStringResult(`{"error":{"code":-32000}}`)
	require.ErrorIs(t, err, apperr.ErrIO)
	assert.Contains(t, err.Error(), "unknown RPC error")

	for _, bad := range []string{`{"result":{"value":1}}`, `{}`, `[`} {
		_, err := ParseStringResult(bad)
		require.ErrorIs(t, err, apperr.ErrJSONParse, bad)
	}
}

func TestParseSignatureStatus(t *testing.T) {
	cases := map[string]string{
		`{"result":{"value":[null]}}`:                                        "",
		`{"result":{"value":[]}}`:                                            "",
		`{"result":{"value":[{"slot":5,"confirmationStatus":"processed"}]}}`: "processed",
		`{"result":{"value":[{"confirmationStatus":"confirmed"}]}}`:          "confirmed",
		`{"result":{"value":[{"confirmationStatus":"finalized"}]}}`:          "finalized",
		`{"result":{"value":[{"slot":5}]}}`:                                  "",
	}
	for resp, want := range cases {
		got, err := ParseSignatureStatus(resp)
		require.NoError(t, err, resp)
		assert.Equal(t, want, got, resp)
	}

	for _, bad := range []string{
		`{"result":{"value":{"confirmationStatus":"confirmed"}}}`,
		`{"result":{"value":["confirmed"]}}`,
		`{"result":{}}`,
		`{{`,
	} {
		_, err := ParseSignatureStatus(bad)
		require.ErrorIs(t, err, apperr.ErrJSONParse, bad)
	}
}

func TestResolveRPCURL(t *testing.T) {
	hook := logTest.NewGlobal()
	defer hook.Reset()

	assert.Equal(t, DefaultRPCURL, ResolveRPCURL(""))
	assert.Empty(t, hook.AllEntries())

	assert.Equal(t, DefaultRPCURL, ResolveRPCURL("http://127.0.0.1:8899"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "http://127.0.0.1:8899", hook.LastEntry().Data["url"])

	hook.Reset()
	assert.Equal(t, "https://api.testnet.solana.com", ResolveRPCURL("https://api.testnet.solana.com"))
	assert.Empty(t, hook.AllEntries())
}

func TestExplorerURL(t *testing.T) {
	const sig = "abc"
	assert.Equal(t, "https://solscan.io/tx/abc?cluster=devnet", ExplorerURL(sig, "https://api.devnet.solana.com"))
	assert.Equal(t, "https://solscan.io/tx/abc?cluster=testnet", ExplorerURL(sig, "https://api.testnet.solana.com"))
	assert.Equal(t, "https://solscan.io/tx/abc", ExplorerURL(sig, "https://api.mainnet-beta.solana.com"))
	assert.Equal(t, "https://solscan.io/tx/abc?cluster=custom", ExplorerURL(sig, "https://rpc.example.org"))
	assert.Equal(t, "https://solscan.io/tx/abc?cluster=devnet", ExplorerURL(sig, ""))
}
