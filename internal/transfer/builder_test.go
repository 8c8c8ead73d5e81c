package transfer_test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
	"github.com/AlexZinkM/calc-wallet/internal/transfer"
)

func TestAppendShortvec(t *testing.T) {
	cases := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, transfer.AppendShortvec(nil, tc.n), "n=%d", tc.n)
	}
	assert.Equal(t, []byte{9, 0x80, 0x01}, transfer.AppendShortvec([]byte{9}, 128))
}

type fixture struct {
	kp        *crypto.KeyPair
	to        solana.PublicKey
	blockhash solana.Hash
	builder   *transfer.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	provider := &crypto.DefaultProvider{Iterations: 1}
	kp, err := crypto.NewCustody(provider).GenerateKeypair()
	require.NoError(t, err)
	t.Cleanup(kp.Wipe)

	var bh solana.Hash
	copy(bh[:], bytes.Repeat([]byte{0x42}, 32))
	return &fixture{
		kp:        kp,
		to:        solana.PublicKeyFromBytes(bytes.Repeat([]byte{0x07}, 32)),
		blockhash: bh,
		builder:   transfer.NewBuilder(provider),
	}
}

func (f *fixture) request(lamports uint64, memo string) transfer.Request {
	return transfer.Request{
		From:            f.kp.Public,
		To:              f.to,
		Lamports:        lamports,
		RecentBlockhash: f.blockhash.String(),
		PrivateKey:      &f.kp.Private,
		Memo:            memo,
	}
}

func decode(t *testing.T, wire []byte) *solana.Transaction {
	t.Helper()
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(wire))
	require.NoError(t, err)
	return tx
}

func TestBuild_WithoutMemo(t *testing.T) {
	f := newFixture(t)

	signed, err := f.builder.Build(f.request(1_500_000, ""))
	require.NoError(t, err)

	tx := decode(t, signed.Wire)
	assert.Equal(t, uint8(1), tx.Message.Header.NumRequiredSignatures)
	assert.Equal(t, uint8(0), tx.Message.Header.NumReadonlySignedAccounts)
	assert.Equal(t, uint8(1), tx.Message.Header.NumReadonlyUnsignedAccounts)
	require.Len(t, tx.Message.AccountKeys, 3)
	assert.Equal(t, f.kp.Public, tx.Message.AccountKeys[0])
	assert.Equal(t, f.to, tx.Message.AccountKeys[1])
	assert.Equal(t, solana.SystemProgramID, tx.Message.AccountKeys[2])
	assert.Equal(t, f.blockhash, tx.Message.RecentBlockhash)

	require.Len(t, tx.Message.Instructions, 1)
	ix := tx.Message.Instructions[0]
	assert.Equal(t, uint16(2), ix.ProgramIDIndex)
	assert.Equal(t, []uint16{0, 1}, ix.Accounts)
	require.Len(t, ix.Data, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(ix.Data[:4]))
	assert.Equal(t, uint64(1_500_000), binary.LittleEndian.Uint64(ix.Data[4:]))

	// header byte 3 on the wire
	assert.Equal(t, byte(1), signed.Wire[1+64+2])
}

func TestBuild_WithMemo(t *testing.T) {
	f := newFixture(t)
	memo := "sent from my ti83+"

	signed, err := f.builder.Build(f.request(42, memo))
	require.NoError(t, err)

	tx := decode(t, signed.Wire)
	assert.Equal(t, uint8(2), tx.Message.Header.NumReadonlyUnsignedAccounts)
	require.Len(t, tx.Message.AccountKeys, 4)
	assert.Equal(t, transfer.MemoProgramID, tx.Message.AccountKeys[3])

	require.Len(t, tx.Message.Instructions, 2)
	ix := tx.Message.Instructions[1]
	assert.Equal(t, uint16(3), ix.ProgramIDIndex)
	assert.Empty(t, ix.Accounts)
	assert.Equal(t, []byte(memo), []byte(ix.Data))

	assert.Equal(t, byte(2), signed.Wire[1+64+2])
}

func TestBuild_MatchesReferenceEncoder(t *testing.T) {
	f := newFixture(t)

	signed, err := f.builder.Build(f.request(1_000_000_000, ""))
	require.NoError(t, err)

	ref, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1_000_000_000, f.kp.Public, f.to).Build()},
		f.blockhash,
		solana.TransactionPayer(f.kp.Public),
	)
	require.NoError(t, err)

	priv := solana.PrivateKey(f.kp.Private[:])
	_, err = ref.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(f.kp.Public) {
			return &priv
		}
		return nil
	})
	require.NoError(t, err)

	want, err := ref.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, want, signed.Wire)
	assert.Equal(t, ref.Signatures[0], signed.Signature)
}

func TestBuild_OutputEncodings(t *testing.T) {
	f := newFixture(t)

	signed, err := f.builder.Build(f.request(5, "hi"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(signed.Base64)
	require.NoError(t, err)
	assert.Equal(t, signed.Wire, raw)

	sig, err := base58.Decode(signed.SignatureBase58)
	require.NoError(t, err)
	assert.Equal(t, signed.Signature[:], sig)

	// one signature, then the message it covers
	assert.Equal(t, byte(1), signed.Wire[0])
	assert.Equal(t, sig, signed.Wire[1:65])
	assert.True(t, ed25519.Verify(f.kp.Public[:], signed.Wire[65:], sig))
}

type countingSigner struct {
	calls int
}

func (s *countingSigner) Sign(message, public, private []byte) ([]byte, error) {
	s.calls++
	return make([]byte, 64), nil
}

func TestBuild_Validation(t *testing.T) {
	f := newFixture(t)
	signer := &countingSigner{}
	b := transfer.NewBuilder(signer)

	_, err := b.Build(f.request(1, strings.Repeat("m", transfer.MaxMemoLen+1)))
	require.ErrorIs(t, err, apperr.ErrValidation)

	req := f.request(1, "")
	req.RecentBlockhash = "not-base58-0OIl"
	_, err = b.Build(req)
	require.ErrorIs(t, err, apperr.ErrValidation)

	req.RecentBlockhash = base58.Encode(make([]byte, 31))
	_, err = b.Build(req)
	require.ErrorIs(t, err, apperr.ErrValidation)

	assert.Zero(t, signer.calls, "nothing may be signed after a validation failure")

	_, err = b.Build(f.request(1, strings.Repeat("m", transfer.MaxMemoLen)))
	require.NoError(t, err)
	assert.Equal(t, 1, signer.calls)
}

func TestBuild_Deterministic(t *testing.T) {
	f := newFixture(t)

	a, err := f.builder.Build(f.request(77, "x"))
	require.NoError(t, err)
	b, err := f.builder.Build(f.request(77, "x"))
	require.NoError(t, err)
	assert.Equal(t, a.Wire, b.Wire)
}
