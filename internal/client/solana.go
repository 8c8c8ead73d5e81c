package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// DefaultTimeout applies when a client is built with a zero timeout.
const DefaultTimeout = 10 * time.Second

// SolanaClient issues JSON-RPC requests to one cluster endpoint. The raw
// methods return the response text unparsed. The timeout is fixed for the
// lifetime of the client.
type SolanaClient struct {
	rpcURL  string
	timeout time.Duration
	rpc     jsonrpc.RPCClient
	nextID  atomic.Uint64
}

// NewSolanaClient creates a client for rpcURL. A nil transport selects an
// *http.Client bound to timeout.
func NewSolanaClient(rpcURL string, timeout time.Duration, transport Transport) (*SolanaClient, error) {
	if rpcURL == "" {
		return nil, apperr.New(apperr.InvalidArgument, "empty rpc url")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if transport == nil {
		transport = NewHTTPTransport(timeout)
	}
	c := &SolanaClient{
		rpcURL:  rpcURL,
		timeout: timeout,
		rpc: jsonrpc.NewClientWithOpts(rpcURL, &jsonrpc.RPCClientOpts{
			HTTPClient:    checked{next: transport},
			CustomHeaders: map[string]string{"User-Agent": userAgent},
		}),
	}
	c.nextID.Store(1)
	return c, nil
}

// RPCURL returns the endpoint the client talks to.
func (c *SolanaClient) RPCURL() string { return c.rpcURL }

// Timeout returns the per-request timeout.
func (c *SolanaClient) Timeout() time.Duration { return c.timeout }

// call sends one request. Params go out exactly as given, so a lone
// config object is still wrapped in an array.
func (c *SolanaClient) call(ctx context.Context, method string, params ...any) (resp *jsonrpc.RPCResponse, err error) {
	defer func() { observe(method, err) }()

	if params == nil {
		params = []any{}
	}
	start := time.Now()
	resp, err = c.rpc.CallRaw(ctx, &jsonrpc.RPCRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1) - 1,
		Method:  method,
		Params:  params,
	})
	fields := logrus.Fields{"method": method, "elapsed": time.Since(start)}
	if err != nil {
		err = classify(method, err)
		log.WithFields(fields).WithError(err).Warn("RPC request failed")
		return nil, err
	}
	log.WithFields(fields).Debug("RPC request")
	return resp, nil
}

// classify keeps the kind set by the transport. Anything else failed while
// decoding the reply.
func classify(method string, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e
	}
	return apperr.Wrap(apperr.JsonParseError, err, "malformed "+method+" response")
}

// text renders a response back to JSON for the raw methods.
func text(resp *jsonrpc.RPCResponse, err error) (string, error) {
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", apperr.Wrap(apperr.JsonParseError, err, "failed to encode response")
	}
	return string(data), nil
}

func (c *SolanaClient) getBalance(ctx context.Context, pubkey string) (*jsonrpc.RPCResponse, error) {
	if pubkey == "" {
		return nil, apperr.New(apperr.InvalidArgument, "empty public key")
	}
	return c.call(ctx, "getBalance", pubkey, map[string]string{"commitment": "confirmed"})
}

func (c *SolanaClient) requestAirdrop(ctx context.Context, pubkey string, lamports uint64) (*jsonrpc.RPCResponse, error) {
	if pubkey == "" {
		return nil, apperr.New(apperr.InvalidArgument, "empty public key")
	}
	return c.call(ctx, "requestAirdrop", pubkey, lamports)
}

func (c *SolanaClient) getLatestBlockhash(ctx context.Context) (*jsonrpc.RPCResponse, error) {
	return c.call(ctx, "getLatestBlockhash", map[string]string{"commitment": "finalized"})
}

func (c *SolanaClient) sendTransaction(ctx context.Context, txBase64 string) (*jsonrpc.RPCResponse, error) {
	if txBase64 == "" {
		return nil, apperr.New(apperr.InvalidArgument, "empty transaction")
	}
	return c.call(ctx, "sendTransaction", txBase64, map[string]string{"encoding": "base64"})
}

func (c *SolanaClient) getSignatureStatus(ctx context.Context, signature string) (*jsonrpc.RPCResponse, error) {
	if signature == "" {
		return nil, apperr.New(apperr.InvalidArgument, "empty signature")
	}
	return c.call(ctx, "getSignatureStatuses", []string{signature}, map[string]bool{"searchTransactionHistory": true})
}

// GetBalance returns the raw getBalance response for pubkey.
func (c *SolanaClient) GetBalance(ctx context.Context, pubkey string) (string, error) {
	return text(c.getBalance(ctx, pubkey))
}

// RequestAirdrop returns the raw requestAirdrop response.
func (c *SolanaClient) RequestAirdrop(ctx context.Context, pubkey string, lamports uint64) (string, error) {
	return text(c.requestAirdrop(ctx, pubkey, lamports))
}

// GetLatestBlockhash returns the raw getLatestBlockhash response.
func (c *SolanaClient) GetLatestBlockhash(ctx context.Context) (string, error) {
	return text(c.getLatestBlockhash(ctx))
}

// SendTransaction submits a base64 wire transaction.
func (c *SolanaClient) SendTransaction(ctx context.Context, txBase64 string) (string, error) {
	return text(c.sendTransaction(ctx, txBase64))
}

// GetSignatureStatus returns the raw getSignatureStatuses response for one
// signature, searching the full transaction history.
func (c *SolanaClient) GetSignatureStatus(ctx context.Context, signature string) (string, error) {
	return text(c.getSignatureStatus(ctx, signature))
}

// Balance fetches and parses the balance of pubkey in lamports.
func (c *SolanaClient) Balance(ctx context.Context, pubkey string) (uint64, error) {
	resp, err := c.getBalance(ctx, pubkey)
	if err != nil {
		return 0, err
	}
	return parseBalance(resp)
}

// LatestBlockhash fetches the latest finalized blockhash.
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (string, error) {
	resp, err := c.getLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	return parseBlockhash(resp)
}

// Airdrop requests lamports for pubkey and returns the signature.
func (c *SolanaClient) Airdrop(ctx context.Context, pubkey string, lamports uint64) (string, error) {
	resp, err := c.requestAirdrop(ctx, pubkey, lamports)
	if err != nil {
		return "", err
	}
	return parseStringResult(resp)
}

// Send submits a transaction and returns its signature.
func (c *SolanaClient) Send(ctx context.Context, txBase64 string) (string, error) {
	resp, err := c.sendTransaction(ctx, txBase64)
	if err != nil {
		return "", err
	}
	return parseStringResult(resp)
}

// SignatureStatus returns the confirmation status of signature, or "" if
// the cluster has not seen it yet.
func (c *SolanaClient) SignatureStatus(ctx context.Context, signature string) (string, error) {
	resp, err := c.getSignatureStatus(ctx, signature)
	if err != nil {
		return "", err
	}
	return parseSignatureStatus(resp)
}
