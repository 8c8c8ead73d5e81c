package client

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

const userAgent = "calc-wallet/solana_client"

// Transport is the HTTP seam under the JSON-RPC client. *http.Client
// satisfies it.
type Transport = jsonrpc.HTTPClient

// NewHTTPTransport returns the default Transport. The timeout is fixed for
// every request it carries.
func NewHTTPTransport(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// checked maps transport failures to NetworkError and non-2xx replies to
// HttpError before the JSON-RPC layer sees them.
type checked struct {
	next Transport
}

func (t checked) Do(req *http.Request) (*http.Response, error) {
	resp, err := t.next.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkError, err, "request failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return nil, apperr.Wrap(apperr.NetworkError, err, "failed to read response")
		}
		return nil, apperr.New(apperr.HttpError, "status %d: %s", resp.StatusCode, truncate(data, 256))
	}
	return resp, nil
}

func (t checked) CloseIdleConnections() {
	t.next.CloseIdleConnections()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
