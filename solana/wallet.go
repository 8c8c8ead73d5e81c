// Package solana coordinates wallet operations. A Wallet owns the UI-facing
// state and dispatches every blocking step (calculator I/O, RPC calls,
// sealing and unsealing) to a worker pool, handing results back as futures.
package solana

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/client"
	"github.com/AlexZinkM/calc-wallet/internal/confirm"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
	"github.com/AlexZinkM/calc-wallet/internal/guard"
	"github.com/AlexZinkM/calc-wallet/internal/transfer"
	"github.com/AlexZinkM/calc-wallet/internal/worker"
)

// Future resolves when an operation with no result value finishes.
type Future = worker.Future[struct{}]

// LoadedKeypair is the key record currently selected for signing. Only the
// sealed blob is kept; it is unsealed per transfer.
type LoadedKeypair struct {
	Slot   calc.Slot
	Public solana.PublicKey
	blob   crypto.Blob
}

// State is a snapshot of what the wallet shows its user.
type State struct {
	Connected       bool
	Loaded          *LoadedKeypair
	BalanceLamports *uint64
	RPCURL          string
	LastError       string
	// Pending names the operations currently in flight.
	Pending []string
}

// Options configures a Wallet. Zero values fall back to defaults.
type Options struct {
	RPCURL     string
	RPCTimeout time.Duration
	Transport  client.Transport
	Policy     confirm.Policy
	Workers    int
	Provider   crypto.Provider
	// OpenLink returns an unopened link each time the user connects.
	OpenLink func() (calc.Link, error)
}

// Wallet is the coordinator. All methods are safe for concurrent use and
// none of them block on I/O; blocking work runs in the pool.
type Wallet struct {
	mu      sync.Mutex
	state   State
	pending map[string]int

	link guard.Explicit[calc.Link]
	rpc  *guard.Lazy[*client.SolanaClient]

	custody  *crypto.Custody
	builder  *transfer.Builder
	policy   confirm.Policy
	pool     *worker.Pool
	openLink func() (calc.Link, error)
}

// New creates a disconnected Wallet with nothing loaded.
func New(opts Options) *Wallet {
	rpcURL := client.ResolveRPCURL(opts.RPCURL)
	provider := opts.Provider
	if provider == nil {
		provider = crypto.NewProvider()
	}
	policy := opts.Policy
	if policy.Interval <= 0 || policy.AirdropAttempts <= 0 || policy.TransferAttempts <= 0 {
		policy = confirm.DefaultPolicy()
	}
	openLink := opts.OpenLink
	if openLink == nil {
		openLink = func() (calc.Link, error) {
			return nil, apperr.New(apperr.NoCalculator, "no calculator link configured")
		}
	}
	timeout, transport := opts.RPCTimeout, opts.Transport

	return &Wallet{
		state:   State{RPCURL: rpcURL},
		pending: make(map[string]int),
		rpc: guard.NewLazy(func() (*client.SolanaClient, error) {
			return client.NewSolanaClient(rpcURL, timeout, transport)
		}),
		custody:  crypto.NewCustody(provider),
		builder:  transfer.NewBuilder(provider),
		policy:   policy,
		pool:     worker.NewPool(opts.Workers),
		openLink: openLink,
	}
}

// State returns a copy of the current state.
func (w *Wallet) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	if s.Loaded != nil {
		loaded := *s.Loaded
		s.Loaded = &loaded
	}
	if s.BalanceLamports != nil {
		balance := *s.BalanceLamports
		s.BalanceLamports = &balance
	}
	s.Pending = make([]string, 0, len(w.pending))
	for op := range w.pending {
		s.Pending = append(s.Pending, op)
	}
	sort.Strings(s.Pending)
	return s
}

// dispatch runs job in the pool. On failure LastError is recorded and
// nothing else changes; on success commit applies the result under the
// state lock. The bookkeeping also runs for a job whose ctx ended before
// it left the queue.
func dispatch[T any](w *Wallet, ctx context.Context, op string, job func(context.Context) (T, error), commit func(*State, T)) *worker.Future[T] {
	w.mu.Lock()
	w.pending[op]++
	w.mu.Unlock()

	return worker.SubmitSettled(w.pool, ctx, job, func(v T, err error) (T, error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.pending[op]--; w.pending[op] <= 0 {
			delete(w.pending, op)
		}
		if err != nil {
			log.WithError(err).WithField("op", op).Warn("Operation failed")
			w.state.LastError = err.Error()
			return v, err
		}
		w.state.LastError = ""
		if commit != nil {
			commit(&w.state, v)
		}
		return v, nil
	})
}

// reject records a validation failure without dispatching anything.
func reject[T any](w *Wallet, err error) *worker.Future[T] {
	w.mu.Lock()
	w.state.LastError = err.Error()
	w.mu.Unlock()

	var zero T
	return worker.Resolved(zero, err)
}

// loaded returns a copy of the loaded keypair or a ValidationError.
func (w *Wallet) loaded() (LoadedKeypair, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Loaded == nil {
		return LoadedKeypair{}, apperr.New(apperr.ValidationError, "no keypair loaded")
	}
	return *w.state.Loaded, nil
}

// withClient runs fn holding the client guard. A transport failure drops
// the client so the next call builds a fresh one.
func (w *Wallet) withClient(fn func(*client.SolanaClient) error) error {
	err := w.rpc.Do(fn)
	switch apperr.KindOf(err) {
	case apperr.NetworkError, apperr.HttpError:
		w.rpc.Reset()
	}
	return err
}

// withLink runs fn holding the link guard. It fails with NoCalculator when
// disconnected.
func (w *Wallet) withLink(fn func(calc.Link) error) error {
	return w.link.Do(fn)
}

// statuser looks up signature status, taking the client guard per lookup.
func (w *Wallet) statuser() confirm.Statuser {
	return confirm.StatuserFunc(func(ctx context.Context, signature string) (status string, err error) {
		err = w.withClient(func(c *client.SolanaClient) error {
			status, err = c.SignatureStatus(ctx, signature)
			return err
		})
		return status, err
	})
}

func copySecret(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
