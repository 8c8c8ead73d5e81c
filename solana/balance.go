package solana

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/client"
	"github.com/AlexZinkM/calc-wallet/internal/common"
	"github.com/AlexZinkM/calc-wallet/internal/confirm"
	"github.com/AlexZinkM/calc-wallet/internal/worker"
)

// Submission is a transaction the cluster accepted.
type Submission struct {
	Signature   string
	ExplorerURL string
	Status      confirm.Status
}

// Balance fetches the balance of the loaded key and caches it. The cache is
// only updated if the same key is still loaded when the answer arrives.
func (w *Wallet) Balance(ctx context.Context) *worker.Future[uint64] {
	kp, err := w.loaded()
	if err != nil {
		return reject[uint64](w, err)
	}

	return dispatch(w, ctx, "balance", func(ctx context.Context) (uint64, error) {
		var lamports uint64
		err := w.withClient(func(c *client.SolanaClient) error {
			var err error
			lamports, err = c.Balance(ctx, kp.Public.String())
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("failed to get balance: %w", err)
		}
		log.WithFields(logrus.Fields{"pubkey": kp.Public.String(), "sol": common.LamportsToSOL(lamports)}).Debug("Balance fetched")
		return lamports, nil
	}, func(s *State, lamports uint64) {
		if s.Loaded != nil && s.Loaded.Public == kp.Public {
			s.BalanceLamports = &lamports
		}
	})
}

// Airdrop requests lamports for the loaded key and waits for confirmation.
// A confirmed airdrop clears the cached balance.
func (w *Wallet) Airdrop(ctx context.Context, lamports uint64) *worker.Future[Submission] {
	kp, err := w.loaded()
	if err != nil {
		return reject[Submission](w, err)
	}
	if lamports == 0 {
		return reject[Submission](w, apperr.New(apperr.ValidationError, "amount must be greater than zero"))
	}

	return dispatch(w, ctx, "airdrop", func(ctx context.Context) (Submission, error) {
		var sig string
		err := w.withClient(func(c *client.SolanaClient) error {
			var err error
			sig, err = c.Airdrop(ctx, kp.Public.String(), lamports)
			return err
		})
		if err != nil {
			return Submission{}, fmt.Errorf("failed to request airdrop: %w", err)
		}
		return w.awaitConfirmation(ctx, w.policy.Airdrop(w.statuser()), sig)
	}, func(s *State, _ Submission) {
		s.BalanceLamports = nil
	})
}

// awaitConfirmation polls sig and returns the submission even if polling
// fails, so callers still learn the signature.
func (w *Wallet) awaitConfirmation(ctx context.Context, p *confirm.Poller, sig string) (Submission, error) {
	sub := Submission{Signature: sig, ExplorerURL: client.ExplorerURL(sig, w.rpcURL())}
	log.WithFields(logrus.Fields{"kind": p.Kind, "signature": sig, "explorer": sub.ExplorerURL}).Info("Submitted, waiting for confirmation")

	status, err := p.Wait(ctx, sig)
	sub.Status = status
	if err != nil {
		return sub, fmt.Errorf("confirmation polling: %w", err)
	}
	return sub, nil
}

func (w *Wallet) rpcURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.RPCURL
}

// Value prices lamports at rate, a decimal fiat price per SOL, formatted
// with two decimals. Floats are only used for display.
func Value(lamports uint64, rate string) (string, error) {
	rateFloat, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return "", apperr.Wrap(apperr.ValidationError, err, "invalid rate")
	}
	solFloat, _ := strconv.ParseFloat(common.LamportsToSOL(lamports), 64)
	return fmt.Sprintf("%.2f", solFloat*rateFloat), nil
}

// PublicKeyFromString validates a base58 address.
func PublicKeyFromString(address string) (solana.PublicKey, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, apperr.Wrap(apperr.ValidationError, err, "invalid Solana address")
	}
	return pub, nil
}
