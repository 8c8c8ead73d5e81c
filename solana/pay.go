package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/client"
	"github.com/AlexZinkM/calc-wallet/internal/common"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
	"github.com/AlexZinkM/calc-wallet/internal/transfer"
	"github.com/AlexZinkM/calc-wallet/internal/worker"
)

// DefaultMemo is attached to transfers unless the user changes it.
const DefaultMemo = "sent from my ti83+"

// ValidateMemo accepts printable ASCII up to transfer.MaxMemoLen bytes.
func ValidateMemo(memo string) error {
	if len(memo) > transfer.MaxMemoLen {
		return apperr.New(apperr.ValidationError, "memo too long (max %d characters)", transfer.MaxMemoLen)
	}
	for i := 0; i < len(memo); i++ {
		if c := memo[i]; c < 32 || c > 126 {
			return apperr.New(apperr.ValidationError, "memo must contain printable ASCII characters only")
		}
	}
	return nil
}

// Send transfers lamports from the loaded key to to, then waits for
// confirmation. An empty memo sends no memo instruction.
//
// The steps are not atomic: the key is unsealed without any lock, the
// client guard is taken to fetch a blockhash, the transaction is built and
// signed without a lock, and the client guard is taken again to submit.
// Concurrent sends may interleave between these steps.
// password must be []byte for security (caller should zero it after use)
func (w *Wallet) Send(ctx context.Context, to solana.PublicKey, lamports uint64, memo string, password []byte) *worker.Future[Submission] {
	kp, err := w.loaded()
	if err != nil {
		return reject[Submission](w, err)
	}
	if len(password) == 0 {
		return reject[Submission](w, apperr.New(apperr.ValidationError, "password required to sign transaction"))
	}
	if lamports == 0 {
		return reject[Submission](w, apperr.New(apperr.ValidationError, "amount must be greater than zero"))
	}
	if err := ValidateMemo(memo); err != nil {
		return reject[Submission](w, err)
	}
	pw := copySecret(password)

	return dispatch(w, ctx, "send", func(ctx context.Context) (Submission, error) {
		signed, err := w.signTransfer(ctx, kp, to, lamports, memo, pw)
		if err != nil {
			return Submission{}, err
		}

		var sig string
		err = w.withClient(func(c *client.SolanaClient) error {
			var err error
			sig, err = c.Send(ctx, signed.Base64)
			return err
		})
		if err != nil {
			return Submission{}, fmt.Errorf("failed to send transaction: %w", err)
		}

		log.WithFields(logrus.Fields{
			"to":  to.String(),
			"sol": common.LamportsToSOL(lamports),
		}).Info("Transfer submitted")
		return w.awaitConfirmation(ctx, w.policy.Transfer(w.statuser()), sig)
	}, func(s *State, _ Submission) {
		s.BalanceLamports = nil
	})
}

// signTransfer unseals the key, fetches a blockhash and signs. The password
// and the plaintext key are wiped on every path.
func (w *Wallet) signTransfer(ctx context.Context, kp LoadedKeypair, to solana.PublicKey, lamports uint64, memo string, pw []byte) (*transfer.Signed, error) {
	// Decrypt
	key, err := w.custody.Unseal(pw, kp.blob)
	crypto.Wipe(pw)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	// Get latest blockhash
	var blockhash string
	err = w.withClient(func(c *client.SolanaClient) error {
		var err error
		blockhash, err = c.LatestBlockhash(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	// Build and sign
	signed, err := w.builder.Build(transfer.Request{
		From:            kp.Public,
		To:              to,
		Lamports:        lamports,
		RecentBlockhash: blockhash,
		PrivateKey:      key,
		Memo:            memo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	return signed, nil
}
