package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
	"github.com/AlexZinkM/calc-wallet/internal/keystore"
	"github.com/AlexZinkM/calc-wallet/internal/worker"
)

// DefaultQRSize is the PNG edge length used when none is given.
const DefaultQRSize = 256

// CreateKeypair generates a keypair, seals it under password and stores it
// in slot, overwriting the slot. The new key is not loaded. Nothing reaches
// the calculator if sealing fails.
// password must be []byte for security (caller should zero it after use)
func (w *Wallet) CreateKeypair(ctx context.Context, slot calc.Slot, password []byte) *worker.Future[solana.PublicKey] {
	if len(password) == 0 {
		return reject[solana.PublicKey](w, apperr.New(apperr.ValidationError, "password cannot be empty"))
	}
	if _, err := calc.ParseSlot(string(slot)); err != nil {
		return reject[solana.PublicKey](w, err)
	}
	pw := copySecret(password)

	return dispatch(w, ctx, "create", func(context.Context) (solana.PublicKey, error) {
		defer crypto.Wipe(pw)

		// Generate keypair
		kp, err := w.custody.GenerateKeypair()
		if err != nil {
			return solana.PublicKey{}, err
		}
		defer kp.Wipe()

		// Seal private key
		blob, err := w.custody.Seal(pw, &kp.Private)
		kp.Wipe()
		if err != nil {
			return solana.PublicKey{}, err
		}

		// Store on calculator
		err = w.withLink(func(l calc.Link) error {
			return keystore.Store(l, slot, kp.Public, blob)
		})
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("failed to store keypair: %w", err)
		}

		log.WithFields(logrus.Fields{"slot": slot, "pubkey": kp.Public.String()}).Info("Keypair created")
		return kp.Public, nil
	}, nil)
}

// LoadKeypair fetches the record in slot and makes it the signing key. When
// verifyPassword is non-empty the blob is unsealed first and must derive
// the stored public key. Loading clears the cached balance.
// verifyPassword must be []byte for security (caller should zero it after use)
func (w *Wallet) LoadKeypair(ctx context.Context, slot calc.Slot, verifyPassword []byte) *worker.Future[solana.PublicKey] {
	if _, err := calc.ParseSlot(string(slot)); err != nil {
		return reject[solana.PublicKey](w, err)
	}
	var pw []byte
	if len(verifyPassword) > 0 {
		pw = copySecret(verifyPassword)
	}

	var loaded LoadedKeypair
	return dispatch(w, ctx, "load", func(context.Context) (solana.PublicKey, error) {
		defer crypto.Wipe(pw)

		var rec keystore.Record
		err := w.withLink(func(l calc.Link) error {
			var err error
			rec, err = keystore.Fetch(l, slot)
			return err
		})
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("failed to load keypair: %w", err)
		}

		if pw != nil {
			if err := w.verify(pw, rec); err != nil {
				return solana.PublicKey{}, err
			}
		}

		loaded = LoadedKeypair{Slot: slot, Public: rec.Public, blob: rec.Blob}
		log.WithFields(logrus.Fields{"slot": slot, "pubkey": rec.Public.String()}).Info("Keypair loaded")
		return rec.Public, nil
	}, func(s *State, _ solana.PublicKey) {
		s.Loaded = &loaded
		s.BalanceLamports = nil
	})
}

// verify unseals rec and checks it against the stored public key.
func (w *Wallet) verify(password []byte, rec keystore.Record) error {
	key, err := w.custody.Unseal(password, rec.Blob)
	if err != nil {
		return err
	}
	defer key.Wipe()

	if crypto.DerivePublicKey(key) != rec.Public {
		return apperr.New(apperr.ValidationError, "public key mismatch: slot record is inconsistent")
	}
	return nil
}

// AddressQR renders the loaded public key as a PNG QR code.
func (w *Wallet) AddressQR(size int) ([]byte, error) {
	kp, err := w.loaded()
	if err != nil {
		return nil, err
	}
	return generateQRCode(kp.Public.String(), size)
}

// generateQRCode generates a PNG QR code of address
func generateQRCode(address string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}
