package crypto

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	SeedLen       = ed25519.SeedSize
)

// PrivateKey is a 64-byte ed25519 private key (seed || public key).
// Whoever holds one is responsible for calling Wipe once it is no longer needed.
type PrivateKey [PrivateKeyLen]byte

// Wipe zeroes the key in place.
func (k *PrivateKey) Wipe() {
	if k == nil {
		return
	}
	Wipe(k[:])
}

// KeyPair is an ephemeral public/private key pair.
type KeyPair struct {
	Public  solana.PublicKey
	Private PrivateKey
}

// Wipe zeroes the private half.
func (kp *KeyPair) Wipe() {
	if kp == nil {
		return
	}
	kp.Private.Wipe()
}

// GenerateKeypair derives a fresh key pair from a random seed. The seed is
// wiped before returning.
func (c *Custody) GenerateKeypair() (*KeyPair, error) {
	seed, err := c.provider.RandomBytes(SeedLen)
	if err != nil {
		return nil, apperr.Wrap(apperr.CryptoError, err, "failed to generate seed")
	}
	defer Wipe(seed)

	public, private, err := c.provider.KeypairFromSeed(seed)
	if err != nil {
		return nil, apperr.Wrap(apperr.CryptoError, err, "failed to derive keypair")
	}
	defer Wipe(private)

	if len(public) != PublicKeyLen || len(private) != PrivateKeyLen {
		return nil, apperr.New(apperr.CryptoError, "unexpected keypair length")
	}

	kp := &KeyPair{Public: solana.PublicKeyFromBytes(public)}
	copy(kp.Private[:], private)
	return kp, nil
}

// DerivePublicKey recomputes the public key from the seed half of k.
func DerivePublicKey(k *PrivateKey) solana.PublicKey {
	full := ed25519.NewKeyFromSeed(k[:SeedLen])
	defer Wipe(full)
	return solana.PublicKeyFromBytes(full[SeedLen:])
}
