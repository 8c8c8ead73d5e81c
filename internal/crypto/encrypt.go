package crypto

import (
	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// Blob layout, version 1:
//
//	version(1) | salt(16) | nonce(12) | ciphertext(64) | mac(32)
const (
	BlobVersion = 1
	SaltLen     = 16
	NonceLen    = 12
	MACLen      = macTagLen
	BlobLen     = 1 + SaltLen + NonceLen + PrivateKeyLen + MACLen

	saltOffset   = 1
	nonceOffset  = saltOffset + SaltLen
	cipherOffset = nonceOffset + NonceLen
	macOffset    = cipherOffset + PrivateKeyLen
)

// Blob is a sealed private key.
type Blob [BlobLen]byte

func (b *Blob) Version() byte      { return b[0] }
func (b *Blob) Salt() []byte       { return b[saltOffset:nonceOffset] }
func (b *Blob) Nonce() []byte      { return b[nonceOffset:cipherOffset] }
func (b *Blob) Ciphertext() []byte { return b[cipherOffset:macOffset] }
func (b *Blob) MAC() []byte        { return b[macOffset:] }

// Custody seals and unseals private keys with a Provider.
type Custody struct {
	provider Provider
}

// NewCustody creates a Custody over p.
func NewCustody(p Provider) *Custody {
	return &Custody{provider: p}
}

// Provider returns the underlying primitives.
func (c *Custody) Provider() Provider {
	return c.provider
}

// Seal encrypts key under a key derived from password and a fresh salt.
// No password policy is enforced here.
// password must be []byte for security (caller should zero it after use)
func (c *Custody) Seal(password []byte, key *PrivateKey) (Blob, error) {
	var blob Blob

	// Generate salt and nonce
	salt, err := c.provider.RandomBytes(SaltLen)
	if err != nil {
		return blob, apperr.Wrap(apperr.CryptoError, err, "failed to generate salt")
	}
	defer Wipe(salt)

	nonce, err := c.provider.RandomBytes(NonceLen)
	if err != nil {
		return blob, apperr.Wrap(apperr.CryptoError, err, "failed to generate nonce")
	}
	defer Wipe(nonce)

	// Derive key from password
	master, err := c.provider.DeriveKey(password, salt)
	if err != nil {
		return blob, apperr.Wrap(apperr.CryptoError, err, "failed to derive key")
	}
	defer Wipe(master)

	sealed, err := c.provider.Encrypt(master, nonce, key[:])
	if err != nil {
		return blob, apperr.Wrap(apperr.CryptoError, err, "failed to encrypt")
	}
	defer Wipe(sealed)

	if len(sealed) != PrivateKeyLen+MACLen {
		return blob, apperr.New(apperr.CryptoError, "unexpected sealed length %d", len(sealed))
	}

	blob[0] = BlobVersion
	copy(blob[saltOffset:], salt)
	copy(blob[nonceOffset:], nonce)
	copy(blob[cipherOffset:], sealed)
	return blob, nil
}
