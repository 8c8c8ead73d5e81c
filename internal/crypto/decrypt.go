package crypto

import (
	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// errUnseal is returned for a wrong password, a tampered blob and an
// unknown version alike.
var errUnseal = apperr.New(apperr.CryptoError, "wrong password or corrupted key blob")

// Unseal recovers the private key sealed in blob. The caller owns the
// returned key and must Wipe it after use.
// password must be []byte for security (caller should zero it after use)
func (c *Custody) Unseal(password []byte, blob Blob) (*PrivateKey, error) {
	defer Wipe(blob[:])

	if blob.Version() != BlobVersion {
		return nil, errUnseal
	}

	master, err := c.provider.DeriveKey(password, blob.Salt())
	if err != nil {
		return nil, apperr.Wrap(apperr.CryptoError, err, "failed to derive key")
	}
	defer Wipe(master)

	sealed := make([]byte, PrivateKeyLen+MACLen)
	copy(sealed, blob[cipherOffset:])
	defer Wipe(sealed)

	plaintext, err := c.provider.Decrypt(master, blob.Nonce(), sealed)
	defer Wipe(plaintext)
	if err != nil || len(plaintext) != PrivateKeyLen {
		return nil, errUnseal
	}

	key := new(PrivateKey)
	copy(key[:], plaintext)
	return key, nil
}
