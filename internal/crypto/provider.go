package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for sealed keys
	// The iteration count is part of blob format version 1 and must not change
	// without bumping the version byte.
	pbkdf2Iterations = 200000
	masterKeyLen     = sha512.Size

	macTagLen = 32
)

var (
	labelEnc = []byte("ENC")
	labelMAC = []byte("MAC")

	errAuthFailed = errors.New("authentication failed")
)

// Provider is the set of primitives the custody protocol and the
// transaction engine are built on.
type Provider interface {
	RandomBytes(n int) ([]byte, error)
	DeriveKey(password, salt []byte) ([]byte, error)
	// Encrypt returns ciphertext followed by a 32-byte authentication tag.
	Encrypt(key, nonce, plaintext []byte) ([]byte, error)
	// Decrypt verifies the tag and returns the plaintext.
	Decrypt(key, nonce, sealed []byte) ([]byte, error)
	KeypairFromSeed(seed []byte) (public, private []byte, err error)
	Sign(message, public, private []byte) ([]byte, error)
}

// DefaultProvider implements Provider with PBKDF2-HMAC-SHA512 key derivation,
// an HMAC-SHA512 keystream cipher with a truncated HMAC-SHA512 tag, and
// ed25519 signatures. Blobs it produces are readable by the calculator
// firmware tooling.
type DefaultProvider struct {
	Iterations int
	Rand       io.Reader
}

// NewProvider returns the production provider.
func NewProvider() *DefaultProvider {
	return &DefaultProvider{Iterations: pbkdf2Iterations, Rand: rand.Reader}
}

var _ Provider = (*DefaultProvider)(nil)

func (p *DefaultProvider) RandomBytes(n int) ([]byte, error) {
	r := p.Rand
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		Wipe(buf)
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

func (p *DefaultProvider) DeriveKey(password, salt []byte) ([]byte, error) {
	iterations := p.Iterations
	if iterations <= 0 {
		return nil, fmt.Errorf("invalid iteration count %d", iterations)
	}
	return pbkdf2.Key(password, salt, iterations, masterKeyLen, sha512.New), nil
}

func (p *DefaultProvider) Encrypt(key, nonce, plaintext []byte) ([]byte, error) {
	if len(plaintext) > sha512.Size {
		return nil, fmt.Errorf("plaintext too long: %d > %d", len(plaintext), sha512.Size)
	}

	stream := subkey(key, labelEnc, nonce)
	defer Wipe(stream)
	macKey := subkey(key, labelMAC, nonce)
	defer Wipe(macKey)

	out := make([]byte, len(plaintext), len(plaintext)+macTagLen)
	for i := range plaintext {
		out[i] = plaintext[i] ^ stream[i]
	}

	tag := authTag(macKey, nonce, out)
	out = append(out, tag[:macTagLen]...)
	Wipe(tag)
	return out, nil
}

func (p *DefaultProvider) Decrypt(key, nonce, sealed []byte) ([]byte, error) {
	if len(sealed) < macTagLen {
		return nil, errAuthFailed
	}
	ciphertext := sealed[:len(sealed)-macTagLen]
	mac := sealed[len(sealed)-macTagLen:]

	macKey := subkey(key, labelMAC, nonce)
	defer Wipe(macKey)
	expected := authTag(macKey, nonce, ciphertext)
	defer Wipe(expected)

	if !hmac.Equal(mac, expected[:macTagLen]) {
		return nil, errAuthFailed
	}

	stream := subkey(key, labelEnc, nonce)
	defer Wipe(stream)

	plaintext := make([]byte, len(ciphertext))
	for i := range ciphertext {
		plaintext[i] = ciphertext[i] ^ stream[i]
	}
	return plaintext, nil
}

func (p *DefaultProvider) KeypairFromSeed(seed []byte) ([]byte, []byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, fmt.Errorf("invalid seed length %d", len(seed))
	}
	private := ed25519.NewKeyFromSeed(seed)
	public := make([]byte, ed25519.PublicKeySize)
	copy(public, private[ed25519.SeedSize:])
	return public, private, nil
}

func (p *DefaultProvider) Sign(message, public, private []byte) ([]byte, error) {
	if len(private) != ed25519.PrivateKeySize || len(public) != ed25519.PublicKeySize {
		return nil, errors.New("invalid key length")
	}
	if !bytes.Equal(private[ed25519.SeedSize:], public) {
		return nil, errors.New("private key does not match public key")
	}
	sig, err := solana.PrivateKey(private).Sign(message)
	if err != nil {
		return nil, err
	}
	return sig[:], nil
}

// subkey derives a per-nonce key: HMAC-SHA512(master, label || nonce).
func subkey(master, label, nonce []byte) []byte {
	m := hmac.New(sha512.New, master)
	m.Write(label)
	m.Write(nonce)
	return m.Sum(nil)
}

func authTag(macKey, nonce, ciphertext []byte) []byte {
	m := hmac.New(sha512.New, macKey)
	m.Write(nonce)
	m.Write(ciphertext)
	return m.Sum(nil)
}
