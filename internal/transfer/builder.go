// Package transfer builds and signs native-token transfer transactions in
// the legacy wire format.
package transfer

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
)

const (
	// MaxMemoLen is the longest memo accepted, in bytes.
	MaxMemoLen = 120

	signatureLen   = 64
	systemTransfer = 2
	// program index of the system program in the account list
	systemIndex = 2
)

// MemoProgramID is the memo program the optional note is addressed to.
var MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// Signer produces an ed25519 signature. crypto.Provider satisfies it.
type Signer interface {
	Sign(message, public, private []byte) ([]byte, error)
}

// Request describes one transfer. From and To are trusted to be valid keys.
type Request struct {
	From            solana.PublicKey
	To              solana.PublicKey
	Lamports        uint64
	RecentBlockhash string
	PrivateKey      *crypto.PrivateKey
	// Memo is optional; an empty memo adds no instruction.
	Memo string
}

// Signed is a finished transaction.
type Signed struct {
	Wire            []byte
	Base64          string
	Signature       solana.Signature
	SignatureBase58 string
}

// Builder turns requests into signed transactions. It does no I/O apart
// from calling the signer.
type Builder struct {
	Signer Signer
}

// NewBuilder creates a Builder signing with s.
func NewBuilder(s Signer) *Builder {
	return &Builder{Signer: s}
}

// Build validates req, encodes the message, signs it and returns the wire
// bytes. Validation failures are reported before anything is encoded.
func (b *Builder) Build(req Request) (*Signed, error) {
	if len(req.Memo) > MaxMemoLen {
		return nil, apperr.New(apperr.ValidationError, "memo is %d bytes, max %d", len(req.Memo), MaxMemoLen)
	}
	hash, err := base58.Decode(req.RecentBlockhash)
	if err != nil || len(hash) != 32 {
		return nil, apperr.New(apperr.ValidationError, "recent blockhash %q is not 32 base58 bytes", req.RecentBlockhash)
	}
	if req.PrivateKey == nil {
		return nil, apperr.New(apperr.ValidationError, "missing private key")
	}
	if b.Signer == nil {
		return nil, apperr.New(apperr.CryptoError, "no signer configured")
	}

	msg := encodeMessage(req, hash)

	sig, err := b.Signer.Sign(msg, req.From[:], req.PrivateKey[:])
	if err != nil {
		return nil, apperr.Wrap(apperr.CryptoError, err, "failed to sign transaction")
	}
	if len(sig) != signatureLen {
		return nil, apperr.New(apperr.CryptoError, "unexpected signature length %d", len(sig))
	}

	wire := make([]byte, 0, 1+len(sig)+len(msg))
	wire = AppendShortvec(wire, 1)
	wire = append(wire, sig...)
	wire = append(wire, msg...)

	signature := solana.SignatureFromBytes(sig)
	return &Signed{
		Wire:            wire,
		Base64:          base64.StdEncoding.EncodeToString(wire),
		Signature:       signature,
		SignatureBase58: signature.String(),
	}, nil
}

func encodeMessage(req Request, blockhash []byte) []byte {
	hasMemo := req.Memo != ""

	accounts := []solana.PublicKey{req.From, req.To, solana.SystemProgramID}
	readonlyUnsigned := byte(1)
	if hasMemo {
		accounts = append(accounts, MemoProgramID)
		readonlyUnsigned = 2
	}

	// Header
	msg := []byte{1, 0, readonlyUnsigned}

	msg = AppendShortvec(msg, len(accounts))
	for _, key := range accounts {
		msg = append(msg, key[:]...)
	}
	msg = append(msg, blockhash...)

	instructions := 1
	if hasMemo {
		instructions = 2
	}
	msg = AppendShortvec(msg, instructions)

	// Transfer: program, accounts [from, to], data discriminant || lamports
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[:4], systemTransfer)
	binary.LittleEndian.PutUint64(data[4:], req.Lamports)

	msg = append(msg, systemIndex)
	msg = AppendShortvec(msg, 2)
	msg = append(msg, 0, 1)
	msg = AppendShortvec(msg, len(data))
	msg = append(msg, data...)

	if hasMemo {
		msg = append(msg, byte(len(accounts)-1))
		msg = AppendShortvec(msg, 0)
		msg = AppendShortvec(msg, len(req.Memo))
		msg = append(msg, req.Memo...)
	}
	return msg
}
