// Package keystore persists sealed key records in calculator slots.
package keystore

import (
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
	"github.com/AlexZinkM/calc-wallet/internal/calc"
	"github.com/AlexZinkM/calc-wallet/internal/crypto"
)

// RecordLen is the size of a stored record: public key followed by the blob.
const RecordLen = crypto.PublicKeyLen + crypto.BlobLen

// Record is what one slot holds.
type Record struct {
	Public solana.PublicKey
	Blob   crypto.Blob
}

// Store writes pub and blob to slot, replacing whatever was there.
func Store(link calc.Link, slot calc.Slot, pub solana.PublicKey, blob crypto.Blob) (err error) {
	defer func() { observe("store", err) }()

	record := make([]byte, RecordLen)
	defer crypto.Wipe(record)
	copy(record, pub[:])
	copy(record[crypto.PublicKeyLen:], blob[:])

	if err := link.StoreBytes(slot, record); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"slot": slot, "pubkey": pub.String()}).Info("Stored sealed key")
	return nil
}

// Fetch reads the record at slot. Anything other than exactly RecordLen
// bytes is a PayloadLengthMismatch.
func Fetch(link calc.Link, slot calc.Slot) (rec Record, err error) {
	defer func() { observe("fetch", err) }()

	raw, err := link.FetchBytes(slot)
	if err != nil {
		return Record{}, err
	}
	defer crypto.Wipe(raw)

	if len(raw) != RecordLen {
		return Record{}, apperr.New(apperr.PayloadLengthMismatch,
			"slot %s holds %d bytes, want %d", slot, len(raw), RecordLen)
	}

	rec.Public = solana.PublicKeyFromBytes(raw[:crypto.PublicKeyLen])
	copy(rec.Blob[:], raw[crypto.PublicKeyLen:])
	log.WithFields(logrus.Fields{"slot": slot, "pubkey": rec.Public.String()}).Debug("Fetched sealed key")
	return rec, nil
}
