// Package calc defines the connection to the calculator that holds sealed
// keys, and two emulated implementations of it.
package calc

import (
	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// MaxPayloadLen is the largest string variable the calculator accepts.
const MaxPayloadLen = 255

// Slot names one of the ten string variables Str0..Str9.
type Slot string

// Slots lists every addressable slot in order.
var Slots = []Slot{"Str0", "Str1", "Str2", "Str3", "Str4", "Str5", "Str6", "Str7", "Str8", "Str9"}

// ParseSlot validates a slot name.
func ParseSlot(name string) (Slot, error) {
	for _, s := range Slots {
		if string(s) == name {
			return s, nil
		}
	}
	return "", apperr.New(apperr.ValidationError, "unsupported slot %q (want Str0..Str9)", name)
}

func (s Slot) String() string { return string(s) }

// Link is a physical connection to the calculator. All calls block.
// Implementations return *apperr.Error values of kind NoCalculator, NoCable,
// NotReady, AllocationFailed or IOError.
type Link interface {
	Open() error
	Close() error
	// Ready pings the calculator.
	Ready() error
	StoreBytes(slot Slot, payload []byte) error
	FetchBytes(slot Slot) ([]byte, error)
}

func checkStore(slot Slot, payload []byte) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return apperr.Wrap(apperr.IOError, err, "store")
	}
	if len(payload) > MaxPayloadLen {
		return apperr.New(apperr.IOError, "payload exceeds %d byte limit (%d)", MaxPayloadLen, len(payload))
	}
	return nil
}

func checkFetch(slot Slot) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return apperr.Wrap(apperr.IOError, err, "fetch")
	}
	return nil
}

func notOpen(op string, slot Slot) error {
	return apperr.New(apperr.NoCalculator, "%s %s: link not open", op, slot)
}
