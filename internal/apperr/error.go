// Package apperr holds the single error enumeration every wallet component
// reports through. A kind is chosen once, where the failure is detected, and
// is never re-interpreted further up.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tags an Error.
type Kind int

const (
	KindUnknown Kind = iota
	// device absence
	NoCalculator
	NoCable
	NotReady
	// resources
	AllocationFailed
	// transport
	IOError
	NetworkError
	HttpError
	InvalidArgument
	// format
	PayloadLengthMismatch
	JsonParseError
	ValidationError
	// cryptographic; wrong password and corruption are reported identically
	CryptoError
	// confirmation polling ran out of attempts
	TimedOut
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	NoCalculator:          "NoCalculator",
	NoCable:               "NoCable",
	NotReady:              "NotReady",
	AllocationFailed:      "AllocationFailed",
	IOError:               "IOError",
	NetworkError:          "NetworkError",
	HttpError:             "HttpError",
	InvalidArgument:       "InvalidArgument",
	PayloadLengthMismatch: "PayloadLengthMismatch",
	JsonParseError:        "JsonParseError",
	ValidationError:       "ValidationError",
	CryptoError:           "CryptoError",
	TimedOut:              "TimedOut",
}

var kindMessages = map[Kind]string{
	NoCalculator:          "no calculator detected",
	NoCable:               "no cable detected",
	NotReady:              "calculator not ready",
	AllocationFailed:      "allocation failed",
	IOError:               "i/o error",
	NetworkError:          "network error",
	HttpError:             "http error",
	InvalidArgument:       "invalid argument",
	PayloadLengthMismatch: "payload length mismatch",
	JsonParseError:        "json parse error",
	ValidationError:       "validation error",
	CryptoError:           "cryptographic error",
	TimedOut:              "timed out",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the tagged wallet error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	base := kindMessages[e.Kind]
	if base == "" {
		base = "error"
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", base, e.Msg, e.Err)
	case e.Msg != "":
		return base + ": " + e.Msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", base, e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the package sentinels work
// with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNoCalculator          = &Error{Kind: NoCalculator}
	ErrNoCable               = &Error{Kind: NoCable}
	ErrNotReady              = &Error{Kind: NotReady}
	ErrAllocationFailed      = &Error{Kind: AllocationFailed}
	ErrIO                    = &Error{Kind: IOError}
	ErrNetwork               = &Error{Kind: NetworkError}
	ErrHTTP                  = &Error{Kind: HttpError}
	ErrInvalidArgument       = &Error{Kind: InvalidArgument}
	ErrPayloadLengthMismatch = &Error{Kind: PayloadLengthMismatch}
	ErrJSONParse             = &Error{Kind: JsonParseError}
	ErrValidation            = &Error{Kind: ValidationError}
	ErrCrypto                = &Error{Kind: CryptoError}
	ErrTimedOut              = &Error{Kind: TimedOut}
)

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind. The wrapped error stays reachable via errors.Unwrap.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
