package common

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

const (
	SOLDecimals     = 9 // SOL has 9 decimals (lamports)
	LamportsPerSOL  = 1_000_000_000
	solSuffix       = "sol"
	amountMaxLength = 64
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// SOLToLamports converts SOL string to lamports without float precision loss
func SOLToLamports(sol string) (uint64, error) {
	return parseWithDecimals(sol, SOLDecimals)
}

// ParseAmount reads a user-entered amount. "0.5", "2 SOL" and "1.5sol" are
// SOL; a bare integer such as "200000" is lamports. Zero is rejected.
func ParseAmount(input string) (uint64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, apperr.New(apperr.ValidationError, "amount cannot be empty")
	}
	if len(s) > amountMaxLength {
		return 0, apperr.New(apperr.ValidationError, "amount too long")
	}

	asSOL := false
	if strings.HasSuffix(strings.ToLower(s), solSuffix) {
		asSOL = true
		s = strings.TrimSpace(s[:len(s)-len(solSuffix)])
	}
	if strings.Contains(s, ".") {
		asSOL = true
	}

	var lamports uint64
	var err error
	if asSOL {
		lamports, err = SOLToLamports(s)
		if err != nil {
			return 0, apperr.Wrap(apperr.ValidationError, err, "invalid SOL amount")
		}
	} else {
		lamports, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, apperr.Wrap(apperr.ValidationError, err, "invalid lamport amount")
		}
	}

	if lamports == 0 {
		return 0, apperr.New(apperr.ValidationError, "amount must be greater than zero")
	}
	return lamports, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = 24981836
// Digits beyond the given precision are truncated.
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			hi, lo := bits.Mul64(n, 10)
			if hi != 0 {
				return 0, fmt.Errorf("value %s out of range", s)
			}
			n = lo
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]
	if whole == "" {
		whole = "0"
	}
	if frac == "" || strings.ContainsAny(whole+frac, "+-") {
		return 0, fmt.Errorf("invalid decimal format")
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}
