package common

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	BNBDecimals = 18 // BNB has 18 decimals (wei)
	SOLDecimals = 9  // SOL has 9 decimals (lamports)
)

// WeiToBNB converts a wei amount to a BNB decimal string without float
// precision loss. Wei exceeds uint64, so the input is a big.Int.
func WeiToBNB(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return formatBigWithDecimals(wei, BNBDecimals)
}

// LamportsToSOL converts lamports to a SOL decimal string without float
// precision loss.
func LamportsToSOL(lamports uint64) string {
	return formatBigWithDecimals(new(big.Int).SetUint64(lamports), SOLDecimals)
}

// formatBigWithDecimals converts an integer to a decimal string by inserting
// the decimal point and trimming trailing zeros.
// Example: formatBigWithDecimals(24981836, 9) = "0.024981836"
func formatBigWithDecimals(value *big.Int, decimals int) string {
	if value.Sign() < 0 {
		return "-" + formatBigWithDecimals(new(big.Int).Neg(value), decimals)
	}

	s := value.String()
	for len(s) <= decimals {
		s = "0" + s
	}

	pos := len(s) - decimals
	whole, frac := s[:pos], s[pos:]

	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// ParseWithDecimals converts a decimal string back to its smallest-unit
// integer. Fractional digits beyond the precision are rejected, not rounded.
func ParseWithDecimals(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("too many fractional digits: %d > %d", len(frac), decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	combined := whole + frac
	n, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}
