package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultTokenDecimals = 18 // ERC-20 default
	displayPlaces        = 2  // balance display precision
)

// FormatUnits converts raw integer units to a decimal string without float precision loss
// Example: FormatUnits(big.NewInt(1500000), 6) = "1.5"
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}

// FormatBalance renders raw token units for display: two decimal places and the token symbol
// Example: FormatBalance(100e18, 18, "STK") = "100.00 STK"
func FormatBalance(raw *big.Int, decimals uint8, symbol string) string {
	if raw == nil {
		raw = new(big.Int)
	}
	amount := decimal.NewFromBigInt(raw, -int32(decimals)).StringFixed(displayPlaces)
	if symbol == "" {
		return amount
	}
	return amount + " " + symbol
}

// ParseUnits converts a decimal string to raw integer units
// Example: ParseUnits("100", 18) = 100000000000000000000
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal format: %w", err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}

	// Reject more fractional digits than the token supports instead of truncating
	raw := d.Shift(int32(decimals))
	if !raw.Equal(raw.Truncate(0)) {
		return nil, fmt.Errorf("fractional component exceeds %d decimals", decimals)
	}

	return raw.BigInt(), nil
}
