package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// FeeParams holds the EIP-1559 fee bids attached to a transaction, in wei.
// Values are kept as the decimal or 0x-prefixed hex strings they were given
// in; an empty value leaves the choice to the node.
type FeeParams struct {
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
}

// GasFeeCap returns MaxFeePerGas as a big.Int, or nil when unset.
func (f FeeParams) GasFeeCap() (*big.Int, error) {
	return ParseWei("maxFeePerGas", f.MaxFeePerGas)
}

// GasTipCap returns MaxPriorityFeePerGas as a big.Int, or nil when unset.
func (f FeeParams) GasTipCap() (*big.Int, error) {
	return ParseWei("maxPriorityFeePerGas", f.MaxPriorityFeePerGas)
}

// IsZero reports whether neither fee is set.
func (f FeeParams) IsZero() bool {
	return f.MaxFeePerGas == "" && f.MaxPriorityFeePerGas == ""
}

// Merge returns f with empty fields filled in from fallback.
func (f FeeParams) Merge(fallback FeeParams) FeeParams {
	if f.MaxFeePerGas == "" {
		f.MaxFeePerGas = fallback.MaxFeePerGas
	}
	if f.MaxPriorityFeePerGas == "" {
		f.MaxPriorityFeePerGas = fallback.MaxPriorityFeePerGas
	}
	return f
}

// ParseWei parses a decimal or 0x-prefixed hex amount of wei. Empty is nil.
func ParseWei(field, value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	base := 10
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		base = 16
		value = value[2:]
	}

	n, ok := new(big.Int).SetString(value, base)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q: not a number", field, value)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s %q: negative", field, value)
	}
	return n, nil
}
