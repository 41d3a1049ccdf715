package types

import (
	"cosmossdk.io/math"
)

// Params defines the AMM module parameters.
type Params struct {
	// DefaultProtocolFeeBps is the protocol fee fraction given to new pools.
	DefaultProtocolFeeBps uint32 `json:"default_protocol_fee_bps"`
	// MinimumLiquidity is the floor applied to a pool's first liquidity mint.
	MinimumLiquidity math.Int `json:"minimum_liquidity"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		DefaultProtocolFeeBps: DefaultProtocolFeeBps,
		MinimumLiquidity:      math.NewInt(MinimumLiquidity),
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.DefaultProtocolFeeBps > MaxProtocolFeeBps {
		return ErrInvalidParams.Wrapf("default protocol fee %d exceeds %d", p.DefaultProtocolFeeBps, MaxProtocolFeeBps)
	}
	if p.MinimumLiquidity.IsNil() || !p.MinimumLiquidity.IsPositive() {
		return ErrInvalidParams.Wrap("minimum liquidity must be positive")
	}
	return nil
}
