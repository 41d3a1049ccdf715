package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is a trading pair holding the reserves of two denoms.
type Pool struct {
	Id     uint64 `json:"id"`
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`

	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`

	FeeRateBps     uint32 `json:"fee_rate_bps"`
	ProtocolFeeBps uint32 `json:"protocol_fee_bps"`

	// CollectedFeesA/B hold every fee taken on swaps until withdrawn.
	CollectedFeesA math.Int `json:"collected_fees_a"`
	CollectedFeesB math.Int `json:"collected_fees_b"`
	// ProtocolFeesA/B is the protocol portion already included in the
	// collected buckets above.
	ProtocolFeesA math.Int `json:"protocol_fees_a"`
	ProtocolFeesB math.Int `json:"protocol_fees_b"`

	Creator string `json:"creator"`
}

// NewPool returns a pool seeded with the given reserves and supply.
func NewPool(id uint64, tokenA, tokenB string, reserveA, reserveB, shares math.Int, feeRateBps, protocolFeeBps uint32, creator string) Pool {
	return Pool{
		Id:             id,
		TokenA:         tokenA,
		TokenB:         tokenB,
		ReserveA:       reserveA,
		ReserveB:       reserveB,
		TotalShares:    shares,
		FeeRateBps:     feeRateBps,
		ProtocolFeeBps: protocolFeeBps,
		CollectedFeesA: math.ZeroInt(),
		CollectedFeesB: math.ZeroInt(),
		ProtocolFeesA:  math.ZeroInt(),
		ProtocolFeesB:  math.ZeroInt(),
		Creator:        creator,
	}
}

// ShareDenom returns the denom of this pool's liquidity shares.
func (p Pool) ShareDenom() string {
	return ShareDenom(p.Id)
}

// IsEmpty reports whether both reserves are drained.
func (p Pool) IsEmpty() bool {
	return p.ReserveA.IsZero() && p.ReserveB.IsZero()
}

// ConstantProduct returns ReserveA * ReserveB. The product can exceed the
// math.Int bound, so it is returned as a big.Int.
func (p Pool) ConstantProduct() *big.Int {
	return new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
}

// Reserves returns (reserveIn, reserveOut) for a swap that sells denomIn.
func (p Pool) Reserves(denomIn string) (math.Int, math.Int, error) {
	switch denomIn {
	case p.TokenA:
		return p.ReserveA, p.ReserveB, nil
	case p.TokenB:
		return p.ReserveB, p.ReserveA, nil
	default:
		return math.Int{}, math.Int{}, ErrAssetMismatch.Wrapf("%s is not traded by pool %d (%s/%s)", denomIn, p.Id, p.TokenA, p.TokenB)
	}
}

// Validate performs stateless validation of a pool.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolState.Wrap("pool id cannot be zero")
	}
	if err := sdk.ValidateDenom(p.TokenA); err != nil {
		return ErrInvalidPoolState.Wrapf("token a: %v", err)
	}
	if err := sdk.ValidateDenom(p.TokenB); err != nil {
		return ErrInvalidPoolState.Wrapf("token b: %v", err)
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidTokenOrder.Wrapf("pool %d trades %s against itself", p.Id, p.TokenA)
	}
	if err := ValidateFeeRate(p.FeeRateBps); err != nil {
		return err
	}
	if err := ValidateProtocolFee(p.ProtocolFeeBps); err != nil {
		return err
	}

	amounts := []struct {
		name  string
		value math.Int
	}{
		{"reserve a", p.ReserveA},
		{"reserve b", p.ReserveB},
		{"total shares", p.TotalShares},
		{"collected fees a", p.CollectedFeesA},
		{"collected fees b", p.CollectedFeesB},
		{"protocol fees a", p.ProtocolFeesA},
		{"protocol fees b", p.ProtocolFeesB},
	}
	for _, a := range amounts {
		if a.value.IsNil() || a.value.IsNegative() {
			return ErrInvalidPoolState.Wrapf("pool %d: %s must be non-negative, got %v", p.Id, a.name, a.value)
		}
	}

	if p.TotalShares.IsZero() && !p.IsEmpty() {
		return ErrInvalidPoolState.Wrapf("pool %d holds reserves %s/%s with zero supply", p.Id, p.ReserveA, p.ReserveB)
	}
	if p.ProtocolFeesA.GT(p.CollectedFeesA) || p.ProtocolFeesB.GT(p.CollectedFeesB) {
		return ErrInvalidPoolState.Wrapf("pool %d: protocol portion exceeds collected fees", p.Id)
	}
	return nil
}

// String implements fmt.Stringer
func (p Pool) String() string {
	return fmt.Sprintf("pool %d %s/%s reserves=%s/%s shares=%s fee=%dbps protocol=%d",
		p.Id, p.TokenA, p.TokenB, p.ReserveA, p.ReserveB, p.TotalShares, p.FeeRateBps, p.ProtocolFeeBps)
}
