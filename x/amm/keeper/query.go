package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// SimulateSwap quotes a swap of amountIn denomIn against the pool without
// changing state.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, denomIn string, amountIn math.Int) (types.SwapResult, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	reserveIn, reserveOut, err := pool.Reserves(denomIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	return types.QuoteSwap(orZero(amountIn), reserveIn, reserveOut, pool.FeeRateBps, pool.ProtocolFeeBps)
}

// GetSpotPrice returns the price of denomIn in units of the other pool asset
// (reserveOut / reserveIn), truncated to 18 decimals. Prices too large for a
// 256-bit fixed-point value fail with ErrOverflow.
func (k Keeper) GetSpotPrice(ctx context.Context, poolID uint64, denomIn string) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	reserveIn, reserveOut, err := pool.Reserves(denomIn)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.LegacyZeroDec(), types.ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	scaled, err := types.SafeMulDiv(reserveOut, decScale, reserveIn)
	if err != nil {
		return math.LegacyZeroDec(), types.ErrOverflow.Wrapf("spot price of pool %d: %v", poolID, err)
	}
	return math.LegacyNewDecFromIntWithPrec(scaled, math.LegacyPrecision), nil
}

// decScale is 10^18, the fixed-point scale of math.LegacyDec.
var decScale = math.NewIntWithDecimal(1, math.LegacyPrecision)
