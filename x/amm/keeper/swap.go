package keeper

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// SwapAToB sells TokenA for TokenB.
func (k Keeper) SwapAToB(ctx context.Context, trader sdk.AccAddress, poolID uint64, in sdk.Coin, minAmountOut math.Int) (sdk.Coin, error) {
	return k.executeSwap(ctx, trader, poolID, in, minAmountOut, true)
}

// SwapBToA sells TokenB for TokenA.
func (k Keeper) SwapBToA(ctx context.Context, trader sdk.AccAddress, poolID uint64, in sdk.Coin, minAmountOut math.Int) (sdk.Coin, error) {
	return k.executeSwap(ctx, trader, poolID, in, minAmountOut, false)
}

// executeSwap performs a swap using the constant product formula.
//
// Reserve accounting: the full input is added to the input reserve, then the
// fee is moved from that reserve into the input-side fee bucket, so the input
// reserve grows by amountIn - fee. The output is priced by types.QuoteSwap.
func (k Keeper) executeSwap(
	ctx context.Context,
	trader sdk.AccAddress,
	poolID uint64,
	in sdk.Coin,
	minAmountOut math.Int,
	aToB bool,
) (sdk.Coin, error) {
	start := time.Now()
	if k.metrics != nil {
		defer func() {
			k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		}()
	}
	poolIDStr := strconv.FormatUint(poolID, 10)

	amountIn := orZero(in.Amount)
	if !amountIn.IsPositive() {
		k.recordSwapFailure(poolIDStr, in.Denom, "")
		return sdk.Coin{}, types.ErrZeroAmount.Wrap("swap amount must be positive")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, err
	}

	tokenIn, tokenOut := pool.TokenA, pool.TokenB
	if !aToB {
		tokenIn, tokenOut = pool.TokenB, pool.TokenA
	}
	if in.Denom != tokenIn {
		k.recordSwapFailure(poolIDStr, in.Denom, tokenOut)
		return sdk.Coin{}, types.ErrAssetMismatch.Wrapf("pool %d sells %s for %s, got %s", poolID, tokenIn, tokenOut, in.Denom)
	}

	if pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
		k.recordSwapFailure(poolIDStr, tokenIn, tokenOut)
		return sdk.Coin{}, types.ErrInsufficientLiquidity.Wrapf("pool %d reserves %s/%s", poolID, pool.ReserveA, pool.ReserveB)
	}

	reserveIn, reserveOut, err := pool.Reserves(tokenIn)
	if err != nil {
		return sdk.Coin{}, err
	}

	quote, err := types.QuoteSwap(amountIn, reserveIn, reserveOut, pool.FeeRateBps, pool.ProtocolFeeBps)
	if err != nil {
		k.recordSwapFailure(poolIDStr, tokenIn, tokenOut)
		return sdk.Coin{}, err
	}

	if quote.AmountOut.LT(orZero(minAmountOut)) {
		k.recordSwapFailure(poolIDStr, tokenIn, tokenOut)
		return sdk.Coin{}, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, quote.AmountOut)
	}

	oldK := pool.ConstantProduct()

	// Credit the full input, then move the fee out into the fee bucket
	newReserveIn, err := types.SafeAdd(reserveIn, amountIn)
	if err != nil {
		return sdk.Coin{}, err
	}
	if newReserveIn, err = types.SafeSub(newReserveIn, quote.FeeAmount); err != nil {
		return sdk.Coin{}, err
	}
	newReserveOut, err := types.SafeSub(reserveOut, quote.AmountOut)
	if err != nil {
		return sdk.Coin{}, err
	}

	if aToB {
		pool.ReserveA, pool.ReserveB = newReserveIn, newReserveOut
		pool.CollectedFeesA = pool.CollectedFeesA.Add(quote.FeeAmount)
		pool.ProtocolFeesA = pool.ProtocolFeesA.Add(quote.ProtocolFee)
	} else {
		pool.ReserveB, pool.ReserveA = newReserveIn, newReserveOut
		pool.CollectedFeesB = pool.CollectedFeesB.Add(quote.FeeAmount)
		pool.ProtocolFeesB = pool.ProtocolFeesB.Add(quote.ProtocolFee)
	}

	// The constant product must never decrease across a swap
	if newK := pool.ConstantProduct(); newK.Cmp(oldK) < 0 {
		k.Logger(ctx).Error("constant product decreased",
			"pool_id", poolID,
			"old_k", oldK.String(),
			"new_k", newK.String(),
		)
		return sdk.Coin{}, types.ErrInvariantViolation.Wrapf(
			"constant product invariant violated in swap: old_k=%s, new_k=%s", oldK, newK)
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return sdk.Coin{}, fmt.Errorf("executeSwap: save pool: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapExecuted,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
			sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, quote.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFeeAmount, quote.FeeAmount.String()),
		),
	)

	k.Logger(ctx).Debug("swap executed",
		"pool_id", poolID,
		"trader", trader.String(),
		"token_in", tokenIn,
		"amount_in", amountIn.String(),
		"amount_out", quote.AmountOut.String(),
		"fee", quote.FeeAmount.String(),
	)

	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(poolIDStr, tokenIn, tokenOut, "success").Inc()
		k.metrics.SwapVolume.WithLabelValues(poolIDStr, tokenIn).Add(intToFloat(amountIn))
		k.metrics.SwapFeesCollected.WithLabelValues(poolIDStr, tokenIn).Add(intToFloat(quote.FeeAmount))
	}

	return sdk.NewCoin(tokenOut, quote.AmountOut), nil
}

func (k Keeper) recordSwapFailure(poolID, tokenIn, tokenOut string) {
	if k.metrics == nil {
		return
	}
	k.metrics.SwapsTotal.WithLabelValues(poolID, tokenIn, tokenOut, "failed").Inc()
}
