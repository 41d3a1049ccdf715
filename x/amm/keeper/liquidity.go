package keeper

import (
	"context"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// AddLiquidity deposits into an existing pool and mints liquidity shares.
// Against a non-empty pool only the ratio-matching portion of the deposit is
// used; the unused remainder of each side is returned as leftovers.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	depositA, depositB sdk.Coin,
	minLiquidityOut math.Int,
) (leftoverA, leftoverB, shares sdk.Coin, err error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
	}

	if depositA.Denom != pool.TokenA || depositB.Denom != pool.TokenB {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrAssetMismatch.Wrapf(
			"pool %d expects %s/%s, got %s/%s", poolID, pool.TokenA, pool.TokenB, depositA.Denom, depositB.Denom)
	}

	amountA, amountB := orZero(depositA.Amount), orZero(depositB.Amount)
	if amountA.IsNegative() || amountB.IsNegative() {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrInsufficientInput.Wrap("deposits cannot be negative")
	}
	if amountA.IsZero() && amountB.IsZero() {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrInsufficientInput.Wrap("at least one deposit must be positive")
	}

	var usedA, usedB, minted math.Int

	if pool.IsEmpty() {
		// Drained or never funded: accept both sides in full
		if !pool.TotalShares.IsZero() {
			return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrInvalidPoolState.Wrapf(
				"pool %d has supply %s but zero reserves", poolID, pool.TotalShares)
		}
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("AddLiquidity: get params: %w", err)
		}
		usedA, usedB = amountA, amountB
		minted = types.InitialLiquidity(usedA, usedB, params.MinimumLiquidity)
	} else {
		if pool.TotalShares.IsZero() {
			return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrInvalidPoolState.Wrapf(
				"pool %d has reserves %s/%s but zero supply", poolID, pool.ReserveA, pool.ReserveB)
		}
		usedA, usedB, err = types.QuoteOptimalDeposit(amountA, amountB, pool.ReserveA, pool.ReserveB)
		if err != nil {
			return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
		}
		minted, err = types.MintedLiquidity(usedA, usedB, pool.ReserveA, pool.ReserveB, pool.TotalShares)
		if err != nil {
			return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
		}
	}

	if minted.LT(orZero(minLiquidityOut)) {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, types.ErrSlippageExceeded.Wrapf(
			"liquidity minted %s below minimum %s", minted, minLiquidityOut)
	}

	// Update reserves and supply with overflow protection
	if pool.ReserveA, err = types.SafeAdd(pool.ReserveA, usedA); err != nil {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
	}
	if pool.ReserveB, err = types.SafeAdd(pool.ReserveB, usedB); err != nil {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
	}
	if pool.TotalShares, err = types.SafeAdd(pool.TotalShares, minted); err != nil {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, err
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return sdk.Coin{}, sdk.Coin{}, sdk.Coin{}, fmt.Errorf("AddLiquidity: save pool: %w", err)
	}

	poolIDStr := strconv.FormatUint(poolID, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, usedA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, usedB.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidityMinted, minted.String()),
		),
	)

	k.Logger(ctx).Debug("liquidity added",
		"pool_id", poolID,
		"provider", provider.String(),
		"amount_a", usedA.String(),
		"amount_b", usedB.String(),
		"minted", minted.String(),
	)

	if k.metrics != nil {
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenA).Add(intToFloat(usedA))
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, pool.TokenB).Add(intToFloat(usedB))
	}

	return sdk.NewCoin(pool.TokenA, amountA.Sub(usedA)),
		sdk.NewCoin(pool.TokenB, amountB.Sub(usedB)),
		sdk.NewCoin(pool.ShareDenom(), minted),
		nil
}

// RemoveLiquidity burns liquidity shares and returns the proportional reserves.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	shares sdk.Coin,
	minOutA, minOutB math.Int,
) (outA, outB sdk.Coin, err error) {
	burn := orZero(shares.Amount)
	if burn.IsZero() {
		return sdk.Coin{}, sdk.Coin{}, types.ErrZeroAmount.Wrap("liquidity to burn cannot be zero")
	}
	if burn.IsNegative() {
		return sdk.Coin{}, sdk.Coin{}, types.ErrInsufficientInput.Wrapf("liquidity to burn cannot be negative: %s", burn)
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}
	if shares.Denom != pool.ShareDenom() {
		return sdk.Coin{}, sdk.Coin{}, types.ErrAssetMismatch.Wrapf(
			"pool %d burns %s, got %s", poolID, pool.ShareDenom(), shares.Denom)
	}

	amountA, amountB, err := types.WithdrawAmounts(burn, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}

	if amountA.LT(orZero(minOutA)) {
		return sdk.Coin{}, sdk.Coin{}, types.ErrSlippageExceeded.Wrapf("%s out %s below minimum %s", pool.TokenA, amountA, minOutA)
	}
	if amountB.LT(orZero(minOutB)) {
		return sdk.Coin{}, sdk.Coin{}, types.ErrSlippageExceeded.Wrapf("%s out %s below minimum %s", pool.TokenB, amountB, minOutB)
	}

	if pool.TotalShares, err = types.SafeSub(pool.TotalShares, burn); err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}
	if pool.ReserveA, err = types.SafeSub(pool.ReserveA, amountA); err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}
	if pool.ReserveB, err = types.SafeSub(pool.ReserveB, amountB); err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return sdk.Coin{}, sdk.Coin{}, fmt.Errorf("RemoveLiquidity: save pool: %w", err)
	}

	poolIDStr := strconv.FormatUint(poolID, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidityBurned, burn.String()),
		),
	)

	k.Logger(ctx).Debug("liquidity removed",
		"pool_id", poolID,
		"provider", provider.String(),
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"burned", burn.String(),
	)

	if k.metrics != nil {
		k.metrics.LiquidityRemoved.WithLabelValues(poolIDStr, pool.TokenA).Add(intToFloat(amountA))
		k.metrics.LiquidityRemoved.WithLabelValues(poolIDStr, pool.TokenB).Add(intToFloat(amountB))
	}

	return sdk.NewCoin(pool.TokenA, amountA), sdk.NewCoin(pool.TokenB, amountB), nil
}
