package keeper

import (
	"context"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// CreatePair creates the pool for the ordered pair (depositA.Denom,
// depositB.Denom) seeded with both deposits, and returns the pool ID and the
// liquidity shares minted to the creator.
//
// The pair key is not canonicalised: creating (B,A) after (A,B) yields a
// second, independent pool.
func (k Keeper) CreatePair(ctx context.Context, creator sdk.AccAddress, depositA, depositB sdk.Coin, feeRateBps uint32) (uint64, sdk.Coin, error) {
	tokenA, tokenB := depositA.Denom, depositB.Denom

	// 1. Input validation, in the documented order
	if tokenA == tokenB {
		return 0, sdk.Coin{}, types.ErrInvalidTokenOrder.Wrapf("cannot create pool with identical tokens %s", tokenA)
	}
	if err := sdk.ValidateDenom(tokenA); err != nil {
		return 0, sdk.Coin{}, types.ErrAssetMismatch.Wrapf("token a: %v", err)
	}
	if err := sdk.ValidateDenom(tokenB); err != nil {
		return 0, sdk.Coin{}, types.ErrAssetMismatch.Wrapf("token b: %v", err)
	}
	if k.HasPair(ctx, tokenA, tokenB) {
		return 0, sdk.Coin{}, types.ErrPairAlreadyExists.Wrapf("pool already exists for token pair %s/%s", tokenA, tokenB)
	}
	if err := types.ValidateFeeRate(feeRateBps); err != nil {
		return 0, sdk.Coin{}, err
	}
	if !isPositive(depositA.Amount) || !isPositive(depositB.Amount) {
		return 0, sdk.Coin{}, types.ErrInsufficientInput.Wrapf("deposits must be positive, got %s and %s", depositA.Amount, depositB.Amount)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, sdk.Coin{}, fmt.Errorf("CreatePair: get params: %w", err)
	}

	// 2. Initial shares: geometric mean with a fixed floor
	initialShares := types.InitialLiquidity(depositA.Amount, depositB.Amount, params.MinimumLiquidity)

	// 3. Build and store the pool
	poolID := k.GetNextPoolID(ctx)
	pool := types.NewPool(
		poolID, tokenA, tokenB,
		depositA.Amount, depositB.Amount, initialShares,
		feeRateBps, params.DefaultProtocolFeeBps,
		creator.String(),
	)
	if err := pool.Validate(); err != nil {
		return 0, sdk.Coin{}, fmt.Errorf("CreatePair: validate pool state: %w", err)
	}
	if err := k.SetPool(ctx, &pool); err != nil {
		return 0, sdk.Coin{}, fmt.Errorf("CreatePair: save pool: %w", err)
	}

	// 4. Register the ordered pair
	if err := k.RegisterPair(ctx, tokenA, tokenB, poolID); err != nil {
		return 0, sdk.Coin{}, err
	}

	// 5. Emit events
	poolIDStr := strconv.FormatUint(poolID, 10)
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypePairCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyTokenA, tokenA),
			sdk.NewAttribute(types.AttributeKeyTokenB, tokenB),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
		),
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyProvider, creator.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, depositA.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, depositB.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidityMinted, initialShares.String()),
		),
	})

	k.Logger(ctx).Info("pair created",
		"pool_id", poolID,
		"token_a", tokenA,
		"token_b", tokenB,
		"fee_rate_bps", feeRateBps,
		"shares", initialShares.String(),
	)

	if k.metrics != nil {
		k.metrics.PoolsTotal.Inc()
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, tokenA).Add(intToFloat(depositA.Amount))
		k.metrics.LiquidityAdded.WithLabelValues(poolIDStr, tokenB).Add(intToFloat(depositB.Amount))
	}

	return poolID, sdk.NewCoin(pool.ShareDenom(), initialShares), nil
}

// GetPoolByDenoms returns the pool registered under the ordered pair.
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (*types.Pool, error) {
	poolID, found := k.GetPairID(ctx, denomA, denomB)
	if !found {
		return nil, types.ErrPoolNotFound.Wrapf("no pool registered for %s/%s", denomA, denomB)
	}
	return k.GetPool(ctx, poolID)
}

func isPositive(i math.Int) bool {
	return !i.IsNil() && i.IsPositive()
}

func orZero(i math.Int) math.Int {
	if i.IsNil() {
		return math.ZeroInt()
	}
	return i
}
