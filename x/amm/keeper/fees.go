package keeper

import (
	"context"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// UpdateFees replaces a pool's swap fee and protocol fee fraction. Both values
// are validated before either is written.
func (k Keeper) UpdateFees(ctx context.Context, poolID uint64, cap *capabilitytypes.Capability, feeRateBps, protocolFeeBps uint32) error {
	if err := k.AuthenticateAdmin(ctx, cap); err != nil {
		return err
	}
	if err := types.ValidateFeeRate(feeRateBps); err != nil {
		return err
	}
	if err := types.ValidateProtocolFee(protocolFeeBps); err != nil {
		return err
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}

	oldFee, oldProtocol := pool.FeeRateBps, pool.ProtocolFeeBps
	pool.FeeRateBps = feeRateBps
	pool.ProtocolFeeBps = protocolFeeBps

	if err := k.SetPool(ctx, pool); err != nil {
		return fmt.Errorf("UpdateFees: save pool: %w", err)
	}

	poolIDStr := strconv.FormatUint(poolID, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeesUpdated,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyFeeRateBps, strconv.FormatUint(uint64(feeRateBps), 10)),
			sdk.NewAttribute(types.AttributeKeyProtocolFeeBps, strconv.FormatUint(uint64(protocolFeeBps), 10)),
		),
	)

	k.Logger(ctx).Info("pool fees updated",
		"pool_id", poolID,
		"old_fee_rate_bps", oldFee,
		"fee_rate_bps", feeRateBps,
		"old_protocol_fee_bps", oldProtocol,
		"protocol_fee_bps", protocolFeeBps,
	)

	if k.metrics != nil {
		k.metrics.FeeUpdates.WithLabelValues(poolIDStr).Inc()
	}
	return nil
}

// CollectFees drains both fee buckets of a pool to the capability holder.
// The protocol and liquidity-provider portions are withdrawn together; there
// is no separate distribution to share holders.
func (k Keeper) CollectFees(ctx context.Context, poolID uint64, cap *capabilitytypes.Capability) (sdk.Coin, sdk.Coin, error) {
	if err := k.AuthenticateAdmin(ctx, cap); err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}

	collectedA, collectedB := pool.CollectedFeesA, pool.CollectedFeesB
	protocolA, protocolB := pool.ProtocolFeesA, pool.ProtocolFeesB

	pool.CollectedFeesA = math.ZeroInt()
	pool.CollectedFeesB = math.ZeroInt()
	pool.ProtocolFeesA = math.ZeroInt()
	pool.ProtocolFeesB = math.ZeroInt()

	if err := k.SetPool(ctx, pool); err != nil {
		return sdk.Coin{}, sdk.Coin{}, fmt.Errorf("CollectFees: save pool: %w", err)
	}

	poolIDStr := strconv.FormatUint(poolID, 10)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeesCollected,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolIDStr),
			sdk.NewAttribute(types.AttributeKeyAmountA, collectedA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, collectedB.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolPortionA, protocolA.String()),
			sdk.NewAttribute(types.AttributeKeyProtocolPortionB, protocolB.String()),
		),
	)

	k.Logger(ctx).Info("pool fees collected",
		"pool_id", poolID,
		"amount_a", collectedA.String(),
		"amount_b", collectedB.String(),
	)

	if k.metrics != nil {
		k.metrics.FeeWithdrawals.WithLabelValues(poolIDStr, pool.TokenA).Add(intToFloat(collectedA))
		k.metrics.FeeWithdrawals.WithLabelValues(poolIDStr, pool.TokenB).Add(intToFloat(collectedB))
	}

	return sdk.NewCoin(pool.TokenA, collectedA), sdk.NewCoin(pool.TokenB, collectedB), nil
}
