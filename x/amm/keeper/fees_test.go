package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// TestCollectFees_Twice tests that a withdrawal empties both buckets
func TestCollectFees_Twice(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)
	poolID := keepertest.CreateTestPool(t, k, ctx, denomA, denomB, math.NewInt(10_000_000), math.NewInt(20_000_000))
	trader := createTestTrader(1)

	_, err := k.SwapAToB(ctx, trader, poolID, coinA(1_000_000), math.ZeroInt())
	require.NoError(t, err)
	_, err = k.SwapBToA(ctx, trader, poolID, coinB(500_000), math.ZeroInt())
	require.NoError(t, err)

	feesA, feesB, err := k.CollectFees(ctx, poolID, adminCap)
	require.NoError(t, err)
	require.Equal(t, coinA(3000), feesA)
	require.Equal(t, coinB(1500), feesB)

	collected := findEvents(ctx, types.EventTypeFeesCollected)
	require.Len(t, collected, 1)
	require.Equal(t, "6", attribute(t, collected[0], types.AttributeKeyProtocolPortionA))
	require.Equal(t, "3", attribute(t, collected[0], types.AttributeKeyProtocolPortionB))

	feesA, feesB, err = k.CollectFees(ctx, poolID, adminCap)
	require.NoError(t, err)
	require.True(t, feesA.IsZero())
	require.True(t, feesB.IsZero())

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.True(t, pool.ProtocolFeesA.IsZero())
	require.True(t, pool.ProtocolFeesB.IsZero())
}

// TestCollectFees_Unauthorized tests that only the minted capability is accepted
func TestCollectFees_Unauthorized(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)
	poolID := keepertest.CreateTestPool(t, k, ctx, denomA, denomB, math.NewInt(10_000_000), math.NewInt(20_000_000))

	_, err := k.SwapAToB(ctx, createTestTrader(1), poolID, coinA(1_000_000), math.ZeroInt())
	require.NoError(t, err)

	// Same index, different object
	forged := capabilitytypes.NewCapability(adminCap.GetIndex())
	_, _, err = k.CollectFees(ctx, poolID, forged)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, _, err = k.CollectFees(ctx, poolID, nil)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// A capability minted by another ledger is foreign here
	_, _, foreignCap := keepertest.AMMKeeper(t)
	_, _, err = k.CollectFees(ctx, poolID, foreignCap)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, int64(3000), pool.CollectedFeesA.Int64())
}

func TestCollectFees_PoolNotFound(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)

	_, _, err := k.CollectFees(ctx, 7, adminCap)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

// TestUpdateFees tests fee administration
func TestUpdateFees(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)
	poolID := keepertest.CreateTestPool(t, k, ctx, denomA, denomB, math.NewInt(1000), math.NewInt(2000))

	require.NoError(t, k.UpdateFees(ctx, poolID, adminCap, 100, 50))

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, uint32(100), pool.FeeRateBps)
	require.Equal(t, uint32(50), pool.ProtocolFeeBps)

	updated := findEvents(ctx, types.EventTypeFeesUpdated)
	require.Len(t, updated, 1)
	require.Equal(t, "100", attribute(t, updated[0], types.AttributeKeyFeeRateBps))
	require.Equal(t, "50", attribute(t, updated[0], types.AttributeKeyProtocolFeeBps))

	// Swaps now pay the new fee: 1% of 1000
	_, err = k.SwapAToB(ctx, createTestTrader(1), poolID, coinA(1000), math.ZeroInt())
	require.NoError(t, err)
	pool, err = k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, int64(10), pool.CollectedFeesA.Int64())
}

func TestUpdateFees_Invalid(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)
	poolID := keepertest.CreateTestPool(t, k, ctx, denomA, denomB, math.NewInt(1000), math.NewInt(2000))

	tests := []struct {
		name        string
		fee         uint32
		protocolFee uint32
	}{
		{"fee at 100%", 10_000, 20},
		{"fee above 100%", 15_000, 20},
		{"protocol fee above bound", 30, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := k.UpdateFees(ctx, poolID, adminCap, tt.fee, tt.protocolFee)
			require.ErrorIs(t, err, types.ErrInvalidFeeConfig)
		})
	}

	err := k.UpdateFees(ctx, poolID, capabilitytypes.NewCapability(99), 100, 50)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.UpdateFees(ctx, poolID+1, adminCap, 100, 50)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, uint32(keepertest.TestFeeRateBps), pool.FeeRateBps)
	require.Equal(t, uint32(types.DefaultProtocolFeeBps), pool.ProtocolFeeBps)
}

func TestAdminCapability(t *testing.T) {
	k, ctx, adminCap := keepertest.AMMKeeper(t)

	require.True(t, k.HasAdminCapability(ctx))
	require.NoError(t, k.AuthenticateAdmin(ctx, adminCap))

	// Minted only once
	_, err := k.MintAdminCapability(ctx)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}
