package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-supply", PoolSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-fees", PoolFeesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "registry", RegistryInvariant(k))
}

// AllInvariants runs all invariants of the AMM module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolFeesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return RegistryInvariant(k)(ctx)
	}
}

// PoolSupplyInvariant checks that a pool has zero supply exactly when both
// reserves are drained, and that no amount is negative.
func PoolSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.ReserveA.IsNegative() || pool.ReserveB.IsNegative() || pool.TotalShares.IsNegative() {
				count++
				msg += fmt.Sprintf("pool %d: negative amount (reserves %s/%s, shares %s)\n",
					pool.Id, pool.ReserveA, pool.ReserveB, pool.TotalShares)
				return false
			}
			if pool.TotalShares.IsZero() != pool.IsEmpty() {
				count++
				msg += fmt.Sprintf("pool %d: shares %s inconsistent with reserves %s/%s\n",
					pool.Id, pool.TotalShares, pool.ReserveA, pool.ReserveB)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-supply", err.Error()), true
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-supply",
			fmt.Sprintf("found %d pools with inconsistent supply\n%s", count, msg),
		), count != 0
	}
}

// PoolFeesInvariant checks fee configuration bounds and that the recorded
// protocol portion never exceeds the collected bucket.
func PoolFeesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.FeeRateBps >= types.MaxFeeRateBps || pool.ProtocolFeeBps > types.MaxProtocolFeeBps {
				count++
				msg += fmt.Sprintf("pool %d: fee config out of bounds (%d bps, protocol %d)\n",
					pool.Id, pool.FeeRateBps, pool.ProtocolFeeBps)
			}
			if pool.CollectedFeesA.IsNegative() || pool.CollectedFeesB.IsNegative() ||
				pool.ProtocolFeesA.GT(pool.CollectedFeesA) || pool.ProtocolFeesB.GT(pool.CollectedFeesB) {
				count++
				msg += fmt.Sprintf("pool %d: fee buckets inconsistent (collected %s/%s, protocol %s/%s)\n",
					pool.Id, pool.CollectedFeesA, pool.CollectedFeesB, pool.ProtocolFeesA, pool.ProtocolFeesB)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-fees", err.Error()), true
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-fees",
			fmt.Sprintf("found %d pools with invalid fee state\n%s", count, msg),
		), count != 0
	}
}

// RegistryInvariant checks that every pool is registered under its own
// ordered pair and that every registry entry points at a matching pool.
func RegistryInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			id, found := k.GetPairID(ctx, pool.TokenA, pool.TokenB)
			if !found || id != pool.Id {
				count++
				msg += fmt.Sprintf("pool %d: pair %s/%s not registered to it\n", pool.Id, pool.TokenA, pool.TokenB)
			}
			return false
		})
		if err == nil {
			err = k.IteratePairs(ctx, func(denomA, denomB string, poolID uint64) bool {
				pool, getErr := k.GetPool(ctx, poolID)
				if getErr != nil || pool.TokenA != denomA || pool.TokenB != denomB {
					count++
					msg += fmt.Sprintf("pair %s/%s: points at missing or mismatched pool %d\n", denomA, denomB, poolID)
				}
				return false
			})
		}
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "registry", err.Error()), true
		}

		return sdk.FormatInvariant(
			types.ModuleName, "registry",
			fmt.Sprintf("found %d registry inconsistencies\n%s", count, msg),
		), count != 0
	}
}
