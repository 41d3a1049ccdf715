package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// The pair registry maps an ordered (denomA, denomB) key to a pool ID.
// (A,B) and (B,A) are independent entries. Entries are written once and
// never updated or removed.

// RegisterPair records poolID under the ordered pair key.
// Returns ErrPairAlreadyExists if the exact key is taken.
func (k Keeper) RegisterPair(ctx context.Context, denomA, denomB string, poolID uint64) error {
	store := k.getStore(ctx)
	key, err := types.PairKey(denomA, denomB)
	if err != nil {
		return err
	}
	if store.Has(key) {
		return types.ErrPairAlreadyExists.Wrapf("pair %s/%s already registered", denomA, denomB)
	}
	store.Set(key, sdk.Uint64ToBigEndian(poolID))
	return nil
}

// HasPair reports whether the ordered pair is registered. A pair whose key
// cannot be built was never registered.
func (k Keeper) HasPair(ctx context.Context, denomA, denomB string) bool {
	key, err := types.PairKey(denomA, denomB)
	if err != nil {
		return false
	}
	return k.getStore(ctx).Has(key)
}

// GetPairID returns the pool ID registered under the ordered pair.
func (k Keeper) GetPairID(ctx context.Context, denomA, denomB string) (uint64, bool) {
	key, err := types.PairKey(denomA, denomB)
	if err != nil {
		return 0, false
	}
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

// IteratePairs walks every registry entry.
func (k Keeper) IteratePairs(ctx context.Context, cb func(denomA, denomB string, poolID uint64) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		denomA, denomB, err := types.ParsePairKey(iterator.Key()[len(types.PairKeyPrefix):])
		if err != nil {
			return fmt.Errorf("IteratePairs: %w", err)
		}
		if cb(denomA, denomB, binary.BigEndian.Uint64(iterator.Value())) {
			break
		}
	}
	return nil
}
