package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// MaxIterationLimit bounds the number of pools returned by unpaginated queries
const MaxIterationLimit = 100

// Keeper of the amm store
type Keeper struct {
	storeKey     storetypes.StoreKey
	scopedKeeper types.ScopedKeeper
	metrics      *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance. metrics may be nil, in which
// case nothing is recorded.
func NewKeeper(
	key storetypes.StoreKey,
	scopedKeeper types.ScopedKeeper,
	metrics *AMMMetrics,
) *Keeper {
	return &Keeper{
		storeKey:     key,
		scopedKeeper: scopedKeeper,
		metrics:      metrics,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.NextPoolIDKey)

	poolID := uint64(1)
	if bz != nil {
		poolID = binary.BigEndian.Uint64(bz)
	}

	store.Set(types.NextPoolIDKey, sdk.Uint64ToBigEndian(poolID+1))
	return poolID
}

// PeekNextPoolID returns the ID the next pool will receive without consuming it
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.NextPoolIDKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	k.getStore(ctx).Set(types.NextPoolIDKey, sdk.Uint64ToBigEndian(poolID))
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return &pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.Id), bz)
	k.recordPoolState(pool)
	return nil
}

// IteratePools iterates over all pools in ID order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns up to MaxIterationLimit pools
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, MaxIterationLimit)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return len(pools) >= MaxIterationLimit
	})
	return pools, err
}

// GetParams returns the module parameters, falling back to defaults when unset
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, fmt.Errorf("GetParams: unmarshal: %w", err)
	}
	return params, nil
}

// SetParams validates and stores the module parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
