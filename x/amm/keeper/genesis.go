package keeper

import (
	"context"
	"fmt"

	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state and
// mints the admin capability, which is returned to the caller. The caller
// decides who holds it.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) (*capabilitytypes.Capability, error) {
	if err := genState.Validate(); err != nil {
		return nil, fmt.Errorf("InitGenesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return nil, fmt.Errorf("InitGenesis: set params: %w", err)
	}

	for i := range genState.Pools {
		pool := genState.Pools[i]
		if err := k.SetPool(ctx, &pool); err != nil {
			return nil, fmt.Errorf("InitGenesis: set pool %d: %w", pool.Id, err)
		}
		if err := k.RegisterPair(ctx, pool.TokenA, pool.TokenB, pool.Id); err != nil {
			return nil, fmt.Errorf("InitGenesis: register pool %d: %w", pool.Id, err)
		}
	}

	k.SetNextPoolID(ctx, genState.NextPoolId)

	if k.metrics != nil {
		k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))
	}

	cap, err := k.MintAdminCapability(ctx)
	if err != nil {
		return nil, fmt.Errorf("InitGenesis: %w", err)
	}

	k.Logger(ctx).Info("amm genesis initialized",
		"pools", len(genState.Pools),
		"next_pool_id", genState.NextPoolId,
	)
	return cap, nil
}

// ExportGenesis returns the amm module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: get params: %w", err)
	}

	pools := []types.Pool{}
	if err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	}); err != nil {
		return nil, fmt.Errorf("ExportGenesis: %w", err)
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		NextPoolId: k.PeekNextPoolID(ctx),
	}, nil
}
