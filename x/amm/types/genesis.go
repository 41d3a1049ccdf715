package types

import (
	"fmt"
)

// GenesisState defines the AMM module's genesis state.
type GenesisState struct {
	Params     Params `json:"params"`
	Pools      []Pool `json:"pools"`
	NextPoolId uint64 `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		NextPoolId: 1,
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	ids := make(map[uint64]struct{}, len(gs.Pools))
	pairs := make(map[string]uint64, len(gs.Pools))
	var maxID uint64
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		if _, dup := ids[pool.Id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool id %d", pool.Id)
		}
		ids[pool.Id] = struct{}{}

		bz, err := PairKey(pool.TokenA, pool.TokenB)
		if err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
		key := string(bz)
		if other, dup := pairs[key]; dup {
			return ErrPairAlreadyExists.Wrapf("pools %d and %d both trade %s/%s", other, pool.Id, pool.TokenA, pool.TokenB)
		}
		pairs[key] = pool.Id

		if pool.Id > maxID {
			maxID = pool.Id
		}
	}

	if gs.NextPoolId <= maxID {
		return ErrInvalidGenesis.Wrapf("next pool id %d must exceed highest pool id %d", gs.NextPoolId, maxID)
	}
	return nil
}
