package app

import (
	"encoding/json"
	"fmt"
	"os"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// NewDefaultGenesisState returns an empty amm genesis carrying the params of cfg.
func NewDefaultGenesisState(cfg Config) *ammtypes.GenesisState {
	genState := ammtypes.DefaultGenesis()
	genState.Params = cfg.Params()
	return genState
}

// LoadGenesisFile reads and validates a JSON genesis document.
func LoadGenesisFile(path string) (*ammtypes.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadGenesisFile: %w", err)
	}

	var genState ammtypes.GenesisState
	if err := json.Unmarshal(bz, &genState); err != nil {
		return nil, fmt.Errorf("LoadGenesisFile: decode %s: %w", path, err)
	}
	if err := genState.Validate(); err != nil {
		return nil, fmt.Errorf("LoadGenesisFile: %w", err)
	}
	return &genState, nil
}

// WriteGenesisFile writes genState as indented JSON.
func WriteGenesisFile(path string, genState *ammtypes.GenesisState) error {
	bz, err := json.MarshalIndent(genState, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteGenesisFile: encode: %w", err)
	}
	if err := os.WriteFile(path, bz, 0o600); err != nil {
		return fmt.Errorf("WriteGenesisFile: %w", err)
	}
	return nil
}
