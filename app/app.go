// Package app wires the amm module into a standalone ledger.
//
// The ledger owns a commit multistore over a cosmos-db database, the
// capability keeper that issues the admin capability and the amm keeper.
// Every state transition runs against a cached branch of the store and is
// written back only when it succeeds, so a failed operation leaves no trace.
package app

import (
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitykeeper "github.com/cosmos/ibc-go/modules/capability/keeper"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	ammkeeper "github.com/paw-chain/pawswap/x/amm/keeper"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// DefaultChainID is used for context headers when none is configured.
const DefaultChainID = "pawswap-1"

// ErrAlreadyInitialized is returned by a second InitChain call.
var ErrAlreadyInitialized = errors.New("ledger already initialized")

// App is the amm ledger.
type App struct {
	mu sync.Mutex

	logger  log.Logger
	chainID string
	cms     storetypes.CommitMultiStore

	keys    map[string]*storetypes.KVStoreKey
	memKeys map[string]*storetypes.MemoryStoreKey

	CapabilityKeeper *capabilitykeeper.Keeper
	ScopedAMMKeeper  capabilitykeeper.ScopedKeeper
	AMMKeeper        *ammkeeper.Keeper

	invariants *InvariantRegistry

	height      int64
	initialized bool
}

// New creates the ledger on top of db and loads its latest version.
func New(logger log.Logger, db dbm.DB, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	SetConfig()

	app := &App{
		logger:  logger.With("module", "app"),
		chainID: DefaultChainID,
		cms:     store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics()),
		keys: storetypes.NewKVStoreKeys(
			ammtypes.StoreKey,
			capabilitytypes.StoreKey,
		),
		memKeys: storetypes.NewMemoryStoreKeys(capabilitytypes.MemStoreKey),
	}

	for _, key := range app.keys {
		app.cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	for _, key := range app.memKeys {
		app.cms.MountStoreWithDB(key, storetypes.StoreTypeMemory, nil)
	}
	if err := app.cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}
	app.height = app.cms.LastCommitID().Version

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	app.CapabilityKeeper = capabilitykeeper.NewKeeper(
		cdc,
		app.keys[capabilitytypes.StoreKey],
		app.memKeys[capabilitytypes.MemStoreKey],
	)
	app.ScopedAMMKeeper = app.CapabilityKeeper.ScopeToModule(ammtypes.ModuleName)
	app.CapabilityKeeper.Seal()

	var ammMetrics *ammkeeper.AMMMetrics
	if cfg.MetricsEnabled {
		ammMetrics = ammkeeper.NewAMMMetrics()
	}
	app.AMMKeeper = ammkeeper.NewKeeper(app.keys[ammtypes.StoreKey], app.ScopedAMMKeeper, ammMetrics)

	app.invariants = NewInvariantRegistry()
	ammkeeper.RegisterInvariants(app.invariants, *app.AMMKeeper)

	return app, nil
}

// Logger returns the ledger logger.
func (app *App) Logger() log.Logger { return app.logger }

// InitChain applies genState and returns the admin capability minted for it.
// It may only run once per ledger.
func (app *App) InitChain(genState *ammtypes.GenesisState) (*capabilitytypes.Capability, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.initialized || app.height > 0 {
		return nil, ErrAlreadyInitialized
	}

	ctx := app.newContext()
	cacheCtx, write := ctx.CacheContext()

	if err := app.CapabilityKeeper.InitializeIndex(cacheCtx, 1); err != nil {
		return nil, fmt.Errorf("InitChain: %w", err)
	}
	cap, err := app.AMMKeeper.InitGenesis(cacheCtx, *genState)
	if err != nil {
		return nil, fmt.Errorf("InitChain: %w", err)
	}
	write()

	app.initialized = true
	app.commit()

	app.logger.Info("ledger initialized", "chain_id", app.chainID, "height", app.height)
	return cap, nil
}

// Execute runs fn as one atomic operation. State written by fn and the
// events it emits are kept only when fn returns nil.
func (app *App) Execute(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx := app.newContext()
	cacheCtx, write := ctx.CacheContext()

	if err := fn(cacheCtx); err != nil {
		app.logger.Debug("operation reverted", "err", err)
		return nil, err
	}

	events := cacheCtx.EventManager().Events()
	write()
	return events, nil
}

// Query runs fn against a throwaway branch of the current state.
func (app *App) Query(fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	cacheCtx, _ := app.newContext().CacheContext()
	return fn(cacheCtx)
}

// Commit persists all executed operations as a new version.
func (app *App) Commit() storetypes.CommitID {
	app.mu.Lock()
	defer app.mu.Unlock()

	return app.commit()
}

// AssertInvariants runs every registered invariant against the current state.
func (app *App) AssertInvariants() error {
	return app.Query(func(ctx sdk.Context) error {
		return app.invariants.Assert(ctx)
	})
}

// ExportGenesis exports the current amm state.
func (app *App) ExportGenesis() (*ammtypes.GenesisState, error) {
	var genState *ammtypes.GenesisState
	err := app.Query(func(ctx sdk.Context) error {
		var err error
		genState, err = app.AMMKeeper.ExportGenesis(ctx)
		return err
	})
	return genState, err
}

func (app *App) commit() storetypes.CommitID {
	id := app.cms.Commit()
	app.height = id.Version
	return id
}

func (app *App) newContext() sdk.Context {
	header := cmtproto.Header{ChainID: app.chainID, Height: app.height + 1}
	return sdk.NewContext(app.cms, header, false, app.logger)
}
