package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
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
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// TestFeeRateBps is the pool fee used by CreateTestPool.
const TestFeeRateBps uint32 = 30

// TestCreator is the address used as pool creator in tests.
var TestCreator = sdk.AccAddress([]byte("test_pool_creator___"))

// AMMKeeper creates a test keeper for the amm module backed by an in-memory
// multistore. The default genesis is applied and the minted admin
// capability is returned.
func AMMKeeper(t testing.TB) (*keeper.Keeper, sdk.Context, *capabilitytypes.Capability) {
	t.Helper()
	return AMMKeeperWithGenesis(t, *types.DefaultGenesis())
}

// AMMKeeperWithGenesis is AMMKeeper with a caller-supplied genesis state.
func AMMKeeperWithGenesis(t testing.TB, genState types.GenesisState) (*keeper.Keeper, sdk.Context, *capabilitytypes.Capability) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	capStoreKey := storetypes.NewKVStoreKey(capabilitytypes.StoreKey)
	capMemStoreKey := storetypes.NewMemoryStoreKey(capabilitytypes.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(capStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(capMemStoreKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	capKeeper := capabilitykeeper.NewKeeper(cdc, capStoreKey, capMemStoreKey)
	scopedKeeper := capKeeper.ScopeToModule(types.ModuleName)
	capKeeper.Seal()

	k := keeper.NewKeeper(storeKey, scopedKeeper, keeper.NewAMMMetrics())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, capKeeper.InitializeIndex(ctx, 1))

	cap, err := k.InitGenesis(ctx, genState)
	require.NoError(t, err)

	return k, ctx, cap
}

// CreateTestPool creates a pool with the given deposits at TestFeeRateBps
// and returns its ID.
func CreateTestPool(t testing.TB, k *keeper.Keeper, ctx sdk.Context, tokenA, tokenB string, amountA, amountB math.Int) uint64 {
	t.Helper()

	poolID, shares, err := k.CreatePair(ctx, TestCreator,
		sdk.NewCoin(tokenA, amountA), sdk.NewCoin(tokenB, amountB), TestFeeRateBps)
	require.NoError(t, err)
	require.True(t, shares.Amount.IsPositive())
	return poolID
}
