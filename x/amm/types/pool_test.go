package types_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func newTestPool() types.Pool {
	return types.NewPool(1, "uatom", "uosmo", math.NewInt(1000), math.NewInt(2000), math.NewInt(1414), 30, types.DefaultProtocolFeeBps, "creator")
}

func TestPool_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *types.Pool)
		wantErr error
	}{
		{"valid", func(p *types.Pool) {}, nil},
		{"zero id", func(p *types.Pool) { p.Id = 0 }, types.ErrInvalidPoolState},
		{"bad denom", func(p *types.Pool) { p.TokenA = "1x" }, types.ErrInvalidPoolState},
		{"identical denoms", func(p *types.Pool) { p.TokenB = p.TokenA }, types.ErrInvalidTokenOrder},
		{"fee at 100%", func(p *types.Pool) { p.FeeRateBps = 10_000 }, types.ErrInvalidFeeConfig},
		{"protocol fee too high", func(p *types.Pool) { p.ProtocolFeeBps = 101 }, types.ErrInvalidFeeConfig},
		{"negative reserve", func(p *types.Pool) { p.ReserveA = math.NewInt(-1) }, types.ErrInvalidPoolState},
		{"nil fee bucket", func(p *types.Pool) { p.CollectedFeesB = math.Int{} }, types.ErrInvalidPoolState},
		{"reserves without supply", func(p *types.Pool) { p.TotalShares = math.ZeroInt() }, types.ErrInvalidPoolState},
		{
			"drained pool",
			func(p *types.Pool) {
				p.ReserveA, p.ReserveB, p.TotalShares = math.ZeroInt(), math.ZeroInt(), math.ZeroInt()
			},
			nil,
		},
		{
			"protocol portion above bucket",
			func(p *types.Pool) {
				p.CollectedFeesA = math.NewInt(5)
				p.ProtocolFeesA = math.NewInt(6)
			},
			types.ErrInvalidPoolState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newTestPool()
			tt.mutate(&pool)
			err := pool.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPool_Reserves(t *testing.T) {
	pool := newTestPool()

	in, out, err := pool.Reserves("uatom")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), in)
	require.Equal(t, math.NewInt(2000), out)

	in, out, err = pool.Reserves("uosmo")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2000), in)
	require.Equal(t, math.NewInt(1000), out)

	_, _, err = pool.Reserves("ujuno")
	require.ErrorIs(t, err, types.ErrAssetMismatch)
}

func TestPool_ConstantProduct(t *testing.T) {
	pool := newTestPool()
	require.Equal(t, int64(2_000_000), pool.ConstantProduct().Int64())
	require.False(t, pool.IsEmpty())
	require.Equal(t, "amm/pool/1", pool.ShareDenom())
}

func TestSafeMath(t *testing.T) {
	_, err := types.SafeSub(math.NewInt(1), math.NewInt(2))
	require.ErrorIs(t, err, types.ErrOverflow)

	maxInt := math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1)))
	_, err = types.SafeAdd(maxInt, math.OneInt())
	require.ErrorIs(t, err, types.ErrOverflow)

	_, err = types.SafeMulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	// The intermediate product may exceed 256 bits when the quotient fits
	res, err := types.SafeMulDiv(maxInt, math.NewInt(4), math.NewInt(8))
	require.NoError(t, err)
	require.True(t, res.LT(maxInt))

	require.Equal(t, int64(1414), types.Sqrt(big.NewInt(2_000_000)).Int64())
	require.True(t, types.Sqrt(big.NewInt(0)).IsZero())
	require.True(t, types.Sqrt(nil).IsZero())

	// The widest product of two reserves roots back to the reserve
	square := new(big.Int).Mul(maxInt.BigInt(), maxInt.BigInt())
	require.True(t, types.Sqrt(square).Equal(maxInt))
}
