package types_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func TestValidateFeeRate(t *testing.T) {
	require.NoError(t, types.ValidateFeeRate(0))
	require.NoError(t, types.ValidateFeeRate(30))
	require.NoError(t, types.ValidateFeeRate(9999))
	require.ErrorIs(t, types.ValidateFeeRate(10000), types.ErrInvalidFeeConfig)
	require.ErrorIs(t, types.ValidateFeeRate(15000), types.ErrInvalidFeeConfig)
}

func TestValidateProtocolFee(t *testing.T) {
	require.NoError(t, types.ValidateProtocolFee(0))
	require.NoError(t, types.ValidateProtocolFee(100))
	require.ErrorIs(t, types.ValidateProtocolFee(101), types.ErrInvalidFeeConfig)
}

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		bps    uint32
		want   int64
	}{
		{"zero fee", 10_000, 0, 0},
		{"30 bps", 10_000, 30, 30},
		{"rounds down", 100, 30, 0},
		{"rounds down partial", 9970, 30, 29},
		{"full amount", 10_000, 10_000, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := types.CalculateFee(math.NewInt(tt.amount), tt.bps)
			require.NoError(t, err)
			require.Equal(t, tt.want, fee.Int64())
		})
	}
}

func TestSplitFee(t *testing.T) {
	protocol, lp, err := types.SplitFee(math.NewInt(100_000), 20)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), protocol)
	require.Equal(t, math.NewInt(99_800), lp)

	// Small fees leave nothing for the protocol
	protocol, lp, err = types.SplitFee(math.NewInt(30), 20)
	require.NoError(t, err)
	require.True(t, protocol.IsZero())
	require.Equal(t, math.NewInt(30), lp)
}

func TestGetAmountOut(t *testing.T) {
	out, err := types.GetAmountOut(math.NewInt(100), math.NewInt(1000), math.NewInt(2000), 0)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(181), out)

	// 9970 after a 30 bps fee is 9941
	out, err = types.GetAmountOut(math.NewInt(9970), math.NewInt(1_000_000), math.NewInt(2_000_000), 30)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(19_686), out)

	_, err = types.GetAmountOut(math.NewInt(100), math.ZeroInt(), math.NewInt(2000), 30)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	_, err = types.GetAmountOut(math.NewInt(100), math.NewInt(1000), math.ZeroInt(), 30)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestQuoteSwap_DoubleFee(t *testing.T) {
	quote, err := types.QuoteSwap(math.NewInt(10_000), math.NewInt(1_000_000), math.NewInt(2_000_000), 30, 20)
	require.NoError(t, err)

	require.Equal(t, math.NewInt(10_000), quote.AmountIn)
	require.Equal(t, math.NewInt(30), quote.FeeAmount)
	require.Equal(t, math.NewInt(9970), quote.AmountInAfterFee)
	require.Equal(t, math.NewInt(9941), quote.PricedInput)
	require.Equal(t, math.NewInt(19_686), quote.AmountOut)
	require.True(t, quote.ProtocolFee.IsZero())
	require.Equal(t, math.NewInt(30), quote.LPFee)
}

func TestQuoteSwap_Errors(t *testing.T) {
	_, err := types.QuoteSwap(math.ZeroInt(), math.NewInt(1000), math.NewInt(1000), 30, 20)
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = types.QuoteSwap(math.NewInt(-5), math.NewInt(1000), math.NewInt(1000), 30, 20)
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = types.QuoteSwap(math.NewInt(100), math.ZeroInt(), math.NewInt(1000), 30, 20)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestInitialLiquidity(t *testing.T) {
	minimum := math.NewInt(types.MinimumLiquidity)

	require.Equal(t, math.NewInt(1414), types.InitialLiquidity(math.NewInt(1000), math.NewInt(2000), minimum))
	require.Equal(t, math.NewInt(1_000_000), types.InitialLiquidity(math.NewInt(1_000_000), math.NewInt(1_000_000), minimum))

	// Tiny deposits are floored to the minimum
	require.Equal(t, minimum, types.InitialLiquidity(math.NewInt(10), math.NewInt(10), minimum))

	// A product above 256 bits still resolves
	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	shares := types.InitialLiquidity(huge, huge, minimum)
	require.Equal(t, huge, shares)
}

func TestQuoteOptimalDeposit(t *testing.T) {
	reserveA, reserveB := math.NewInt(1000), math.NewInt(2000)

	// B is the binding side: 800 A would need 1600 B
	usedA, usedB, err := types.QuoteOptimalDeposit(math.NewInt(800), math.NewInt(1000), reserveA, reserveB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), usedA)
	require.Equal(t, math.NewInt(1000), usedB)

	// A is the binding side
	usedA, usedB, err = types.QuoteOptimalDeposit(math.NewInt(100), math.NewInt(1000), reserveA, reserveB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), usedA)
	require.Equal(t, math.NewInt(200), usedB)

	// Exact ratio uses both in full
	usedA, usedB, err = types.QuoteOptimalDeposit(math.NewInt(300), math.NewInt(600), reserveA, reserveB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(300), usedA)
	require.Equal(t, math.NewInt(600), usedB)

	_, _, err = types.QuoteOptimalDeposit(math.NewInt(1), math.NewInt(1), math.ZeroInt(), reserveB)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestMintedLiquidity(t *testing.T) {
	minted, err := types.MintedLiquidity(math.NewInt(500), math.NewInt(1000), math.NewInt(1000), math.NewInt(2000), math.NewInt(1414))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(707), minted)
}

func TestWithdrawAmounts(t *testing.T) {
	outA, outB, err := types.WithdrawAmounts(math.NewInt(707), math.NewInt(1000), math.NewInt(2000), math.NewInt(1414))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), outA)
	require.Equal(t, math.NewInt(1000), outB)

	_, _, err = types.WithdrawAmounts(math.NewInt(1), math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	_, _, err = types.WithdrawAmounts(math.NewInt(1415), math.NewInt(1000), math.NewInt(2000), math.NewInt(1414))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

// TestSwapConstantProductProperty checks that crediting AmountInAfterFee and
// paying AmountOut never lowers reserveIn * reserveOut.
func TestSwapConstantProductProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "reserveIn"))
		reserveOut := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "reserveOut"))
		amountIn := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "amountIn"))
		feeRate := rapid.Uint32Range(0, types.MaxFeeRateBps-1).Draw(t, "feeRate")
		protocolFee := rapid.Uint32Range(0, types.MaxProtocolFeeBps).Draw(t, "protocolFee")

		quote, err := types.QuoteSwap(amountIn, reserveIn, reserveOut, feeRate, protocolFee)
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}
		if !quote.AmountOut.LT(reserveOut) {
			t.Fatalf("output %s drains reserve %s", quote.AmountOut, reserveOut)
		}

		oldK := new(big.Int).Mul(reserveIn.BigInt(), reserveOut.BigInt())
		newK := new(big.Int).Mul(
			reserveIn.Add(quote.AmountInAfterFee).BigInt(),
			reserveOut.Sub(quote.AmountOut).BigInt(),
		)
		if newK.Cmp(oldK) < 0 {
			t.Fatalf("k decreased: %s -> %s", oldK, newK)
		}
	})
}

// TestFeeSplitProperty checks that the fee breakdown always adds up.
func TestFeeSplitProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amountIn := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "amountIn"))
		feeRate := rapid.Uint32Range(0, types.MaxFeeRateBps-1).Draw(t, "feeRate")
		protocolFee := rapid.Uint32Range(0, types.MaxProtocolFeeBps).Draw(t, "protocolFee")

		quote, err := types.QuoteSwap(amountIn, math.NewInt(1e12), math.NewInt(1e12), feeRate, protocolFee)
		if err != nil {
			t.Fatalf("quote failed: %v", err)
		}
		if !quote.FeeAmount.Add(quote.AmountInAfterFee).Equal(amountIn) {
			t.Fatalf("fee %s + net %s != input %s", quote.FeeAmount, quote.AmountInAfterFee, amountIn)
		}
		if !quote.ProtocolFee.Add(quote.LPFee).Equal(quote.FeeAmount) {
			t.Fatalf("protocol %s + lp %s != fee %s", quote.ProtocolFee, quote.LPFee, quote.FeeAmount)
		}
		if quote.PricedInput.GT(quote.AmountInAfterFee) {
			t.Fatalf("priced input %s exceeds net input %s", quote.PricedInput, quote.AmountInAfterFee)
		}
	})
}

// TestWithdrawFloorProperty checks that withdrawals are exact floors and
// never pay out more than the reserves.
func TestWithdrawFloorProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		supply := rapid.Int64Range(1, 1e18).Draw(t, "supply")
		burn := rapid.Int64Range(1, supply).Draw(t, "burn")
		reserveA := math.NewInt(rapid.Int64Range(0, 1e18).Draw(t, "reserveA"))
		reserveB := math.NewInt(rapid.Int64Range(0, 1e18).Draw(t, "reserveB"))

		outA, outB, err := types.WithdrawAmounts(math.NewInt(burn), reserveA, reserveB, math.NewInt(supply))
		if err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}

		wantA := new(big.Int).Mul(big.NewInt(burn), reserveA.BigInt())
		wantA.Quo(wantA, big.NewInt(supply))
		wantB := new(big.Int).Mul(big.NewInt(burn), reserveB.BigInt())
		wantB.Quo(wantB, big.NewInt(supply))

		if outA.BigInt().Cmp(wantA) != 0 || outB.BigInt().Cmp(wantB) != 0 {
			t.Fatalf("got %s/%s, want %s/%s", outA, outB, wantA, wantB)
		}
		if outA.GT(reserveA) || outB.GT(reserveB) {
			t.Fatalf("withdrawal %s/%s exceeds reserves %s/%s", outA, outB, reserveA, reserveB)
		}
	})
}

// TestInitialLiquidityProperty checks the geometric mean floor.
func TestInitialLiquidityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "a"))
		b := math.NewInt(rapid.Int64Range(1, 1e18).Draw(t, "b"))
		minimum := math.NewInt(rapid.Int64Range(1, 1e6).Draw(t, "minimum"))

		shares := types.InitialLiquidity(a, b, minimum)
		if shares.LT(minimum) {
			t.Fatalf("shares %s below minimum %s", shares, minimum)
		}
		if shares.GT(minimum) {
			product := new(big.Int).Mul(a.BigInt(), b.BigInt())
			sq := new(big.Int).Mul(shares.BigInt(), shares.BigInt())
			next := new(big.Int).Add(shares.BigInt(), big.NewInt(1))
			if sq.Cmp(product) > 0 || next.Mul(next, next).Cmp(product) <= 0 {
				t.Fatalf("shares %s is not floor(sqrt(%s))", shares, product)
			}
		}
	})
}
