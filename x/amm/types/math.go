package types

import (
	"math/big"

	"cosmossdk.io/math"
)

const (
	// BasisPointsDenominator is the number of basis points in 100%
	BasisPointsDenominator = 10_000

	// MaxFeeRateBps is the exclusive upper bound of a pool's swap fee
	MaxFeeRateBps = 10_000

	// MaxProtocolFeeBps is the inclusive upper bound of the protocol fee fraction
	MaxProtocolFeeBps = 100

	// DefaultProtocolFeeBps is assigned to every new pool
	DefaultProtocolFeeBps = 20

	// MinimumLiquidity is the floor applied to the first liquidity mint of a pool
	MinimumLiquidity = 1_000
)

var bpsDenominator = math.NewInt(BasisPointsDenominator)

// SwapResult breaks down a quoted swap.
type SwapResult struct {
	AmountIn math.Int
	// FeeAmount is the single fee taken from AmountIn and moved to the fee bucket.
	FeeAmount math.Int
	// AmountInAfterFee is what the input reserve keeps.
	AmountInAfterFee math.Int
	// PricedInput is AmountInAfterFee with the fee applied a second time; the
	// output is priced from this value.
	PricedInput math.Int
	AmountOut   math.Int
	ProtocolFee math.Int
	LPFee       math.Int
}

// ValidateFeeRate checks a swap fee in basis points.
func ValidateFeeRate(feeRateBps uint32) error {
	if feeRateBps >= MaxFeeRateBps {
		return ErrInvalidFeeConfig.Wrapf("fee rate %d bps must be below %d", feeRateBps, MaxFeeRateBps)
	}
	return nil
}

// ValidateProtocolFee checks a protocol fee fraction.
func ValidateProtocolFee(protocolFeeBps uint32) error {
	if protocolFeeBps > MaxProtocolFeeBps {
		return ErrInvalidFeeConfig.Wrapf("protocol fee %d must not exceed %d", protocolFeeBps, MaxProtocolFeeBps)
	}
	return nil
}

// CalculateFee returns floor(amount * bps / 10000).
func CalculateFee(amount math.Int, bps uint32) (math.Int, error) {
	return SafeMulDiv(amount, math.NewIntFromUint64(uint64(bps)), bpsDenominator)
}

// ApplyFee returns amount minus CalculateFee(amount, bps).
func ApplyFee(amount math.Int, bps uint32) (math.Int, error) {
	fee, err := CalculateFee(amount, bps)
	if err != nil {
		return math.Int{}, err
	}
	return SafeSub(amount, fee)
}

// SplitFee splits a swap fee into its protocol portion and the remainder.
func SplitFee(fee math.Int, protocolFeeBps uint32) (protocol, lp math.Int, err error) {
	protocol, err = CalculateFee(fee, protocolFeeBps)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	lp, err = SafeSub(fee, protocol)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return protocol, lp, nil
}

// GetAmountOut prices a swap with the constant product formula. The fee is
// deducted from amountIn before pricing:
//
//	x' = amountIn - amountIn*feeBps/10000
//	out = x' * reserveOut / (reserveIn + x')
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, feeRateBps uint32) (math.Int, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("reserves %s/%s must be positive", reserveIn, reserveOut)
	}
	adjusted, err := ApplyFee(amountIn, feeRateBps)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := SafeAdd(reserveIn, adjusted)
	if err != nil {
		return math.Int{}, err
	}
	return SafeMulDiv(adjusted, reserveOut, denominator)
}

// QuoteSwap computes a full swap breakdown. The fee is taken from amountIn
// once for reserve accounting and GetAmountOut deducts it again when pricing,
// so the output is priced from amountIn*(1-fee)^2 while the reserve is
// credited amountIn*(1-fee).
func QuoteSwap(amountIn, reserveIn, reserveOut math.Int, feeRateBps, protocolFeeBps uint32) (SwapResult, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return SwapResult{}, ErrZeroAmount.Wrap("swap input must be positive")
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return SwapResult{}, ErrInsufficientLiquidity.Wrapf("reserves %s/%s must be positive", reserveIn, reserveOut)
	}

	fee, err := CalculateFee(amountIn, feeRateBps)
	if err != nil {
		return SwapResult{}, err
	}
	afterFee, err := SafeSub(amountIn, fee)
	if err != nil {
		return SwapResult{}, err
	}
	priced, err := ApplyFee(afterFee, feeRateBps)
	if err != nil {
		return SwapResult{}, err
	}
	out, err := GetAmountOut(afterFee, reserveIn, reserveOut, feeRateBps)
	if err != nil {
		return SwapResult{}, err
	}
	protocol, lp, err := SplitFee(fee, protocolFeeBps)
	if err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		AmountIn:         amountIn,
		FeeAmount:        fee,
		AmountInAfterFee: afterFee,
		PricedInput:      priced,
		AmountOut:        out,
		ProtocolFee:      protocol,
		LPFee:            lp,
	}, nil
}

// InitialLiquidity returns max(floor(sqrt(amountA*amountB)), minimum).
func InitialLiquidity(amountA, amountB, minimum math.Int) math.Int {
	shares := Sqrt(new(big.Int).Mul(amountA.BigInt(), amountB.BigInt()))
	if shares.LT(minimum) {
		return minimum
	}
	return shares
}

// QuoteOptimalDeposit returns the portion of each offered amount that keeps
// the reserve ratio. When amountA*reserveB/reserveA fits within amountB, A is
// used in full; otherwise B is used in full and A is matched to it.
func QuoteOptimalDeposit(amountA, amountB, reserveA, reserveB math.Int) (usedA, usedB math.Int, err error) {
	if reserveA.IsZero() || reserveB.IsZero() {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrapf("reserves %s/%s must be positive", reserveA, reserveB)
	}
	optimalB, err := SafeMulDiv(amountA, reserveB, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if optimalB.LTE(amountB) {
		return amountA, optimalB, nil
	}
	optimalA, err := SafeMulDiv(amountB, reserveA, reserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return optimalA, amountB, nil
}

// MintedLiquidity returns min(usedA*supply/reserveA, usedB*supply/reserveB)
// against the reserves held before the deposit.
func MintedLiquidity(usedA, usedB, reserveA, reserveB, supply math.Int) (math.Int, error) {
	fromA, err := SafeMulDiv(usedA, supply, reserveA)
	if err != nil {
		return math.Int{}, err
	}
	fromB, err := SafeMulDiv(usedB, supply, reserveB)
	if err != nil {
		return math.Int{}, err
	}
	return math.MinInt(fromA, fromB), nil
}

// WithdrawAmounts returns the reserves redeemed by burning the given shares.
func WithdrawAmounts(burn, reserveA, reserveB, supply math.Int) (outA, outB math.Int, err error) {
	if supply.IsZero() {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrap("pool has no liquidity supply")
	}
	if burn.GT(supply) {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrapf("burn %s exceeds supply %s", burn, supply)
	}
	if outA, err = SafeMulDiv(burn, reserveA, supply); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if outB, err = SafeMulDiv(burn, reserveB, supply); err != nil {
		return math.Int{}, math.Int{}, err
	}
	return outA, outB, nil
}
