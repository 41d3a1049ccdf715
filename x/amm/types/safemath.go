package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Overflow-checked arithmetic for pool accounting. Results are bounded to
// math.MaxBitLen bits so they always fit in a math.Int.

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	res, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, ErrOverflow.Wrapf("%s + %s: %v", a, b, err)
	}
	return res, nil
}

// SafeSub subtracts b from a and rejects negative results
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMulDiv computes floor(a * b / c). The intermediate product is held in a
// big.Int so only the final quotient has to fit.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrInsufficientLiquidity.Wrap("division by zero")
	}
	res := new(big.Int).Mul(a.BigInt(), b.BigInt())
	res.Quo(res, c.BigInt())
	if res.BitLen() > math.MaxBitLen {
		return math.Int{}, ErrOverflow.Wrapf("%s * %s / %s exceeds %d bits", a, b, c, math.MaxBitLen)
	}
	return math.NewIntFromBigInt(res), nil
}

// Sqrt returns floor(sqrt(x)) for a non-negative x. x may be as wide as the
// product of two math.Int values (below 2^512), whose root always fits.
func Sqrt(x *big.Int) math.Int {
	if x == nil || x.Sign() <= 0 {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x))
}
