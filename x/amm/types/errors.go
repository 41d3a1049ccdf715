package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInsufficientInput     = errors.Register(ModuleName, 2, "insufficient input amount")
	ErrSlippageExceeded      = errors.Register(ModuleName, 3, "slippage exceeded")
	ErrInvalidFeeConfig      = errors.Register(ModuleName, 4, "invalid fee configuration")
	ErrPairAlreadyExists     = errors.Register(ModuleName, 5, "pair already exists")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 6, "insufficient liquidity")
	ErrInvalidTokenOrder     = errors.Register(ModuleName, 7, "invalid token order")
	ErrZeroAmount            = errors.Register(ModuleName, 8, "amount cannot be zero")

	ErrPoolNotFound       = errors.Register(ModuleName, 20, "pool not found")
	ErrAssetMismatch      = errors.Register(ModuleName, 21, "asset does not belong to pool")
	ErrUnauthorized       = errors.Register(ModuleName, 22, "unauthorized")
	ErrOverflow           = errors.Register(ModuleName, 23, "arithmetic overflow")
	ErrInvariantViolation = errors.Register(ModuleName, 24, "invariant violation")
	ErrInvalidPoolState   = errors.Register(ModuleName, 25, "invalid pool state")
	ErrInvalidParams      = errors.Register(ModuleName, 26, "invalid params")
	ErrInvalidGenesis     = errors.Register(ModuleName, 27, "invalid genesis state")
)
