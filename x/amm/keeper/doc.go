// Package keeper implements the amm module keeper.
//
// The amm module is a constant-product automated market maker. Each pool
// trades one ordered pair of denoms, holds both reserves and a liquidity
// share supply, and keeps the swap fees it charges in per-asset buckets.
//
// # Core Functionality
//
// Pair Registry: an ordered (denomA, denomB) index that rejects a second pool
// for the same key. (A,B) and (B,A) are independent keys.
//
// Liquidity: the first deposit mints the geometric mean of the two amounts,
// floored at the minimum liquidity param. Later deposits use only the portion
// matching the reserve ratio and hand the remainder back. Burning shares
// returns the floor of the proportional reserves.
//
// Swaps: SwapAToB and SwapBToA price with x * y = k. The fee is charged once
// into the input-side bucket and deducted again when pricing the output.
//
// Fee Administration: UpdateFees and CollectFees require the admin
// capability minted at genesis. Possession of the capability is the only
// check.
//
// # State
//
// Pools, the registry, the next pool ID and params live in the module KV
// store. Callers are expected to run each operation in a cached context and
// discard it on error; the keeper itself takes no locks.
package keeper
