package types

import (
	"fmt"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// AdminCapabilityName is the name the admin capability is registered under
	AdminCapabilityName = ModuleName + "/admin"

	// ShareDenomPrefix prefixes the denom of every pool's liquidity share
	ShareDenomPrefix = ModuleName + "/pool/"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// NextPoolIDKey is the key for the next pool ID counter
	NextPoolIDKey = []byte{0x02}

	// PairKeyPrefix is the prefix for the ordered pair registry
	PairKeyPrefix = []byte{0x03}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x04}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), sdk.Uint64ToBigEndian(poolID)...)
}

// PairKey returns the registry key for an ordered denom pair. The first denom
// is length-prefixed so (A,B) and (B,A) never collide and are never sorted.
// A first denom longer than 255 bytes cannot be prefixed and yields
// ErrAssetMismatch.
func PairKey(denomA, denomB string) ([]byte, error) {
	prefixed, err := address.LengthPrefix([]byte(denomA))
	if err != nil {
		return nil, ErrAssetMismatch.Wrapf("%d-byte denom: %v", len(denomA), err)
	}
	key := append([]byte{}, PairKeyPrefix...)
	key = append(key, prefixed...)
	return append(key, []byte(denomB)...), nil
}

// ParsePairKey splits a registry key (without prefix) back into its denoms.
func ParsePairKey(key []byte) (string, string, error) {
	if len(key) < 1 {
		return "", "", fmt.Errorf("pair key too short")
	}
	n := int(key[0])
	if len(key) < 1+n {
		return "", "", fmt.Errorf("pair key truncated: want %d bytes, have %d", 1+n, len(key))
	}
	return string(key[1 : 1+n]), string(key[1+n:]), nil
}

// ShareDenom returns the liquidity share denom of a pool.
func ShareDenom(poolID uint64) string {
	return ShareDenomPrefix + strconv.FormatUint(poolID, 10)
}

// PoolIDFromShareDenom extracts the pool ID from a liquidity share denom.
func PoolIDFromShareDenom(denom string) (uint64, error) {
	if !strings.HasPrefix(denom, ShareDenomPrefix) {
		return 0, fmt.Errorf("%s is not a liquidity share denom", denom)
	}
	return strconv.ParseUint(strings.TrimPrefix(denom, ShareDenomPrefix), 10, 64)
}
