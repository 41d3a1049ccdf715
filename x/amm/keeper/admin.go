package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// MintAdminCapability creates the admin capability. It succeeds once per
// chain; later calls fail because the name is already taken.
func (k Keeper) MintAdminCapability(ctx context.Context) (*capabilitytypes.Capability, error) {
	cap, err := k.scopedKeeper.NewCapability(sdk.UnwrapSDKContext(ctx), types.AdminCapabilityName)
	if err != nil {
		return nil, types.ErrUnauthorized.Wrapf("mint admin capability: %v", err)
	}
	return cap, nil
}

// HasAdminCapability reports whether the admin capability has been minted.
func (k Keeper) HasAdminCapability(ctx context.Context) bool {
	_, found := k.scopedKeeper.GetCapability(sdk.UnwrapSDKContext(ctx), types.AdminCapabilityName)
	return found
}

// AuthenticateAdmin checks that cap is the admin capability. Possession is
// the only requirement: the holder's address is never consulted.
func (k Keeper) AuthenticateAdmin(ctx context.Context, cap *capabilitytypes.Capability) error {
	if cap == nil {
		return types.ErrUnauthorized.Wrap("admin capability required")
	}
	if !k.scopedKeeper.AuthenticateCapability(sdk.UnwrapSDKContext(ctx), cap, types.AdminCapabilityName) {
		return types.ErrUnauthorized.Wrapf("capability %d is not the admin capability", cap.GetIndex())
	}
	return nil
}
