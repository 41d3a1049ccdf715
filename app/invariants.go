package app

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	module    string
	route     string
	invariant sdk.Invariant
}

// InvariantRegistry collects module invariants in registration order.
type InvariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*InvariantRegistry)(nil)

// NewInvariantRegistry returns an empty registry.
func NewInvariantRegistry() *InvariantRegistry {
	return &InvariantRegistry{}
}

// RegisterRoute implements sdk.InvariantRegistry.
func (ir *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	ir.routes = append(ir.routes, invariantRoute{module: moduleName, route: route, invariant: invar})
}

// Routes returns the registered routes as "module/route".
func (ir *InvariantRegistry) Routes() []string {
	names := make([]string, 0, len(ir.routes))
	for _, r := range ir.routes {
		names = append(names, r.module+"/"+r.route)
	}
	return names
}

// Assert runs every invariant and reports all broken ones.
func (ir *InvariantRegistry) Assert(ctx sdk.Context) error {
	var broken []string
	for _, r := range ir.routes {
		if msg, stop := r.invariant(ctx); stop {
			ctx.Logger().Error("invariant broken", "module", r.module, "route", r.route)
			broken = append(broken, msg)
		}
	}
	if len(broken) > 0 {
		return fmt.Errorf("%d invariant(s) broken:\n%s", len(broken), strings.Join(broken, "\n"))
	}
	return nil
}
