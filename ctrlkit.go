// Package ctrlkit assembles the full controller stack for fx-based hosts:
// structured logging, the application facade and the fiber transport. Hosts
// that want a different engine compose the sub-modules themselves.
package ctrlkit

import (
	"go.uber.org/fx"

	"github.com/warin-th/ctrlkit/api"
	"github.com/warin-th/ctrlkit/fiberengine"
	"github.com/warin-th/ctrlkit/log"
)

// Module wires the default stack. The host supplies an api.Config (see
// api.LoadConfig) and provides controllers via api.AsController.
func Module() fx.Option {
	return fx.Options(
		log.Module(),
		api.Module(),
		fiberengine.Module(),
	)
}

// AsController re-exports the controller group annotation so hosts only
// import the root package.
var AsController = api.AsController
