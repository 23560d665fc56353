package log

import (
	"go.uber.org/fx"
)

var ModuleName = "ctrlkit/log"

// Module wires the process logger and routes fx's own lifecycle events
// through it. Config is expected from the surrounding application; see
// api.LoadConfig.
func Module() fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(NewZapLogger),
		fx.WithLogger(NewEventLogger),
	)
}
