package fiberengine

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/warin-th/ctrlkit/api"
	"github.com/warin-th/ctrlkit/engine"
)

var ModuleName = "ctrlkit/fiberengine"

// NewApp builds the fiber application the controllers mount on.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName: "ctrlkit",
	})
}

func newRegistrar(app *fiber.App, log *zap.Logger) engine.Registrar {
	return NewRegistrar(app, log)
}

// Serve ties the fiber listener to the fx lifecycle.
func Serve(lc fx.Lifecycle, app *fiber.App, cfg api.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.Server.Addr); err != nil {
					log.Error("listener stopped", zap.Error(err))
				}
			}()
			log.Info("listening", zap.String("addr", cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// Module provides the fiber app, exposes it as the engine registrar, and
// starts the listener with the application lifecycle.
func Module() fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(
			NewApp,
			newRegistrar,
		),
		fx.Invoke(Serve),
	)
}
