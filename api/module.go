package api

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/warin-th/ctrlkit/controller"
	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/log"
)

var ModuleName = "ctrlkit/api"

// ControllersGroupName is the fx value group controller constructors feed.
const ControllersGroupName = "ctrlkit.controllers"

// AsController annotates a constructor so its controller lands in the
// mounting group. The constructor must return *controller.APIController
// (plus an optional error).
func AsController(ctor any) any {
	return fx.Annotate(ctor,
		fx.ResultTags(`group:"`+ControllersGroupName+`"`),
	)
}

type setupIn struct {
	fx.In

	API         *API
	Controllers []*controller.APIController `group:"ctrlkit.controllers"`
}

// SetupControllers mounts every controller provided through the group.
func SetupControllers(in setupIn) error {
	return in.API.RegisterControllers(in.Controllers...)
}

// Module wires the application facade into an fx application. The host
// provides an engine.Registrar, a Config and optionally WithAuth/WithRenderer
// options via fx.Supply; controllers join through AsController.
func Module() fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(
			newFromEnv,
			func(cfg Config) log.Config { return cfg.Log },
		),
		fx.Invoke(SetupControllers),
	)
}

type facadeIn struct {
	fx.In

	Registrar engine.Registrar
	Config    Config
	Logger    *zap.Logger
	Options   []Option `group:"ctrlkit.api_options"`
}

func newFromEnv(in facadeIn) *API {
	opts := append([]Option{
		WithBasePath(in.Config.BasePath),
		WithLogger(in.Logger),
	}, in.Options...)
	return New(in.Registrar, opts...)
}

// AsOption feeds an Option into the facade constructor from anywhere in the
// fx graph, for hosts that want to set auth or a renderer without building
// the facade by hand.
func AsOption(opt Option) fx.Option {
	return fx.Provide(fx.Annotate(
		func() Option { return opt },
		fx.ResultTags(`group:"ctrlkit.api_options"`),
	))
}
