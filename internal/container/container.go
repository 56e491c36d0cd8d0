package container

import (
	"go.uber.org/zap"

	app "tray-check/internal/application"
	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

type Container struct {
	UserService  *app.UserService
	CheckService *app.CheckService
	Describer    port.CheckDescriber
	Logger       *zap.Logger
}

// Deps внешние зависимости, из которых собираются сервисы
type Deps struct {
	UserRepo  port.UserRepository
	Detector  port.ItemDetector
	Describer port.CheckDescriber
	Store     port.CheckStore
	Rules     entity.RuleSet
	Logger    *zap.Logger
}

func New(deps Deps) *Container {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	userService := app.NewUserService(deps.UserRepo)
	checkService := app.NewCheckService(userService, deps.Detector, deps.Describer, deps.Store, deps.Rules, logger)

	return &Container{
		UserService:  userService,
		CheckService: checkService,
		Describer:    deps.Describer,
		Logger:       logger,
	}
}
