package router

import (
	"github.com/finledger/finledger/internal/application"
	"github.com/finledger/finledger/internal/container"
	pginfra "github.com/finledger/finledger/internal/infrastructure/postgres"
	handlers "github.com/finledger/finledger/internal/interface/http"
	"github.com/finledger/finledger/internal/router/modules"
)

// InitModules builds the feature modules from the container singletons and
// registers them with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	txRepo := pginfra.NewTransactionRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg,
	)
	txSvc := application.NewTransactionService(
		userRepo,
		txRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESTransactionIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	dashSvc := application.NewDashboardService(userRepo, txRepo, container.GetRedis(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTransactionModule(handlers.NewTransactionHandler(txSvc, logger), container.GetJWT()))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(dashSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
