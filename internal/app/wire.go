//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters"
	"github.com/trebuchet-org/eventcreator-deploy/internal/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/logging"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveDependency,
		usecase.NewDeployContract,
		usecase.NewDeployMocks,
		usecase.NewDeployEventCreator,
		usecase.NewRunDeployments,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
