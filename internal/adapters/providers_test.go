package adapters

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/fs"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/sqlstore"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
)

func TestProvideDeploymentRepository(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("file is the default", func(t *testing.T) {
		repo, err := ProvideDeploymentRepository(&config.RuntimeConfig{ProjectRoot: t.TempDir()}, log)
		require.NoError(t, err)
		assert.IsType(t, &fs.DeploymentStoreAdapter{}, repo)
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, err := ProvideDeploymentRepository(&config.RuntimeConfig{
			DataDir:        t.TempDir(),
			RegistryDriver: RegistryDriverSQLite,
		}, log)
		require.NoError(t, err)
		require.IsType(t, &sqlstore.Store{}, repo)
		_ = repo.(*sqlstore.Store).Close()
	})

	t.Run("postgres requires a dsn", func(t *testing.T) {
		_, err := ProvideDeploymentRepository(&config.RuntimeConfig{RegistryDriver: RegistryDriverPostgres}, log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry.dsn")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := ProvideDeploymentRepository(&config.RuntimeConfig{RegistryDriver: "mongo"}, log)
		assert.Error(t, err)
	})
}

func TestProvideDeployConfigDefaults(t *testing.T) {
	cfg := &config.RuntimeConfig{}
	deploy := ProvideDeployConfig(cfg)
	require.NotNil(t, deploy)
	assert.Same(t, deploy, cfg.Deploy)
	assert.True(t, deploy.IsDevelopmentChain("hardhat"))
}
