package accounts

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
)

// Second anvil account
const (
	otherKey  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	otherAddr = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	firstAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func newProvider(cfg *config.RuntimeConfig) *Provider {
	return NewProvider(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNamedAccounts(t *testing.T) {
	ctx := context.Background()
	dev := &domain.NetworkProfile{Name: "localhost", ChainID: 31337, Class: domain.DevelopmentNetwork}
	prod := &domain.NetworkProfile{Name: "mumbai", ChainID: 80001, Class: domain.ProductionNetwork}

	t.Run("development falls back to the node account", func(t *testing.T) {
		accounts, err := newProvider(&config.RuntimeConfig{}).NamedAccounts(ctx, dev)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(firstAddr), accounts.Deployer)
		assert.Equal(t, common.Address{}, accounts.Service)
	})

	t.Run("production without a key fails", func(t *testing.T) {
		_, err := newProvider(&config.RuntimeConfig{}).NamedAccounts(ctx, prod)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no private key configured for mumbai")
	})

	t.Run("network key wins over deployer key", func(t *testing.T) {
		cfg := &config.RuntimeConfig{
			DeployerKey: DevelopmentKey,
			Networks: map[string]config.NetworkConfig{
				"mumbai": {Name: "mumbai", PrivateKey: "0x" + otherKey},
			},
		}
		accounts, err := newProvider(cfg).NamedAccounts(ctx, prod)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(otherAddr), accounts.Deployer)
	})

	t.Run("deployer key is used when network has none", func(t *testing.T) {
		accounts, err := newProvider(&config.RuntimeConfig{DeployerKey: otherKey}).NamedAccounts(ctx, prod)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(otherAddr), accounts.Deployer)
	})

	t.Run("configured service", func(t *testing.T) {
		accounts, err := newProvider(&config.RuntimeConfig{Service: otherAddr}).NamedAccounts(ctx, dev)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(otherAddr), accounts.Service)
	})

	t.Run("invalid service", func(t *testing.T) {
		_, err := newProvider(&config.RuntimeConfig{Service: "0x123"}).NamedAccounts(ctx, dev)
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := newProvider(&config.RuntimeConfig{DeployerKey: "nothex"}).NamedAccounts(ctx, dev)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid private key")
	})
}

func TestKeyFor(t *testing.T) {
	ctx := context.Background()
	dev := &domain.NetworkProfile{Name: "anvil", ChainID: 31337, Class: domain.DevelopmentNetwork}
	p := newProvider(&config.RuntimeConfig{})

	key, err := p.KeyFor(ctx, dev, common.HexToAddress(firstAddr))
	require.NoError(t, err)
	assert.NotNil(t, key)

	_, err = p.KeyFor(ctx, dev, common.HexToAddress(otherAddr))
	assert.Error(t, err)
}
