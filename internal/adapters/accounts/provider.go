package accounts

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// DevelopmentKey is the first pre-funded account of anvil and hardhat nodes
const DevelopmentKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// Provider resolves named accounts and their signing keys from configuration.
//
// Key lookup order: the network's private_key, then the global deployer key,
// then DevelopmentKey on development networks only.
type Provider struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewProvider creates a new account provider
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	return &Provider{
		cfg: cfg,
		log: log.With("component", "AccountProvider"),
	}
}

// NamedAccounts returns the deployer and service accounts for a network
func (p *Provider) NamedAccounts(ctx context.Context, network *domain.NetworkProfile) (*usecase.NamedAccounts, error) {
	key, err := p.PrivateKey(ctx, network)
	if err != nil {
		return nil, err
	}

	accounts := &usecase.NamedAccounts{
		Deployer: crypto.PubkeyToAddress(key.PublicKey),
	}

	if p.cfg.Service != "" {
		if !common.IsHexAddress(p.cfg.Service) {
			return nil, fmt.Errorf("%w: service account %q", domain.ErrInvalidAddress, p.cfg.Service)
		}
		accounts.Service = common.HexToAddress(p.cfg.Service)
	}

	return accounts, nil
}

// PrivateKey returns the deployer key for a network
func (p *Provider) PrivateKey(_ context.Context, network *domain.NetworkProfile) (*ecdsa.PrivateKey, error) {
	raw := ""
	if nc, ok := p.cfg.Networks[network.Name]; ok {
		raw = nc.PrivateKey
	}
	if raw == "" {
		raw = p.cfg.DeployerKey
	}
	if raw == "" {
		if !network.IsDevelopment() {
			return nil, fmt.Errorf("no private key configured for %s: set private_key for the network or ECDEPLOY_DEPLOYER_KEY", network.Name)
		}
		p.log.Debug("using development account", "network", network.Name)
		raw = DevelopmentKey
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key for %s: %w", network.Name, err)
	}
	return key, nil
}

// KeyFor returns the signing key for from, which must be the network's deployer
func (p *Provider) KeyFor(ctx context.Context, network *domain.NetworkProfile, from common.Address) (*ecdsa.PrivateKey, error) {
	key, err := p.PrivateKey(ctx, network)
	if err != nil {
		return nil, err
	}
	if addr := crypto.PubkeyToAddress(key.PublicKey); addr != from {
		return nil, fmt.Errorf("no key available for %s on %s (deployer is %s)", from.Hex(), network.Name, addr.Hex())
	}
	return key, nil
}

// Ensure Provider implements AccountProvider
var _ usecase.AccountProvider = (*Provider)(nil)
