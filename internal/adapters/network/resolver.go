package network

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

const maxSuggestions = 3

// Resolver builds NetworkProfiles from the configured networks. The class
// and confirmation count come from the deploy config, never from the RPC.
type Resolver struct {
	networks map[string]config.NetworkConfig
	deploy   *config.DeployConfig
}

// NewResolver creates a new network resolver
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	deploy := cfg.Deploy
	if deploy == nil {
		deploy = config.DefaultDeployConfig()
	}

	networks := make(map[string]config.NetworkConfig, len(cfg.Networks))
	for name, nc := range cfg.Networks {
		if nc.Name == "" {
			nc.Name = name
		}
		networks[name] = nc
	}

	return &Resolver{networks: networks, deploy: deploy}
}

// GetNetworks returns the configured network names, sorted
func (r *Resolver) GetNetworks(_ context.Context) []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveNetwork returns the profile for a configured network name
func (r *Resolver) ResolveNetwork(ctx context.Context, name string) (*domain.NetworkProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("network not specified")
	}

	nc, ok := r.networks[name]
	if !ok {
		// Case-insensitive fallback
		for key, candidate := range r.networks {
			if strings.EqualFold(key, name) {
				nc, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, domain.UnknownNetworkErr{
			Name:        name,
			Suggestions: Suggest(name, r.GetNetworks(ctx)),
		}
	}

	development := r.deploy.IsDevelopmentChain(nc.Name)
	class := domain.ProductionNetwork
	if development {
		class = domain.DevelopmentNetwork
	}

	return &domain.NetworkProfile{
		Name:                  nc.Name,
		ChainID:               nc.ChainID,
		Class:                 class,
		RequiredConfirmations: r.deploy.ConfirmationsFor(development),
		RPCURL:                nc.RPCURL,
		ExplorerURL:           nc.ExplorerURL,
	}, nil
}

// Suggest returns up to three configured names resembling input
func Suggest(input string, names []string) []string {
	matches := fuzzy.Find(strings.ToLower(input), lowerAll(names))
	if len(matches) == 0 {
		// fuzzy needs the characters in order, so transpositions like
		// "mumbia" fall back to a shared three-letter prefix
		for _, name := range names {
			if len(input) >= 3 && strings.HasPrefix(strings.ToLower(name), strings.ToLower(input[:3])) {
				return []string{name}
			}
		}
		return nil
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, names[m.Index])
	}
	return suggestions
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Ensure Resolver implements NetworkResolver
var _ usecase.NetworkResolver = (*Resolver)(nil)
