package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	title := cases.Title(language.English)
	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		if network.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", network.Name, network.Error)
			continue
		}

		p := network.Profile
		fmt.Fprintf(r.out, "  ✅ %s - Chain ID: %d (%s, %d confirmations)\n", network.Name, p.ChainID, title.String(string(p.Class)), p.RequiredConfirmations)
		if network.PriceFeed != (common.Address{}) {
			fmt.Fprintf(r.out, "       price feed: %s\n", network.PriceFeed.Hex())
		}
	}

	return nil
}

// NetworkJSON is the JSON shape of a network status
type NetworkJSON struct {
	Name                  string `json:"name"`
	ChainID               uint64 `json:"chainId,omitempty"`
	Class                 string `json:"class,omitempty"`
	RequiredConfirmations uint64 `json:"requiredConfirmations,omitempty"`
	PriceFeed             string `json:"priceFeed,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// NetworksJSON converts a network listing into its JSON shape
func NetworksJSON(result *usecase.ListNetworksResult) []NetworkJSON {
	out := make([]NetworkJSON, 0, len(result.Networks))
	for _, n := range result.Networks {
		entry := NetworkJSON{Name: n.Name}
		if n.Error != nil {
			entry.Error = n.Error.Error()
		}
		if n.Profile != nil {
			entry.ChainID = n.Profile.ChainID
			entry.Class = string(n.Profile.Class)
			entry.RequiredConfirmations = n.Profile.RequiredConfirmations
		}
		if n.PriceFeed != (common.Address{}) {
			entry.PriceFeed = n.PriceFeed.Hex()
		}
		out = append(out, entry)
	}
	return out
}
