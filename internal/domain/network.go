package domain

import "fmt"

// NetworkClass separates ephemeral chains, where dependencies are deployed
// fresh, from persistent chains with dependencies at fixed addresses.
type NetworkClass string

const (
	DevelopmentNetwork NetworkClass = "development"
	ProductionNetwork  NetworkClass = "production"
)

// NetworkProfile identifies a deployment target
type NetworkProfile struct {
	Name                  string       `json:"name"`
	ChainID               uint64       `json:"chainId"`
	Class                 NetworkClass `json:"class"`
	RequiredConfirmations uint64       `json:"requiredConfirmations"`
	RPCURL                string       `json:"-"`
	ExplorerURL           string       `json:"explorerUrl,omitempty"`
}

// IsDevelopment reports whether dependencies are deployed fresh on this network
func (p *NetworkProfile) IsDevelopment() bool {
	return p.Class == DevelopmentNetwork
}

func (p *NetworkProfile) String() string {
	return fmt.Sprintf("%s (chain %d, %s)", p.Name, p.ChainID, p.Class)
}
