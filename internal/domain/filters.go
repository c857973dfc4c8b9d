package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	Network      string
	ChainID      uint64
	ContractName string
}

// Matches reports whether a deployment with the given coordinates passes the filter
func (f DeploymentFilter) Matches(network string, chainID uint64, contractName string) bool {
	if f.Network != "" && f.Network != network {
		return false
	}
	if f.ChainID != 0 && f.ChainID != chainID {
		return false
	}
	if f.ContractName != "" && f.ContractName != contractName {
		return false
	}
	return true
}
