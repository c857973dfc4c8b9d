package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMissingDependency is returned when a development network has no mock dependency deployed
	ErrMissingDependency = errors.New("missing dependency")

	// ErrUnconfiguredNetwork is returned when a production chain has no dependency configuration
	ErrUnconfiguredNetwork = errors.New("unconfigured network")

	// ErrDeploymentFailed is returned when the deployment transaction could not be completed
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrDeploymentAborted is returned when the user declines a deployment
	ErrDeploymentAborted = errors.New("deployment aborted")

	// ErrUnknownNetwork is returned when a network name is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrUnknownTag is returned when no deployment unit carries a requested tag
	ErrUnknownTag = errors.New("unknown tag")

	// ErrArtifactNotFound is returned when a compiled contract artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")
)

// MissingDependencyErr reports a dependency contract that was never deployed
// on a development network.
type MissingDependencyErr struct {
	ContractName string
	Network      string
	ChainID      uint64
}

func (e MissingDependencyErr) Error() string {
	return fmt.Sprintf("%s: %s is not deployed on %s (chain %d), run the mocks deployment first",
		ErrMissingDependency, e.ContractName, e.Network, e.ChainID)
}

func (e MissingDependencyErr) Is(target error) bool {
	return target == ErrMissingDependency
}

// UnconfiguredNetworkErr reports a production chain absent from the dependency table.
type UnconfiguredNetworkErr struct {
	Network string
	ChainID uint64
}

func (e UnconfiguredNetworkErr) Error() string {
	return fmt.Sprintf("%s: no price feed configured for %s (chain %d)", ErrUnconfiguredNetwork, e.Network, e.ChainID)
}

func (e UnconfiguredNetworkErr) Is(target error) bool {
	return target == ErrUnconfiguredNetwork
}

// DeploymentFailedErr carries the underlying transport or chain error of a
// failed deployment.
type DeploymentFailedErr struct {
	ContractName string
	Network      string
	Cause        error
}

func (e DeploymentFailedErr) Error() string {
	return fmt.Sprintf("%s: %s on %s: %v", ErrDeploymentFailed, e.ContractName, e.Network, e.Cause)
}

func (e DeploymentFailedErr) Is(target error) bool {
	return target == ErrDeploymentFailed
}

func (e DeploymentFailedErr) Unwrap() error {
	return e.Cause
}

// UnknownNetworkErr lists the closest configured network names.
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %s", ErrUnknownNetwork, e.Name)
	}
	return fmt.Sprintf("%s: %s (did you mean %s?)", ErrUnknownNetwork, e.Name, strings.Join(e.Suggestions, ", "))
}

func (e UnknownNetworkErr) Is(target error) bool {
	return target == ErrUnknownNetwork
}

// UnknownTagErr reports requested tags that match no deployment unit.
type UnknownTagErr struct {
	Tags  []string
	Known []string
}

func (e UnknownTagErr) Error() string {
	known := make([]string, len(e.Known))
	copy(known, e.Known)
	sort.Strings(known)
	return fmt.Sprintf("%s: %s (known tags: %s)", ErrUnknownTag, strings.Join(e.Tags, ", "), strings.Join(known, ", "))
}

func (e UnknownTagErr) Is(target error) bool {
	return target == ErrUnknownTag
}
