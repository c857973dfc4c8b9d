package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(deployment *models.Deployment) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", deployment.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(deployment.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", deployment.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", deployment.Network, deployment.ChainID)
	if len(deployment.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags: %s\n", color.New(color.FgCyan).Sprint(strings.Join(deployment.Tags, ", ")))
	}

	fmt.Fprintln(r.out, "\nTransaction:")
	fmt.Fprintf(r.out, "  Hash: %s\n", deployment.TxHash)
	fmt.Fprintf(r.out, "  Block: %d\n", deployment.BlockNumber)
	fmt.Fprintf(r.out, "  Confirmations: %d\n", deployment.Confirmations)
	fmt.Fprintf(r.out, "  Deployer: %s\n", deployment.Deployer)

	fmt.Fprintln(r.out, "\nConstructor Arguments:")
	if len(deployment.Args) == 0 {
		fmt.Fprintln(r.out, "  (none)")
	}
	for i, arg := range deployment.Args {
		fmt.Fprintf(r.out, "  [%d] %s\n", i, arg)
	}

	fmt.Fprintln(r.out, "\nMetadata:")
	fmt.Fprintf(r.out, "  Fingerprint: %s\n", deployment.Fingerprint)
	fmt.Fprintf(r.out, "  Created: %s\n", deployment.CreatedAt.Format("2006-01-02 15:04:05"))
	if !deployment.UpdatedAt.IsZero() && !deployment.UpdatedAt.Equal(deployment.CreatedAt) {
		fmt.Fprintf(r.out, "  Updated: %s\n", deployment.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
