package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/eventcreator-deploy/internal/cli/render"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var contractName string

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"list", "ls"},
		Short:   "List recorded deployments",
		Long: `List deployments from the registry, grouped by network.

Without --network every network is listed.`,
		Example: `  # List all deployments
  ecdeploy deployments

  # List EventCreator deployments on mumbai
  ecdeploy deployments -n mumbai --contract EventCreator`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				ContractName: contractName,
			}
			// Only filter by network when one was asked for explicitly
			if f := cmd.Flag("network"); f != nil && f.Changed {
				params.Network = app.Config.NetworkName
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Deployments)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")

	return cmd
}
