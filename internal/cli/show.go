package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/eventcreator-deploy/internal/cli/render"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <contract>",
		Short: "Show a recorded deployment",
		Long: `Show the recorded deployment of a contract on the selected network.

Examples:
  ecdeploy show EventCreator
  ecdeploy show MockV3Aggregator -n localhost`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				NetworkName:  app.Config.NetworkName,
				ContractName: args[0],
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), deployment)
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout()).RenderDeployment(deployment)
		},
	}

	return cmd
}
