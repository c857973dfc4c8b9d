package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/eventcreator-deploy/internal/cli/render"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags    []string
		service string
		reset   bool
		dryRun  bool
		pick    bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy EventCreator and its dependencies",
		Long: `Run the tagged deployment units against the selected network.

Units run in order: "mocks" deploys MockV3Aggregator on development networks,
"eventCreator" deploys EventCreator wired to the network's price feed. The tag
"all" selects both.

An identical deployment already recorded for the network is reused unless
--reset is given. Production deployments ask for confirmation unless --yes
or --non-interactive is set.`,
		Example: `  # Deploy everything to a local node
  ecdeploy deploy

  # Deploy only EventCreator to mumbai with a separate service account
  ecdeploy deploy -n mumbai --tags eventCreator --service 0x70997970C51812dc3A010C7d01b50e0d17dc79C8

  # Show what would be deployed
  ecdeploy deploy -n goerli --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if pick {
				if app.Config.NonInteractive {
					return fmt.Errorf("--select cannot be used with --non-interactive")
				}
				tags, err = SelectTags(app.RunDeployments.KnownTags(), "Select deployment tags")
				if err != nil {
					return err
				}
			}

			params := usecase.RunDeploymentsParams{
				NetworkName: app.Config.NetworkName,
				Tags:        tags,
				Reset:       reset,
				DryRun:      dryRun,
			}
			if service != "" {
				if !common.IsHexAddress(service) {
					return fmt.Errorf("%w: service %q", domain.ErrInvalidAddress, service)
				}
				params.Service = common.HexToAddress(service)
			}

			result, err := app.RunDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), render.NewDeployRunJSON(result))
			}
			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", []string{usecase.TagAll}, "Deployment tags to run (all, mocks, eventCreator)")
	cmd.Flags().StringVar(&service, "service", "", "Service account passed to EventCreator (defaults to the deployer)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Redeploy even when an identical deployment is recorded")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve arguments without sending transactions")
	cmd.Flags().BoolVar(&pick, "select", false, "Pick deployment tags interactively")
	cmd.Flags().BoolP("yes", "y", false, "Skip the production deployment confirmation")

	return cmd
}
