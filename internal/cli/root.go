package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/eventcreator-deploy/internal/app"
	"github.com/trebuchet-org/eventcreator-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// appFactory builds the app for a command; tests swap it out
type appFactory func(cmd *cobra.Command) (*app.App, error)

func defaultAppFactory(cmd *cobra.Command) (*app.App, error) {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}

	v := config.SetupViper(projectRoot, cmd)
	return app.InitApp(v)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultAppFactory)
}

func newRootCmd(factory appFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ecdeploy",
		Short: "Network-aware EventCreator deployment",
		Long: `ecdeploy deploys the EventCreator contract and its price-feed dependency.

On development networks a MockV3Aggregator is deployed first and wired into
EventCreator. On production networks the configured Chainlink feed is used
and the deployment waits for the network's block confirmations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			appInstance, err := factory(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				releaseAfterRun(cmd, cancel)
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., localhost, mumbai)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "main"
	rootCmd.AddCommand(deploymentsCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// releaseAfterRun calls release when the command's run function returns,
// whether or not it fails. Cobra skips post-run hooks after a RunE error.
func releaseAfterRun(cmd *cobra.Command, release func()) {
	switch {
	case cmd.RunE != nil:
		run := cmd.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer release()
			return run(cmd, args)
		}
	case cmd.Run != nil:
		run := cmd.Run
		cmd.Run = func(cmd *cobra.Command, args []string) {
			defer release()
			run(cmd, args)
		}
	default:
		release()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
