package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/storectl/internal/app"
	"github.com/trebuchet-org/storectl/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// AppFactory builds the application from the merged flag, env and default settings
type AppFactory func(v *viper.Viper) (*app.App, error)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.InitApp)
}

func newRootCmd(factory AppFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storectl",
		Short: "Deploy, upgrade and mint against the NFT store contracts",
		Long: `storectl deploys upgradeable proxies for compiled Hardhat blueprints,
upgrades them to new implementations and sends mint calls to deployed stores.

Networks, signing accounts and fee defaults come from storectl.toml (or storectl.yaml)
in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, _ := cmd.Flags().GetString("project-root")
			if projectRoot == "" {
				var err error
				projectRoot, err = config.FindProjectRoot()
				if err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := factory(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			if appInstance.Config.JSON || appInstance.Config.NonInteractive {
				color.NoColor = true
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use, as named in the project file")
	rootCmd.PersistentFlags().Int("account", 0, "Index of the signing account in the network's accounts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip the broadcast confirmation of networks with confirm = true")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Give up on the command after this long")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with a project file)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewDeployCmd(), NewUpgradeCmd(), NewMintCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewNetworksCmd(), NewManifestCmd(), NewVerifyCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// addFeeFlags registers the EIP-1559 fee flags of transacting commands
func addFeeFlags(cmd *cobra.Command) {
	cmd.Flags().String("max-fee-per-gas", "", "Max fee per gas in wei (defaults to [fees] in the project file)")
	cmd.Flags().String("max-priority-fee-per-gas", "", "Max priority fee per gas in wei (defaults to [fees] in the project file)")
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
