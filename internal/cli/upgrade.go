package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/storectl/internal/cli/render"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NewUpgradeCmd creates the upgrade command
func NewUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade [PROXY] [BLUEPRINT]",
		Short: "Point an existing proxy at a new blueprint",
		Long: `Deploy (or reuse) an implementation of the blueprint and upgrade the proxy to it.
Transparent proxies are upgraded through their ProxyAdmin, UUPS proxies directly.

The proxy defaults to ` + usecase.DefaultUpgradeProxy + ` and the blueprint to ` + usecase.DefaultUpgradeBlueprint + `.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.UpgradeProxyParams
			if len(args) > 0 {
				params.ProxyAddress = args[0]
			}
			if len(args) > 1 {
				params.Blueprint = args[1]
			}

			result, err := app.UpgradeProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewUpgradeRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	addFeeFlags(cmd)

	return cmd
}
