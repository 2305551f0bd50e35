package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/storectl/internal/cli/render"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		kind        string
		initializer string
		initArgs    []string
	)

	cmd := &cobra.Command{
		Use:   "deploy [BLUEPRINT]",
		Short: "Deploy an upgradeable proxy for a blueprint",
		Long: `Deploy an implementation of the blueprint (reusing a recorded one with the same
bytecode) and a proxy in front of it, calling the initializer through the proxy.

The blueprint defaults to ` + usecase.DefaultDeployBlueprint + `.`,
		Example: `  # Deploy NFTExchange behind a transparent proxy
  storectl deploy --network ropsten

  # Deploy a UUPS proxy with initializer arguments
  storectl deploy ERC1155Store --kind uups --init-arg "https://meta/{id}.json"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployProxyParams{
				Kind:        config.ProxyKind(kind),
				Initializer: initializer,
				InitArgs:    initArgs,
			}
			switch params.Kind {
			case "", config.ProxyKindTransparent, config.ProxyKindUUPS:
			default:
				return fmt.Errorf("invalid proxy kind: %s (valid: transparent, uups)", kind)
			}
			if len(args) == 1 {
				params.Blueprint = args[0]
			}

			result, err := app.DeployProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Proxy kind: transparent or uups (defaults to [upgrades] kind)")
	cmd.Flags().StringVar(&initializer, "initializer", "", "Initializer called through the proxy (default \"initialize\")")
	cmd.Flags().StringArrayVar(&initArgs, "init-arg", nil, "Initializer argument, repeat for each parameter")
	addFeeFlags(cmd)

	return cmd
}
