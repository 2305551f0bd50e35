package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/storectl/internal/cli/render"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var constructorArgs string

	cmd := &cobra.Command{
		Use:   "verify ADDRESS BLUEPRINT",
		Short: "Verify a deployed contract on Etherscan",
		Long: `Submit the standard-JSON input of the blueprint's build to Etherscan and wait
for the verdict. The API key is taken from [etherscan.api_key] for the network,
falling back to the "default" entry.`,
		Example: `  storectl verify 0x9F57239C154a6604A6BD49909D3B4e8cFee6ED63 ERC1155StoreV2 --network ropsten`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyContract.Run(cmd.Context(), usecase.VerifyContractParams{
				Address:         args[0],
				Blueprint:       args[1],
				ConstructorArgs: constructorArgs,
			})
			if err != nil {
				return err
			}

			return render.NewVerifyRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&constructorArgs, "constructor-args", "", "ABI-encoded constructor arguments as hex")

	return cmd
}
