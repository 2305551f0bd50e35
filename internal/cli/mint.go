package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/storectl/internal/cli/render"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// NewMintCmd creates the mint command
func NewMintCmd() *cobra.Command {
	var (
		contract  string
		blueprint string
		method    string
		mintArgs  []string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Send a mint call to a deployed store",
		Long: `Bind to a deployed store with the ABI of its blueprint and send one mint call.
Arguments are converted to the method's parameter types; the signed transaction
is printed as JSON.

Without flags this calls ` + usecase.DefaultMintMethod + `("", "http://test.json") on ` + usecase.DefaultMintContract + `.`,
		Example: `  # Mint to a recipient and wait for the receipt
  storectl mint --arg 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 --arg http://test.json --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.MintTokenParams{
				Contract:  contract,
				Blueprint: blueprint,
				Method:    method,
				Wait:      wait,
			}
			// An explicit empty list is kept; only an absent flag falls back to the defaults
			if cmd.Flags().Changed("arg") {
				params.Args = append([]string{}, mintArgs...)
			}

			tx, err := app.MintToken.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewTransactionRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(tx)
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Address of the deployed store")
	cmd.Flags().StringVar(&blueprint, "blueprint", "", "Blueprint providing the store's ABI")
	cmd.Flags().StringVar(&method, "method", "", "Method to call")
	cmd.Flags().StringArrayVar(&mintArgs, "arg", nil, "Method argument, repeat for each parameter")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the receipt and print it")
	addFeeFlags(cmd)

	return cmd
}
