package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/storectl/internal/cli/render"
)

// NewManifestCmd creates the manifest command
func NewManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Show the proxies and implementations recorded for a network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowManifest.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewManifestRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}
}
