package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mailsift/internal/config"
)

// newSetupCmd creates the setup subcommand
func newSetupCmd(app *App) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save the API key to the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.container.Invoke(func(cfg *config.Config) error {
				path, err := cfg.SaveAPIKey(apiKey)
				if err != nil {
					return err
				}
				app.logger.Debug("Saved API key", zap.String("file", path))
				fmt.Fprintf(app.stdout, "API key saved to %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Key to include in API requests")
	cmd.MarkFlagRequired("api-key")

	return cmd
}
