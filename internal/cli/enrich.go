package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikey/mailsift/internal/pipeline"
)

// newEnrichCmd creates the enrich subcommand
func newEnrichCmd(app *App) *cobra.Command {
	var (
		apiKey     string
		inputFile  string
		outputFile string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a raw email message into a message data model",
		Long: `Enrich sends a raw email message (EML) to the analysis service and
writes back the enriched message data model. Without -o/--output the
result goes to stdout and a JSON copy is saved in the current
directory as <input>.mdm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPipeline(cmd.Context(), &pipeline.Invocation{
				Command:    pipeline.CommandEnrich,
				InputPath:  inputFile,
				OutputPath: outputFile,
				Format:     format,
				APIKeyFlag: apiKey,
			})
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Key to include in API requests")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input EML file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Output file. Defaults to the input file name in the current directory with a .mdm extension")
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "Output format (json or txt)")
	cmd.MarkFlagRequired("input")

	return cmd
}
