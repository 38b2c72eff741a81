package cli

import (
	"github.com/spf13/cobra"

	"github.com/mikey/mailsift/internal/pipeline"
)

// newAnalyzeCmd creates the analyze subcommand
func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		apiKey         string
		inputFile      string
		detectionsFile string
		outputFile     string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a message against a detections file",
		Long: `Analyze evaluates an email message, raw (EML) or already enriched
(MDM), against the detection rules in the detections file and prints
the analysis result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPipeline(cmd.Context(), &pipeline.Invocation{
				Command:        pipeline.CommandAnalyze,
				InputPath:      inputFile,
				DetectionsPath: detectionsFile,
				OutputPath:     outputFile,
				Format:         format,
				APIKeyFlag:     apiKey,
			})
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Key to include in API requests")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input EML or enriched MDM file")
	cmd.Flags().StringVarP(&detectionsFile, "detections", "d", "", "Detections file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "Output format (json or txt)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("detections")

	return cmd
}
