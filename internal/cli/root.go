package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mailsift/internal/adapters/api"
	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/di"
	"github.com/mikey/mailsift/internal/pipeline"
	"github.com/mikey/mailsift/internal/version"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a handled failure: bad input, transport
	// error, or an API error response.
	ExitCodeError = 1
	// ExitCodeAPIKeyMissing indicates no API key could be resolved.
	ExitCodeAPIKeyMissing = 2
)

// App holds the process-wide state shared by all commands
type App struct {
	container *dig.Container
	logger    *zap.Logger
	stdout    io.Writer
	stderr    io.Writer

	configFile string
	verbose    bool
	jsonLog    bool
}

// NewApp creates the application state with the given output stream
func NewApp(stdout io.Writer) *App {
	return &App{
		logger: zap.NewNop(),
		stdout: stdout,
		stderr: os.Stderr,
	}
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	app := NewApp(os.Stdout)
	root := newRootCmd(app)

	if err := root.Execute(); err != nil {
		return app.reportError(err)
	}
	return ExitCodeSuccess
}

// newRootCmd creates the root command with all subcommands attached
func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailsift",
		Short: "Enrich and analyze email messages with the mailsift analysis service",
		Long: `mailsift sends raw email messages to the mailsift analysis service to
produce enriched message data models (MDM) and to evaluate messages
against detection rules.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize(cmd.Name())
		},
	}

	cmd.SetVersionTemplate(`{{printf "mailsift version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&app.configFile, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&app.jsonLog, "json-log", false, "Output logs in JSON format")

	cmd.AddCommand(newEnrichCmd(app))
	cmd.AddCommand(newAnalyzeCmd(app))
	cmd.AddCommand(newSetupCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initialize builds the DI container once flags are parsed
func (a *App) initialize(command string) error {
	container, err := di.BuildContainer(di.Options{
		ConfigFile: a.configFile,
		Verbose:    a.verbose,
		JSONLog:    a.jsonLog,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	a.container = container

	return container.Invoke(func(logger *zap.Logger) {
		a.logger = logger.With(zap.String("run_id", uuid.NewString()))
		a.logger.Debug("Starting invocation", zap.String("command", command))
	})
}

// runPipeline assembles the stage chain and runs one invocation
func (a *App) runPipeline(ctx context.Context, inv *pipeline.Invocation) error {
	return a.container.Invoke(func(cfg *config.Config, newService pipeline.ServiceFactory) error {
		inv.Stdout = a.stdout
		p := pipeline.New(a.logger,
			pipeline.ResolveCredentials(cfg),
			pipeline.LoadInputs(),
			pipeline.Invoke(newService),
			pipeline.EmitResult(a.logger),
		)
		return p.Run(ctx, inv)
	})
}

// reportError logs a handled error and maps it to an exit code
func (a *App) reportError(err error) int {
	var apiErr *api.Error

	switch {
	case errors.Is(err, config.ErrAPIKeyNotFound):
		fmt.Fprint(a.stderr, "\nError: API key not found.\n\n"+
			"To fix this problem, please use any of the following methods "+
			"(in order of precedence):\n"+
			"- Pass it using the -k/--api-key option.\n"+
			"- Set it in the MAILSIFT_API_KEY environment variable.\n"+
			"- Run 'mailsift setup' to save it to the configuration file.\n")
		return ExitCodeAPIKeyMissing
	case errors.As(err, &apiErr):
		a.logger.Error("API error",
			zap.String("detail", apiErr.Detail),
			zap.Int("status", apiErr.StatusCode))
		return ExitCodeError
	default:
		// Flag-parse and startup failures happen before the container
		// (and so the real logger) exists; cobra's own printing is
		// silenced, so report them directly.
		if a.container == nil {
			fmt.Fprintln(a.stderr, "Error:", err)
			return ExitCodeError
		}
		a.logger.Error("Command failed", zap.Error(err))
		return ExitCodeError
	}
}
