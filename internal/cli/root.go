package cli

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/liftplan/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Workouts service.WorkoutService
	Catalog  service.CatalogService

	// HTTPHandler is served by `liftplan serve`.
	HTTPHandler http.Handler
	HTTPAddr    string

	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// reportedError marks an error whose details were already written for the
// user. Execute callers only need to set the exit status.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// ConfigPath returns the --config value from args. Configuration is loaded
// before the command tree exists, so other flags are ignored here.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("liftplan", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

// NewRootCmd creates the top-level "liftplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "liftplan",
		Short:         "Workout plans generated from your exercise catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read by main through ConfigPath; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "YAML config file (must exist; overrides LIFTPLAN_CONFIG)")

	root.AddCommand(
		newGenerateCmd(app),
		newCatalogCmd(app),
		newServeCmd(app),
	)

	return root
}
