// Package cli implements the georisk command tree: the worker daemon plus
// read-only inspection commands over the persisted data directory.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRisk-Intelligence/internal/config"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// CLIContext carries initialized dependencies through the command tree.
// ConfigPath is the resolved config file path, empty when configuration came
// from environment variables only.
type CLIContext struct {
	Config     *config.Config
	ConfigPath string
	Logger     logging.Logger
}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "georisk",
		Short: "GeoRisk-Intelligence — geopolitical risk forecasting and watchlist tracking",
		Long: "GeoRisk-Intelligence scores processed open-source content with a randomized\n" +
			"tree ensemble, synthesizes per-country risk forecasts over three horizons,\n" +
			"and tracks watchlisted organizations and individuals.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./georisk.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newWorkerCmd(),
		newForecastsCmd(),
		newWatchlistCmd(),
		newModelCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, cfgPath, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            strings.ToLower(opts.LogLevel),
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), cliContextKey{}, &CLIContext{
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
	})
	cmd.SetContext(ctx)
	return nil
}

// initConfig loads configuration: explicit flag first, then default search
// paths, then environment-only defaults.  The second return value is the
// config file path actually used, empty for the env-only fallback.
func initConfig(opts *RootOptions) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		return cfg, opts.ConfigPath, err
	}

	searchPaths := []string{"./georisk.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, homeDir+"/.georisk/config.yaml")
	}
	searchPaths = append(searchPaths, "/etc/georisk/config.yaml")

	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			cfg, err := config.Load(p)
			return cfg, p, err
		}
	}
	cfg, err := config.LoadFromEnv()
	return cfg, "", err
}

// getCLIContext extracts the CLIContext from a command's context.
func getCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "CLI context not initialized")
	}
	return cliCtx, nil
}

// printJSON writes data as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		return 1
	}
	return 0
}
