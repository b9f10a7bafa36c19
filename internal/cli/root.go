// Package cli implements harmonyctl, the command-line client for the team
// matching engine.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/harmony/internal/app"
	"github.com/okian/harmony/internal/config"
	"github.com/okian/harmony/pkg/logger"
)

const (
	app = "harmonyctl"

	// defaultLogLevel applies until a config is loaded.
	defaultLogLevel = "warn"
)

// Actual version can be specified in build command.
var version = "unknown"

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	dataDir    string
	logLevel   string
	logOut     io.Writer
}

// RootCmd builds the harmonyctl command tree writing to out.
func RootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           app,
		Short:         "harmonyctl ranks three-person teams for a task from the harmony dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logOut = cmd.ErrOrStderr()
			return opts.initLogging(logger.FormatText, defaultLogLevel)
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file (default: $HARMONY_CONFIG)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the CSV tables (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default: log_level from config)")

	root.AddCommand(
		rankCmd(opts),
		soloCmd(opts),
		leaderboardCmd(opts),
		profilesCmd(opts),
		tasksCmd(opts),
		generateCmd(),
		smokeCmd(),
		versionCmd(),
	)
	return root
}

// initLogging sends logs to stderr so command output stays machine-readable.
// A --log-level flag wins over level.
func (o *options) initLogging(format, level string) error {
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.Init(logger.WithWriter(o.logOut), logger.WithFormat(format)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// loadConfig reads config from --config or HARMONY_CONFIG, then applies flag overrides.
func (o *options) loadConfig(ctx context.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFile(ctx, o.configFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if err := o.initLogging(cfg.LogFormat, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startService loads the dataset the way the server does.
func (o *options) startService(ctx context.Context) (*service.Service, *config.Config, error) {
	cfg, err := o.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := service.FromConfig(cfg, service.WithLogger(logger.Named(app)))
	if err := svc.Start(ctx); err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
