package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/internal/metrics"
)

const version = "0.3.0"

// RootConfig holds the persistent flags. Empty values leave the loaded
// configuration alone.
type RootConfig struct {
	ConfigPath  string
	Source      string
	DBPath      string
	CSVPath     string
	APIURL      string
	LogLevel    string
	MetricsFile string
}

// app is the state shared by every command once the root pre-run has loaded
// the configuration.
type app struct {
	rc      *RootConfig
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	cache   *analytics.Cache

	stopTracing func(context.Context) error
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.rc.ConfigPath, a.applyFlags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, cmd.ErrOrStderr())
	if cfg.Logging.Tracing {
		stop, err := logger.InitTracing(cmd.Context(), "tradejournal", version, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		a.stopTracing = stop
	}

	a.metrics = metrics.New()
	a.cache = analytics.NewCache(cfg.Analytics.CacheSize)
	a.cache.OnHit = a.metrics.CacheHit
	a.cache.OnMiss = a.metrics.CacheMiss
	return nil
}

func (a *app) applyFlags(cfg *config.Config) {
	if a.rc.Source != "" {
		cfg.Source.Type = a.rc.Source
	}
	if a.rc.DBPath != "" {
		cfg.Source.DBPath = a.rc.DBPath
	}
	if a.rc.CSVPath != "" {
		cfg.Source.CSVPath = a.rc.CSVPath
	}
	if a.rc.APIURL != "" {
		cfg.API.BaseURL = a.rc.APIURL
	}
	if a.rc.LogLevel != "" {
		cfg.Logging.Level = a.rc.LogLevel
	}
	if a.rc.MetricsFile != "" {
		cfg.Metrics.TextfilePath = a.rc.MetricsFile
	}
}

func (a *app) teardown(ctx context.Context) error {
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			a.log.Warn("tracing shutdown", "err", err)
		}
	}
	if a.metrics != nil && a.cfg.Metrics.TextfilePath != "" {
		if err := a.metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}
	a := &app{rc: rc}

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Journal - trade journal analytics, import and export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.Source, "source", "", "Trade source: api|sqlite|csv")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database")
	cmd.PersistentFlags().StringVar(&rc.CSVPath, "csv", "", "CSV trade export")
	cmd.PersistentFlags().StringVar(&rc.APIURL, "api-url", "", "Trade API base URL")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if skipSetup(cmd) {
			return nil
		}
		return a.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.cfg == nil {
			return nil
		}
		return a.teardown(cmd.Context())
	}

	// Subcommands
	cmd.AddCommand(
		newTradesCmd(a),
		newAnalyticsCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "journal version %s\n", version)
		},
	})

	return cmd
}

// skipSetup reports whether cmd runs without a loaded configuration.
func skipSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	if p := cmd.Parent(); p != nil {
		switch p.Name() {
		case "config", "completion":
			return true
		}
	}
	return false
}

func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
