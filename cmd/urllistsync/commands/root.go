package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"urllistsync/internal/app"
)

var (
	configPath string
	verbose    bool
	logFormat  string

	// flagCfg receives flag values; only flags set on the command line are
	// merged into cfg.
	flagCfg app.Config

	cfg    app.Config
	logger *zap.Logger

	getenv = os.Getenv
)

// Execute runs the CLI. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "urllistsync",
		Short:        "Reconcile a domain source into a Netskope URL list",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(cmd.ErrOrStderr(), logFormat, verbose)
			if err != nil {
				return err
			}
			cfg, err = loadConfig(cmd.Flags())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default $"+app.EnvConfig+")")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFormat, "log-format", "json", "log encoding: json or console")
	pf.DurationVar(&flagCfg.Timeout, "timeout", app.Default().Timeout, "per-request HTTP timeout")

	root.AddCommand(syncCmd(), planCmd(), listsCmd(), deployCmd())
	return root
}

func newLogger(w io.Writer, format string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var enc zapcore.Encoder
	switch format {
	case "", "json":
		enc = zapcore.NewJSONEncoder(zc.EncoderConfig)
	case "console":
		ec := zc.EncoderConfig
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q (want json or console)", format)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zc.Level)), nil
}

// loadConfig layers defaults, the config file, the environment and the
// flags that were set explicitly.
func loadConfig(fs *pflag.FlagSet) (app.Config, error) {
	path := configPath
	if path == "" {
		path = getenv(app.EnvConfig)
	}
	c, err := app.LoadFile(path)
	if err != nil {
		return c, err
	}
	c.ApplyEnv(getenv)
	mergeFlags(fs, &c)
	return c, nil
}

func mergeFlags(fs *pflag.FlagSet, c *app.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "source":
			c.Source = flagCfg.Source
		case "list":
			c.List = flagCfg.List
		case "token":
			c.Token = flagCfg.Token
		case "tenant":
			c.Tenant = flagCfg.Tenant
		case "append":
			c.Append = flagCfg.Append
		case "create":
			c.Create = flagCfg.Create
		case "deploy":
			c.Deploy = flagCfg.Deploy
		case "punycode":
			c.Punycode = flagCfg.Punycode
		case "chunk-budget":
			c.ChunkBudget = flagCfg.ChunkBudget
		case "output":
			c.Output = flagCfg.Output
		case "metrics-file":
			c.MetricsFile = flagCfg.MetricsFile
		case "timeout":
			c.Timeout = flagCfg.Timeout
		}
	})
}

func addAPIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagCfg.Token, "token", "t", "", "API token (or $"+app.EnvToken+")")
	cmd.Flags().StringVarP(&flagCfg.Tenant, "tenant", "n", "", "tenant host, e.g. acme.goskope.com (or $"+app.EnvTenant+")")
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagCfg.Source, "source", "s", "", "CSV/text file or http(s) URL with domains")
	cmd.Flags().StringVarP(&flagCfg.List, "list", "l", "", "URL list name")
	cmd.Flags().BoolVar(&flagCfg.Punycode, "punycode", false, "convert internationalized domains to punycode")
	cmd.Flags().IntVar(&flagCfg.ChunkBudget, "chunk-budget", app.Default().ChunkBudget, "max request body bytes per chunk")
	cmd.Flags().StringVar(&flagCfg.Output, "output", "text", "summary format: text or json")
}

func wire() (*app.Wire, error) {
	return app.NewWire(cfg, logger)
}

