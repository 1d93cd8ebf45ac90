// Command tbcore is the command-line front-end of the tightbind core: it loads
// a unit cell from a YAML model or the SQLite store and runs the geometry,
// consistency and band-structure operations on it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/tightbind/config"
)

// app carries the global flags and the state built in PersistentPreRunE.
type app struct {
	// Global flags
	cfgFile   string
	verbose   bool
	dsn       string
	modelFile string
	cellKey   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tbcore",
		Short: "tbcore - tight-binding electronic-structure core",
		Long: `tbcore loads a tight-binding unit cell and computes its reciprocal
geometry, Brillouin zone, reduced basis and band structure.

The model is a YAML file (-f model.yaml) or a cell stored in SQLite
(--db tb.sqlite --cell <id|name>).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if a.dsn == "" {
				a.dsn = cfg.Store.DSN
			}
			a.cfg = cfg

			// Initialize logger
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(cfg.Level())
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			a.logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger.Debug("config loaded", zap.String("file", cfg.LoadedFrom))

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.dsn, "db", "", "SQLite store DSN (default: store.dsn from config)")
	pf.StringVarP(&a.modelFile, "file", "f", "", "Model file (YAML)")
	pf.StringVar(&a.cellKey, "cell", "", "Stored cell id or name (requires --db)")

	root.AddCommand(
		a.checkCmd(),
		a.reciprocalCmd(),
		a.bzCmd(),
		a.reduceCmd(),
		a.bandsCmd(),
		a.gridCmd(),
		a.watchCmd(),
		a.importCmd(),
		a.exportCmd(),
		a.listCmd(),
		a.rmCmd(),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
