package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/matchr/config"
	"github.com/jonwraymond/matchr/rank"
	"github.com/jonwraymond/matchr/registry"
)

// app carries state shared by all subcommands once the root has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
}

// Execute runs the matchr command tree.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "matchr",
		Short:         "Fuzzy subsequence scoring and ranking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	root.AddCommand(
		newScoreCmd(),
		newRankCmd(a),
		newToolsCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	a.cfg = cfg
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Str("cmd", cmd.Name()).
		Logger()
	a.logger.Debug().Str("config", a.configPath).Msg("config loaded")
	return nil
}

func (a *app) newRanker() *rank.Ranker {
	return rank.New(rank.Options{
		Workers:           a.cfg.Rank.Workers,
		ParallelThreshold: a.cfg.Rank.ParallelThreshold,
	})
}

func (a *app) newRegistry(metrics *registry.Metrics) *registry.Registry {
	return registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{
			Name:    a.cfg.Server.Name,
			Version: a.cfg.Server.Version,
		},
		Ranker:  a.newRanker(),
		Logger:  &a.logger,
		Metrics: metrics,
	})
}
