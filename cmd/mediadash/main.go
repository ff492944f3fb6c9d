package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/mediadash/internal/aggregation"
	corecfg "github.com/aevon-lab/mediadash/internal/core/config"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "mediadash.yaml"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		envFile    string
		cfg        *corecfg.Config
	)

	root := &cobra.Command{
		Use:           "mediadash",
		Short:         "mediadash builds Spotify and Steam dashboards, backups and snapshots.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				if _, err := os.Stat(defaultConfigFile); err == nil {
					configPath = defaultConfigFile
				}
			}

			loaded, err := corecfg.Load(configPath, envFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				return err
			}
			cfg = loaded

			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
			slog.SetDefault(logger)
			slog.Info("Loaded config",
				"config", configPath,
				"output_dir", cfg.Output.Dir,
				"formats", cfg.Output.Formats,
				"consolidation_rules", len(cfg.RuleLoading.Rules),
				"aliases", cfg.Aliases.Len(),
				"history", cfg.Database.Enabled(),
			)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default "+defaultConfigFile+" if present)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file holding API credentials")

	run := func(build func(*app) ([]aggregation.Job, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runJobs(ctx, cfg, build)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "spotify",
			Short: "Fetch Spotify listening data and export the Spotify dashboard",
			RunE: run(func(a *app) ([]aggregation.Job, error) {
				job, err := a.spotifyJob()
				if err != nil {
					return nil, err
				}
				return []aggregation.Job{job}, nil
			}),
		},
		&cobra.Command{
			Use:   "steam",
			Short: "Fetch the Steam library and export the Steam dashboard",
			RunE: run(func(a *app) ([]aggregation.Job, error) {
				job, err := a.steamJob()
				if err != nil {
					return nil, err
				}
				return []aggregation.Job{job}, nil
			}),
		},
		&cobra.Command{
			Use:   "all",
			Short: "Run the Spotify and Steam jobs concurrently",
			RunE: run(func(a *app) ([]aggregation.Job, error) {
				spotifyJob, err := a.spotifyJob()
				if err != nil {
					return nil, err
				}
				steamJob, err := a.steamJob()
				if err != nil {
					return nil, err
				}
				return []aggregation.Job{spotifyJob, steamJob}, nil
			}),
		},
	)
	return root
}

func runJobs(ctx context.Context, cfg *corecfg.Config, build func(*app) ([]aggregation.Job, error)) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		return err
	}
	defer a.Close()

	jobs, err := build(a)
	if err != nil {
		slog.Error("Invalid job settings", "error", err)
		return err
	}

	summaries, err := aggregation.RunAll(ctx, jobs...)
	for _, s := range summaries {
		if s == nil {
			continue
		}
		slog.Info("Run finished",
			"provider", s.Provider,
			"username", s.Username,
			"origin", s.Origin,
			"files", len(s.Files),
		)
	}
	return err
}
