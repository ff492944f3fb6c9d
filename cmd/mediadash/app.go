package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aevon-lab/mediadash/internal/aggregation"
	"github.com/aevon-lab/mediadash/internal/charts/render"
	corecfg "github.com/aevon-lab/mediadash/internal/core/config"
	"github.com/aevon-lab/mediadash/internal/core/storage"
	"github.com/aevon-lab/mediadash/internal/core/storage/csvfile"
	"github.com/aevon-lab/mediadash/internal/core/storage/postgres"
	"github.com/aevon-lab/mediadash/internal/migrations"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/providers/steam"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// app holds the dependencies shared by every job of one invocation.
type app struct {
	ctx       context.Context
	cfg       *corecfg.Config
	formats   []render.Format
	snapshots storage.SnapshotStore
	closeFn   func() error
}

func newApp(ctx context.Context, cfg *corecfg.Config) (*app, error) {
	formats := make([]render.Format, 0, len(cfg.Output.Formats))
	for _, f := range cfg.Output.Formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}

	a := &app{ctx: ctx, cfg: cfg, formats: formats}
	if !cfg.Database.Enabled() {
		slog.Info("Run history disabled (no database.dsn)")
		return a, nil
	}

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	adapter, err := postgres.NewSnapshotAdapter(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.snapshots = adapter
	a.closeFn = adapter.Close
	return a, nil
}

// Close releases the history database, if any.
func (a *app) Close() {
	if a.closeFn == nil {
		return
	}
	if err := a.closeFn(); err != nil {
		slog.Warn("Failed to close history database", "error", err)
	}
}

func (a *app) params(provider string) aggregation.JobParameter {
	return aggregation.JobParameter{
		OutputDir: a.cfg.Output.ProviderDir(provider),
		Formats:   a.formats,
	}
}

func (a *app) spotifyJob() (*aggregation.SpotifyJob, error) {
	if err := a.cfg.RequireSpotifyUser(); err != nil {
		return nil, err
	}
	params := a.params("spotify")
	job := &aggregation.SpotifyJob{
		Username:  a.cfg.Spotify.Username,
		Backups:   csvfile.New(params.OutputDir),
		Snapshots: a.snapshots,
		Options: stats.SpotifyOptions{
			AnnualHoursFactor: a.cfg.Stats.AnnualHoursFactor,
			TopN:              a.cfg.Stats.SpotifyTopN,
			Names:             a.cfg.Aliases,
		},
		Params: params,
	}

	creds := a.cfg.Credentials
	if !creds.HasSpotify() {
		slog.Warn("Spotify credentials missing, the run will use backups only")
		return job, nil
	}
	client, err := spotify.NewClient(a.ctx, spotify.Credentials{
		ClientID:     creds.SpotifyClientID,
		ClientSecret: creds.SpotifyClientSecret,
		RefreshToken: creds.SpotifyRefreshToken,
	},
		spotify.WithBaseURL(a.cfg.Spotify.BaseURL),
		spotify.WithTokenURL(a.cfg.Spotify.TokenURL),
		spotify.WithTimeout(a.cfg.SpotifyTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("spotify client: %w", err)
	}
	job.Fetcher = client
	return job, nil
}

func (a *app) steamJob() (*aggregation.SteamJob, error) {
	if err := a.cfg.RequireSteamUser(); err != nil {
		return nil, err
	}
	rules, err := a.cfg.RuleLoading.Repository.List(a.ctx, steam.GameKeyColumn)
	if err != nil {
		return nil, fmt.Errorf("consolidation rules: %w", err)
	}
	if skipped := len(a.cfg.RuleLoading.Rules) - len(rules); skipped > 0 {
		slog.Warn("Ignoring consolidation rules not keyed on "+steam.GameKeyColumn, "count", skipped)
	}

	params := a.params("steam")
	job := &aggregation.SteamJob{
		Username:  a.cfg.Steam.Username,
		Backups:   csvfile.New(params.OutputDir),
		Snapshots: a.snapshots,
		Options: stats.SteamOptions{
			TopN:  a.cfg.Stats.SteamTopN,
			Rules: rules,
		},
		Params: params,
	}

	if !a.cfg.Credentials.HasSteam() {
		slog.Warn("Steam API key missing, the run will use backups only")
		return job, nil
	}
	client, err := steam.NewClient(a.cfg.Credentials.SteamAPIKey, a.cfg.Steam.BaseURL, &http.Client{Timeout: a.cfg.SteamTimeout()})
	if err != nil {
		return nil, fmt.Errorf("steam client: %w", err)
	}
	job.Fetcher = client
	return job, nil
}
