// Package aggregation runs the per-provider batch jobs: load data with
// fallback, compile statistics, and write every output of a run.
package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	v1 "github.com/aevon-lab/mediadash/internal/api/v1"
	"github.com/aevon-lab/mediadash/internal/charts"
	"github.com/aevon-lab/mediadash/internal/charts/render"
	"github.com/aevon-lab/mediadash/internal/core/storage"
	"github.com/aevon-lab/mediadash/internal/providers/spotify"
	"github.com/aevon-lab/mediadash/internal/providers/steam"
	"github.com/aevon-lab/mediadash/internal/source"
	"github.com/aevon-lab/mediadash/internal/stats"
	"github.com/google/uuid"
)

const (
	SpotifySnapshotFile = "spotify_data.json"
	SteamSnapshotFile   = "steam_data.json"
)

// ErrNoFetcher is the live error of a job built without API credentials.
var ErrNoFetcher = errors.New("no API client configured")

// JobParameter controls where a run writes and what it exports.
type JobParameter struct {
	// OutputDir is the provider's data directory; backups, the snapshot
	// document and the Charts subdirectory live under it.
	OutputDir string
	Formats   []render.Format
}

func (p JobParameter) normalized() JobParameter {
	n := p
	if n.OutputDir == "" {
		n.OutputDir = "."
	}
	if len(n.Formats) == 0 {
		n.Formats = render.AllFormats
	}
	return n
}

// Summary reports what a run produced.
type Summary struct {
	Provider string
	Username string
	Origin   source.Origin
	Files    []string

	// RunID is set when the run was recorded in snapshot history.
	RunID uuid.UUID
}

// Job is one provider's batch run.
type Job interface {
	Name() string
	Run(ctx context.Context) (*Summary, error)
}

// SpotifyJob builds the Spotify outputs for one user.
type SpotifyJob struct {
	Username  string
	Fetcher   spotify.Fetcher
	Backups   storage.BackupStore
	Snapshots storage.SnapshotStore // optional
	Options   stats.SpotifyOptions
	Params    JobParameter
}

func (j *SpotifyJob) Name() string { return v1.ProviderSpotify }

// Run loads the library (live, else backup, else empty), compiles statistics
// and writes backups, charts, the snapshot document and run history.
// Backups are only rewritten from live data.
func (j *SpotifyJob) Run(ctx context.Context) (*Summary, error) {
	params := j.Params.normalized()
	started := time.Now()

	live := unavailable[spotify.Library]()
	if j.Fetcher != nil {
		live = source.SpotifyLive(j.Fetcher)
	}

	slog.Info("[Pipeline] Starting Spotify run", "username", j.Username, "output_dir", params.OutputDir)
	res := source.WithFallback(ctx, "spotify", live, source.SpotifyCached(j.Backups, j.Username), spotify.NewLibrary)

	report, err := stats.CompileSpotify(res.Value, j.Options)
	if err != nil {
		return nil, fmt.Errorf("compile spotify stats: %w", err)
	}

	summary := &Summary{Provider: v1.ProviderSpotify, Username: j.Username, Origin: res.Origin}

	if res.Origin == source.OriginLive {
		if err := source.WriteSpotifyBackup(ctx, j.Backups, j.Username, res.Value, report.Stats); err != nil {
			return nil, fmt.Errorf("write spotify backup: %w", err)
		}
		slog.Info("[Pipeline] Spotify backup written", "username", j.Username)
	}

	exporter := render.NewExporter(filepath.Join(params.OutputDir, source.ChartsDir))
	topN := j.Options.TopN

	files, err := exporter.Export(j.Username+"_Dashboard",
		charts.SpotifyDashboard(j.Username, res.Value, report, topN, charts.LayoutStandard), params.Formats...)
	summary.Files = append(summary.Files, files...)
	if err != nil {
		return nil, fmt.Errorf("export spotify dashboard: %w", err)
	}
	for _, layout := range charts.Layouts {
		spec := charts.SpotifyDashboard(j.Username, res.Value, report, topN, layout)
		path, err := exporter.Write(j.Username+"_"+layout.Name(), spec, render.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("export %s layout: %w", layout.Name(), err)
		}
		summary.Files = append(summary.Files, path)
	}
	path, err := exporter.Write(j.Username+"_PieOnly", charts.PieOnly(report.ArtistShares), render.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("export pie chart: %w", err)
	}
	summary.Files = append(summary.Files, path)

	doc := v1.NewSpotifySnapshot(j.Username, string(res.Origin), res.Value, report)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spotify snapshot: %w", err)
	}
	data, path, err := writeDocument(params.OutputDir, SpotifySnapshotFile, doc)
	if err != nil {
		return nil, err
	}
	summary.Files = append(summary.Files, path)

	if j.Snapshots != nil {
		run := &storage.Run{
			Provider:    v1.ProviderSpotify,
			Username:    j.Username,
			Origin:      string(res.Origin),
			GeneratedAt: report.Stats.GeneratedAt,
			Document:    data,
			Growth: append(
				GrowthRecords("saved_tracks", report.Library.MonthlyGrowth),
				GrowthRecords("saved_tracks", report.Library.YearlyGrowth)...,
			),
		}
		if err := j.Snapshots.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("record spotify run: %w", err)
		}
		summary.RunID = run.ID
	}

	slog.Info("[Pipeline] Spotify run complete",
		"username", j.Username,
		"origin", res.Origin,
		"saved_tracks", report.Library.TotalSavedTracks,
		"total_hours", report.Stats.TotalHours,
		"files", len(summary.Files),
		"duration", time.Since(started),
	)
	return summary, nil
}

// SteamJob builds the Steam outputs for one user.
type SteamJob struct {
	Username  string
	Fetcher   steam.Fetcher
	Backups   storage.BackupStore
	Snapshots storage.SnapshotStore // optional
	Options   stats.SteamOptions
	Params    JobParameter
}

func (j *SteamJob) Name() string { return v1.ProviderSteam }

// Run loads the per-game table (live, else backup, else empty), compiles
// statistics and writes backups, charts, the snapshot document and run history.
func (j *SteamJob) Run(ctx context.Context) (*Summary, error) {
	params := j.Params.normalized()
	started := time.Now()

	live := unavailable[source.SteamData]()
	if j.Fetcher != nil {
		live = source.SteamLive(j.Fetcher, j.Username, j.Options)
	}

	slog.Info("[Pipeline] Starting Steam run", "username", j.Username, "output_dir", params.OutputDir)
	res := source.WithFallback(ctx, "steam", live, source.SteamCached(j.Backups, j.Username), source.EmptySteam)

	report, err := stats.CompileSteam(res.Value.Games, res.Value.PlayerLevel, j.Options)
	if err != nil {
		return nil, fmt.Errorf("compile steam stats: %w", err)
	}

	summary := &Summary{Provider: v1.ProviderSteam, Username: j.Username, Origin: res.Origin}

	if res.Origin == source.OriginLive {
		if err := source.WriteSteamBackup(ctx, j.Backups, j.Username, res.Value); err != nil {
			return nil, fmt.Errorf("write steam backup: %w", err)
		}
		slog.Info("[Pipeline] Steam backup written", "username", j.Username)
	}

	exporter := render.NewExporter(filepath.Join(params.OutputDir, source.ChartsDir))
	files, err := exporter.Export(j.Username+"_Dashboard", charts.SteamDashboard(j.Username, report), params.Formats...)
	summary.Files = append(summary.Files, files...)
	if err != nil {
		return nil, fmt.Errorf("export steam dashboard: %w", err)
	}

	doc := v1.NewSteamSnapshot(j.Username, res.Value.SteamID, string(res.Origin), report)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid steam snapshot: %w", err)
	}
	data, path, err := writeDocument(params.OutputDir, SteamSnapshotFile, doc)
	if err != nil {
		return nil, err
	}
	summary.Files = append(summary.Files, path)

	if j.Snapshots != nil {
		run := &storage.Run{
			Provider:    v1.ProviderSteam,
			Username:    j.Username,
			Origin:      string(res.Origin),
			GeneratedAt: report.Stats.GeneratedAt,
			Document:    data,
			Growth:      GrowthRecords("library_activity", report.Activity),
		}
		if err := j.Snapshots.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("record steam run: %w", err)
		}
		summary.RunID = run.ID
	}

	slog.Info("[Pipeline] Steam run complete",
		"username", j.Username,
		"origin", res.Origin,
		"owned_games", report.Stats.OwnedGames,
		"played_games", report.Stats.PlayedGames,
		"files", len(summary.Files),
		"duration", time.Since(started),
	)
	return summary, nil
}

func unavailable[T any]() source.Source[T] {
	return source.Func[T](func(context.Context) (T, error) {
		var zero T
		return zero, ErrNoFetcher
	})
}

// writeDocument encodes doc as indented JSON into dir/name and returns the
// encoded bytes with the written path.
func writeDocument(dir, name string, doc interface{}) ([]byte, string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, "", fmt.Errorf("write %s: %w", path, err)
	}
	return data, path, nil
}
