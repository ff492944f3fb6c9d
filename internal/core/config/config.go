package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	coreagg "github.com/aevon-lab/mediadash/internal/core/aggregation"
	"github.com/aevon-lab/mediadash/internal/core/names"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces settings overridden from the environment, e.g.
// MEDIADASH_DATABASE__DSN sets database.dsn.
const EnvPrefix = "MEDIADASH_"

// Credential environment variables. They are never read from the config file.
const (
	EnvSpotifyClientID     = "SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvSpotifyRefreshToken = "SPOTIFY_REFRESH_TOKEN"
	EnvSpotifyUsername     = "SPOTIFY_DASHBOARD_USERNAME"
	EnvSteamAPIKey         = "STEAM_API_KEY"
	EnvSteamUsername       = "STEAM_USERNAME"
)

var validFormats = map[string]bool{"json": true, "html": true, "png": true, "svg": true}

// Config represents the top-level application config plus resolved rules,
// aliases and credentials.
type Config struct {
	Output        OutputConfig        `koanf:"output"`
	Log           LogConfig           `koanf:"log"`
	Stats         StatsConfig         `koanf:"stats"`
	Consolidation ConsolidationConfig `koanf:"consolidation"`
	Names         NamesConfig         `koanf:"names"`
	Database      DatabaseConfig      `koanf:"database"`
	Spotify       SpotifyConfig       `koanf:"spotify"`
	Steam         SteamConfig         `koanf:"steam"`

	// Populated by Load after parsing.
	RuleLoading RuleLoadingConfig `koanf:"-"`
	Aliases     *names.Normalizer `koanf:"-"`
	Credentials Credentials       `koanf:"-"`
}

type OutputConfig struct {
	Dir     string   `koanf:"dir"`
	Formats []string `koanf:"formats"` // json | html | png | svg
}

// ProviderDir is the data directory of one provider.
func (c OutputConfig) ProviderDir(provider string) string {
	return filepath.Join(c.Dir, provider)
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

// SlogLevel maps the configured level to slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type StatsConfig struct {
	AnnualHoursFactor float64 `koanf:"annual_hours_factor"`
	SpotifyTopN       int     `koanf:"spotify_top_n"`
	SteamTopN         int     `koanf:"steam_top_n"`
}

type ConsolidationConfig struct {
	ConfigDir string `koanf:"config_dir"`
}

type NamesConfig struct {
	AliasesFile string `koanf:"aliases_file"`
}

// DatabaseConfig enables run history when DSN is set.
type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// Enabled reports whether run history should be recorded.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type SpotifyConfig struct {
	BaseURL  string `koanf:"base_url"`
	TokenURL string `koanf:"token_url"`
	Timeout  string `koanf:"timeout"` // parsed and validated on startup
	Username string `koanf:"username"`
}

type SteamConfig struct {
	BaseURL  string `koanf:"base_url"`
	Timeout  string `koanf:"timeout"`
	Username string `koanf:"username"`
}

type RuleLoadingConfig struct {
	ConfigDir  string
	Rules      []coreagg.ConsolidationRule
	Repository coreagg.RuleRepository
}

// Credentials come from the process environment only.
type Credentials struct {
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRefreshToken string
	SteamAPIKey         string
}

// HasSpotify reports whether every Spotify credential is present.
func (c Credentials) HasSpotify() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != "" && c.SpotifyRefreshToken != ""
}

// HasSteam reports whether the Steam API key is present.
func (c Credentials) HasSteam() bool {
	return c.SteamAPIKey != ""
}

// SpotifyTimeout returns the parsed Spotify HTTP timeout.
func (c *Config) SpotifyTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Spotify.Timeout)
	return d
}

// SteamTimeout returns the parsed Steam HTTP timeout.
func (c *Config) SteamTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Steam.Timeout)
	return d
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir is required")
	}
	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must list at least one format")
	}
	for _, f := range c.Output.Formats {
		if !validFormats[strings.ToLower(strings.TrimSpace(f))] {
			return fmt.Errorf("invalid output format %q (must be json, html, png or svg)", f)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}

	if c.Stats.AnnualHoursFactor <= 0 {
		return fmt.Errorf("stats.annual_hours_factor must be > 0")
	}
	if c.Stats.SpotifyTopN <= 0 {
		return fmt.Errorf("stats.spotify_top_n must be > 0")
	}
	if c.Stats.SteamTopN <= 0 {
		return fmt.Errorf("stats.steam_top_n must be > 0")
	}

	if c.Database.Enabled() {
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	}

	for name, raw := range map[string]string{"spotify.timeout": c.Spotify.Timeout, "steam.timeout": c.Steam.Timeout} {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}

	return nil
}

// RequireSpotifyUser checks the settings a Spotify run cannot do without.
func (c *Config) RequireSpotifyUser() error {
	if strings.TrimSpace(c.Spotify.Username) == "" {
		return fmt.Errorf("spotify username is required (set %s or spotify.username)", EnvSpotifyUsername)
	}
	return nil
}

// RequireSteamUser checks the settings a Steam run cannot do without.
func (c *Config) RequireSteamUser() error {
	if strings.TrimSpace(c.Steam.Username) == "" {
		return fmt.Errorf("steam username is required (set %s or steam.username)", EnvSteamUsername)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("[Config] No .env file found, using environment variables", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("[Config] Loaded .env", "path", path)
	return nil
}

// Load parses config from defaults, file and env, validates it, then loads
// consolidation rules, aliases and credentials.
func Load(configPath, envFile string) (*Config, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	defaults := map[string]interface{}{
		"output.dir":                  "./data",
		"output.formats":              []string{"json", "html", "png", "svg"},
		"log.level":                   "info",
		"stats.annual_hours_factor":   2.5,
		"stats.spotify_top_n":         10,
		"stats.steam_top_n":           15,
		"consolidation.config_dir":    "./config/consolidation",
		"names.aliases_file":          "./config/aliases.yaml",
		"database.dsn":                "",
		"database.max_open_conns":     5,
		"database.max_idle_conns":     5,
		"database.auto_migrate":       true,
		"spotify.base_url":            "https://api.spotify.com",
		"spotify.token_url":           "https://accounts.spotify.com/api/token",
		"spotify.timeout":             "30s",
		"spotify.username":            "",
		"steam.base_url":              "https://api.steampowered.com",
		"steam.timeout":               "30s",
		"steam.username":              "",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Spotify.Username == "" {
		cfg.Spotify.Username = os.Getenv(EnvSpotifyUsername)
	}
	if cfg.Steam.Username == "" {
		cfg.Steam.Username = os.Getenv(EnvSteamUsername)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := coreagg.NewFileSystemRuleRepository(cfg.Consolidation.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load consolidation rules: %w", err)
	}
	cfg.RuleLoading = RuleLoadingConfig{
		ConfigDir:  cfg.Consolidation.ConfigDir,
		Rules:      repo.GetRules(),
		Repository: repo,
	}

	aliases, err := names.LoadFile(cfg.Names.AliasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	cfg.Aliases = aliases

	cfg.Credentials = Credentials{
		SpotifyClientID:     os.Getenv(EnvSpotifyClientID),
		SpotifyClientSecret: os.Getenv(EnvSpotifyClientSecret),
		SpotifyRefreshToken: os.Getenv(EnvSpotifyRefreshToken),
		SteamAPIKey:         os.Getenv(EnvSteamAPIKey),
	}

	return &cfg, nil
}
