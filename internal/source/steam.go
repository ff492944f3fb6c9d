package source

import (
	"context"
	"fmt"

	"github.com/aevon-lab/mediadash/internal/core/storage"
	"github.com/aevon-lab/mediadash/internal/core/table"
	"github.com/aevon-lab/mediadash/internal/providers/steam"
	"github.com/aevon-lab/mediadash/internal/stats"
)

// SteamData is the prepared per-game table a Steam run works from.
type SteamData struct {
	SteamID     string
	Games       *table.Table
	PlayerLevel int64
}

// EmptySteam is the data used when neither the API nor a backup is available.
func EmptySteam() SteamData {
	return SteamData{Games: table.New(steam.GameColumns...)}
}

// SteamBackupFile is the per-game backup for username.
func SteamBackupFile(username string) string {
	return username + "_SteamData.csv"
}

// SteamLive fetches the profile and prepares the per-game table.
func SteamLive(f steam.Fetcher, username string, opts stats.SteamOptions) Source[SteamData] {
	return Func[SteamData](func(ctx context.Context) (SteamData, error) {
		p, err := f.FetchProfile(ctx, username)
		if err != nil {
			return SteamData{}, err
		}
		return SteamData{
			SteamID:     p.SteamID,
			Games:       stats.PrepareSteamTable(p, opts),
			PlayerLevel: p.PlayerLevel,
		}, nil
	})
}

// SteamCached loads the per-game backup. The player level is read from the
// table's player_level column.
func SteamCached(store storage.BackupStore, username string) Source[SteamData] {
	return Func[SteamData](func(ctx context.Context) (SteamData, error) {
		games, err := store.ReadTable(ctx, SteamBackupFile(username))
		if err != nil {
			return SteamData{}, fmt.Errorf("steam games: %w", err)
		}
		games = stats.SortByPlaytime(games.WithTextColumns(steam.GameTextColumns...))
		return SteamData{Games: games, PlayerLevel: stats.PlayerLevelFromTable(games)}, nil
	})
}

// WriteSteamBackup overwrites the per-game backup.
func WriteSteamBackup(ctx context.Context, store storage.BackupStore, username string, d SteamData) error {
	return store.WriteTable(ctx, SteamBackupFile(username), d.Games)
}
