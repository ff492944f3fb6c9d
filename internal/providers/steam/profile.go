package steam

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/mediadash/internal/core/table"
	"golang.org/x/sync/errgroup"
)

// Profile is every normalized table a run works from.
type Profile struct {
	SteamID     string
	Owned       *table.Table
	Recent      *table.Table
	Badges      *table.Table
	PlayerLevel int64
}

// NewProfile returns a Profile whose tables are all empty.
func NewProfile() Profile {
	return Profile{
		Owned:  table.New(GameColumns...),
		Recent: table.New(GameColumns...),
		Badges: table.New(BadgeColumns...),
	}
}

// Fetcher loads a complete Profile from the live API.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (Profile, error)
}

var _ Fetcher = (*Client)(nil)

// FetchProfile resolves the user, then loads owned games, recent games,
// badges and level concurrently.
func (c *Client) FetchProfile(ctx context.Context, username string) (Profile, error) {
	steamID, err := c.ResolveSteamID(ctx, username)
	if err != nil {
		return Profile{}, err
	}

	p := NewProfile()
	p.SteamID = steamID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.OwnedGames(gctx, steamID)
		if err != nil {
			return fmt.Errorf("owned games: %w", err)
		}
		p.Owned = t
		return nil
	})
	g.Go(func() error {
		t, err := c.RecentGames(gctx, steamID)
		if err != nil {
			return fmt.Errorf("recent games: %w", err)
		}
		p.Recent = t
		return nil
	})
	g.Go(func() error {
		t, err := c.Badges(gctx, steamID)
		if err != nil {
			return fmt.Errorf("badges: %w", err)
		}
		p.Badges = t
		return nil
	})
	g.Go(func() error {
		level, err := c.Level(gctx, steamID)
		if err != nil {
			return fmt.Errorf("player level: %w", err)
		}
		p.PlayerLevel = level
		return nil
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}

	slog.Info("[Steam] Fetched profile",
		"steam_id", steamID,
		"owned", p.Owned.Len(),
		"recent", p.Recent.Len(),
		"badges", p.Badges.Len(),
		"level", p.PlayerLevel,
	)
	return p, nil
}
