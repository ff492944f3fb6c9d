// Package source loads provider data from the live API, falling back to the
// last backup when the live fetch fails.
package source

import (
	"context"
	"errors"
	"log/slog"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
)

// Origin records where a run's data came from.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
	OriginEmpty    Origin = "empty"
)

// Source loads one provider's data.
type Source[T any] interface {
	Load(ctx context.Context) (T, error)
}

// Func adapts a function to Source.
type Func[T any] func(ctx context.Context) (T, error)

func (f Func[T]) Load(ctx context.Context) (T, error) { return f(ctx) }

// Result is the outcome of WithFallback.
type Result[T any] struct {
	Value  T
	Origin Origin

	// LiveErr is why the live source failed; nil when Origin is live.
	LiveErr error
	// BackupErr is why the backup could not be used; nil unless Origin is empty.
	BackupErr error
}

// WithFallback loads from live and, on any error, from cached. When the
// backup is missing or unreadable the result holds empty() with Origin empty.
// It never fails: the run proceeds with whatever data could be found.
func WithFallback[T any](ctx context.Context, name string, live, cached Source[T], empty func() T) Result[T] {
	v, err := live.Load(ctx)
	if err == nil {
		return Result[T]{Value: v, Origin: OriginLive}
	}
	slog.Warn("[Source] Live fetch failed, loading backup", "source", name, "error", err)

	res := Result[T]{LiveErr: err}
	v, berr := cached.Load(ctx)
	if berr == nil {
		slog.Info("[Source] Loaded backup", "source", name)
		res.Value = v
		res.Origin = OriginFallback
		return res
	}

	if errors.Is(berr, coreerrors.ErrNoBackup) {
		slog.Warn("[Source] No backup data available", "source", name)
	} else {
		slog.Error("[Source] Backup unreadable", "source", name, "error", berr)
	}
	res.Value = empty()
	res.Origin = OriginEmpty
	res.BackupErr = berr
	return res
}
