package aggregation

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// RunAll runs the jobs concurrently. Summaries are returned in job order.
// A failing job does not cancel the others; the first error is returned once
// every job has finished.
func RunAll(ctx context.Context, jobs ...Job) ([]*Summary, error) {
	summaries := make([]*Summary, len(jobs))

	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			s, err := job.Run(ctx)
			if err != nil {
				slog.Error("[Pipeline] Job failed", "job", job.Name(), "error", err)
				return fmt.Errorf("%s: %w", job.Name(), err)
			}
			summaries[i] = s
			return nil
		})
	}

	err := g.Wait()
	slog.Info("[Pipeline] All jobs finished", "jobs", len(jobs), "failed", err != nil)
	return summaries, err
}
