package pagination

import (
	"context"
	"fmt"
)

// PageFunc fetches up to limit records starting at offset.
// An empty page signals the end of the collection.
type PageFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Paginate calls fetch with offsets 0, pageSize, 2*pageSize, ... until a page
// comes back empty and returns every record in call order. There is no cap on
// the number of calls and a failed call is not retried.
func Paginate[T any](ctx context.Context, fetch PageFunc[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	var out []T
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			return out, nil
		}
		out = append(out, page...)
	}
}
