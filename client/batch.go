package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ResolveMany resolves a set of DOIs concurrently, at most limit in flight
// (limit <= 0 means unbounded). The first failure cancels the rest and is
// returned wrapped with its DOI; classified errors stay reachable via
// errors.As.
func (c *Client) ResolveMany(ctx context.Context, dois []string, limit int) (map[string]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex
	out := make(map[string]string, len(dois))

	for _, doi := range dois {
		g.Go(func() error {
			target, err := c.ResolveDOI(ctx, doi)
			if err != nil {
				return fmt.Errorf("%s: %w", doi, err)
			}
			mu.Lock()
			out[doi] = target
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
