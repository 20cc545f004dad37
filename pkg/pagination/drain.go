package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Drain keeps fetching next pages until the collection is exhausted, a page
// comes back empty or maxPages fetches were made (0 means no limit). It returns
// the number of pages fetched.
//
// Drain waits for the initial load first. An unknown more state is treated
// optimistically; only an exhausted collection stops the loop.
func Drain[T any](ctx context.Context, c *Collection[T], maxPages int) (int, error) {
	start := time.Now()

	if err := c.Wait(ctx); err != nil {
		return 0, fmt.Errorf("initial load: %w", err)
	}

	fetched := 0
	for c.More() != MoreExhausted {
		if maxPages > 0 && fetched >= maxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		page, err := c.FetchNext(ctx)
		if err != nil {
			log.Warn().
				Err(err).
				Int("fetched_pages", fetched).
				Int("items", c.Len()).
				Msg("Drain stopped on fetch error")
			return fetched, fmt.Errorf("fetch page %d: %w", fetched+1, err)
		}
		fetched++

		if fetched%50 == 0 {
			log.Info().
				Int("fetched_pages", fetched).
				Int("items", c.Len()).
				Msg("Drain progress")
		}
		if len(page.Items) == 0 {
			break
		}
	}

	log.Debug().
		Int("pages", fetched).
		Int("items", c.Len()).
		Dur("duration", time.Since(start)).
		Msg("Drain complete")

	return fetched, nil
}
