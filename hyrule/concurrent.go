package hyrule

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency limits how many category requests run at once.
const DefaultConcurrency = 5

// AllCategories fetches every standard category concurrently and assembles
// the same aggregate /all returns. The upstream /all endpoint ships several
// megabytes in one response and tends to time out on slow links; five
// smaller requests are more reliable.
func (c *Client) AllCategories(ctx context.Context) (*AllEntries, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	var all AllEntries
	var mu sync.Mutex

	for _, cat := range Categories() {
		g.Go(func() error {
			entries, err := c.Category(ctx, cat)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", cat, err)
			}

			mu.Lock()
			defer mu.Unlock()
			switch cat {
			case CategoryCreatures:
				all.Creatures = *entries.Creatures
			case CategoryMonsters:
				all.Monsters = entries.Monsters
			case CategoryMaterials:
				all.Materials = entries.Materials
			case CategoryEquipment:
				all.Equipment = entries.Equipment
			case CategoryTreasure:
				all.Treasure = entries.Treasure
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", all.Count()).Msg("Fetched all categories")
	return &all, nil
}
