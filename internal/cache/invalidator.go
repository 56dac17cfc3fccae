// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package cache

import (
	"github.com/rs/zerolog"

	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/metrics"
)

// Invalidator maps entity changes to cache purges. Handlers call it
// synchronously after every successful create, update or delete, before
// the mutation response is written, so a subsequent read never sees a
// stale list.
//
// Binding:
//   - Artist changes purge ArtistList and ArtistsByHits
//   - Hit changes purge HitList and ArtistsByHits
//
// The aggregate view is bound to both entity types: its payload embeds
// artist names and hit rows, so either kind of change can stale it.
type Invalidator struct {
	cache  *ListCache
	logger zerolog.Logger
}

// NewInvalidator creates an Invalidator purging the given cache.
func NewInvalidator(c *ListCache) *Invalidator {
	return &Invalidator{
		cache:  c,
		logger: logging.With().Str("component", "invalidator").Logger(),
	}
}

// ArtistChanged purges every cached page of the artist list and the
// by-artist ranking. Returns the total number of entries purged.
func (inv *Invalidator) ArtistChanged() int {
	return inv.purge(ArtistList, ArtistsByHits)
}

// HitChanged purges every cached page of the hit list and the by-artist
// ranking. Returns the total number of entries purged.
func (inv *Invalidator) HitChanged() int {
	return inv.purge(HitList, ArtistsByHits)
}

func (inv *Invalidator) purge(views ...View) int {
	total := 0
	for _, view := range views {
		purged := inv.cache.DeleteByPrefix(Prefix(view))
		metrics.RecordInvalidation(string(view), purged)
		if purged > 0 {
			inv.logger.Debug().
				Str("view", string(view)).
				Int("purged", purged).
				Msg("Cache invalidated")
		}
		total += purged
	}
	return total
}
