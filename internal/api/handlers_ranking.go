// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net/http"

	"github.com/pmilosz/hitparade/internal/models"
)

// ArtistsByHits handles GET /api/v1/hits/by-artist/: artists ranked by
// hit count with their hits nested. Ordering is fixed (hit_count desc,
// last_name asc, first_name asc); only page and page_size apply.
func (h *Handler) ArtistsByHits(w http.ResponseWriter, r *http.Request) {
	page, apiErr := h.parsePagination(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	rankings, total, err := h.store.ArtistsByHitCount(r.Context(), page.limit(), page.offset())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "failed to rank artists", err)
		return
	}

	results := make([]models.ArtistHits, 0, len(rankings))
	for _, ranking := range rankings {
		hits := make([]models.RankedHit, 0, len(ranking.Hits))
		for _, hit := range ranking.Hits {
			hits = append(hits, models.RankedHit{
				ID:        hit.ID,
				Title:     hit.Title,
				TitleURL:  hitURL(r, hit.ID),
				CreatedAt: hit.CreatedAt,
			})
		}
		results = append(results, models.ArtistHits{
			ID:        ranking.ID,
			FirstName: ranking.FirstName,
			LastName:  ranking.LastName,
			HitCount:  ranking.HitCount,
			Hits:      hits,
		})
	}

	writeEnvelope(w, buildEnvelope(r, total, page, results))
}
