// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/models"
)

// ListArtists handles GET /api/v1/artists/. Successful responses are
// cached by the cachedList decorator wrapping it in the router.
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	filter, page, apiErr := h.buildArtistFilter(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	artists, total, err := h.store.ListArtists(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "failed to list artists", err)
		return
	}

	results := make([]models.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		results = append(results, models.ArtistSummary{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			ArtistURL: artistURL(r, a.ID),
		})
	}

	writeEnvelope(w, buildEnvelope(r, total, page, results))
}

// CreateArtist handles POST /api/v1/artists/. Admin only.
func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var input models.ArtistInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", err)
		return
	}
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if apiErr := validateRequest(&input); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	artist, err := h.store.CreateArtist(r.Context(), input.FirstName, input.LastName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "failed to create artist", err)
		return
	}

	h.invalidateArtists()
	respondData(w, http.StatusCreated, artistDetail(artist), time.Since(start))
}

// GetArtist handles GET /api/v1/artists/{id}/. Detail reads bypass the
// list cache.
func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	artist, err := h.store.GetArtist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err, "artist")
		return
	}

	respondData(w, http.StatusOK, artistDetail(artist), time.Since(start))
}

// UpdateArtist handles PUT and PATCH /api/v1/artists/{id}/. PATCH keeps
// current values for absent fields; PUT requires the full payload but is
// processed identically after the overlay.
func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := h.store.GetArtist(r.Context(), id)
	if err != nil {
		respondLookupError(w, err, "artist")
		return
	}

	var patch struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", err)
		return
	}

	input := models.ArtistInput{
		FirstName: current.FirstName,
		LastName:  current.LastName,
	}
	if r.Method == http.MethodPut {
		input = models.ArtistInput{}
	}
	if patch.FirstName != nil {
		input.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		input.LastName = strings.TrimSpace(*patch.LastName)
	}

	if apiErr := validateRequest(&input); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	artist, err := h.store.UpdateArtist(r.Context(), id, input.FirstName, input.LastName)
	if err != nil {
		respondLookupError(w, err, "artist")
		return
	}

	h.invalidateArtists()
	respondData(w, http.StatusOK, artistDetail(artist), time.Since(start))
}

// DeleteArtist handles DELETE /api/v1/artists/{id}/. The store removes
// the artist's hits in the same transaction, so both entity caches are
// purged.
func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteArtist(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondLookupError(w, err, "artist")
		return
	}

	h.invalidateArtists()
	h.invalidateHits()
	w.WriteHeader(http.StatusNoContent)
}

// invalidateArtists purges the caches bound to artist state.
func (h *Handler) invalidateArtists() {
	if h.invalidator == nil {
		return
	}
	purged := h.invalidator.ArtistChanged()
	logging.Debug().Int("purged", purged).Msg("Artist caches invalidated")
}

// invalidateHits purges the caches bound to hit state.
func (h *Handler) invalidateHits() {
	if h.invalidator == nil {
		return
	}
	purged := h.invalidator.HitChanged()
	logging.Debug().Int("purged", purged).Msg("Hit caches invalidated")
}

func artistDetail(a *models.Artist) models.ArtistDetail {
	return models.ArtistDetail{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
