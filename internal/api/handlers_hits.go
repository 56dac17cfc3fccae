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

	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/models"
)

// ListHits handles GET /api/v1/hits/. Cached by the router decorator.
func (h *Handler) ListHits(w http.ResponseWriter, r *http.Request) {
	filter, page, apiErr := h.buildHitFilter(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	rows, total, err := h.store.ListHits(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "failed to list hits", err)
		return
	}

	results := make([]models.HitSummary, 0, len(rows))
	for _, row := range rows {
		results = append(results, hitSummary(r, &row))
	}

	writeEnvelope(w, buildEnvelope(r, total, page, results))
}

// CreateHit handles POST /api/v1/hits/. Admin only. Unlike update,
// artist_id is mandatory here.
func (h *Handler) CreateHit(w http.ResponseWriter, r *http.Request) {
	var input models.HitInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", err)
		return
	}
	input.Title = strings.TrimSpace(input.Title)

	if input.ArtistID == "" {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "artist_id is required",
			Details: map[string]interface{}{"field": "artist_id"},
		})
		return
	}
	if apiErr := validateRequest(&input); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	row, err := h.store.CreateHit(r.Context(), input.Title, input.ArtistID)
	if err != nil {
		respondHitWriteError(w, err)
		return
	}

	h.invalidateHits()
	respondData(w, http.StatusCreated, hitDetail(r, row), time.Since(start))
}

// GetHit handles GET /api/v1/hits/{id}/.
func (h *Handler) GetHit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	row, err := h.store.GetHit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, err, "hit")
		return
	}

	respondData(w, http.StatusOK, hitDetail(r, row), time.Since(start))
}

// UpdateHit handles PUT and PATCH /api/v1/hits/{id}/. An absent
// artist_id keeps the current owner. The response embeds the owning
// artist's full detail.
func (h *Handler) UpdateHit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := h.store.GetHit(r.Context(), id)
	if err != nil {
		respondLookupError(w, err, "hit")
		return
	}

	var patch struct {
		Title    *string `json:"title"`
		ArtistID *string `json:"artist_id"`
	}
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", err)
		return
	}

	input := models.HitInput{
		Title:    current.Hit.Title,
		ArtistID: current.Hit.ArtistID,
	}
	if r.Method == http.MethodPut {
		input = models.HitInput{ArtistID: current.Hit.ArtistID}
	}
	if patch.Title != nil {
		input.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.ArtistID != nil && *patch.ArtistID != "" {
		input.ArtistID = *patch.ArtistID
	}

	if apiErr := validateRequest(&input); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	row, err := h.store.UpdateHit(r.Context(), id, input.Title, input.ArtistID)
	if err != nil {
		respondHitWriteError(w, err)
		return
	}

	h.invalidateHits()
	respondData(w, http.StatusOK, hitUpdateDetail(row), time.Since(start))
}

// DeleteHit handles DELETE /api/v1/hits/{id}/. Admin only.
func (h *Handler) DeleteHit(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteHit(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondLookupError(w, err, "hit")
		return
	}

	h.invalidateHits()
	w.WriteHeader(http.StatusNoContent)
}

func hitSummary(r *http.Request, row *database.HitRow) models.HitSummary {
	return models.HitSummary{
		ID:       row.Hit.ID,
		Title:    row.Hit.Title,
		TitleURL: hitURL(r, row.Hit.ID),
		Artist: models.ArtistSummary{
			ID:        row.Artist.ID,
			FirstName: row.Artist.FirstName,
			LastName:  row.Artist.LastName,
			ArtistURL: artistURL(r, row.Artist.ID),
		},
		CreatedAt: row.Hit.CreatedAt,
	}
}

func hitDetail(r *http.Request, row *database.HitRow) models.HitDetail {
	return models.HitDetail{
		ID:    row.Hit.ID,
		Title: row.Hit.Title,
		Artist: models.ArtistSummary{
			ID:        row.Artist.ID,
			FirstName: row.Artist.FirstName,
			LastName:  row.Artist.LastName,
			ArtistURL: artistURL(r, row.Artist.ID),
		},
		CreatedAt: row.Hit.CreatedAt,
		UpdatedAt: row.Hit.UpdatedAt,
	}
}

func hitUpdateDetail(row *database.HitRow) models.HitUpdateDetail {
	return models.HitUpdateDetail{
		ID:    row.Hit.ID,
		Title: row.Hit.Title,
		Artist: models.ArtistDetail{
			ID:        row.Artist.ID,
			FirstName: row.Artist.FirstName,
			LastName:  row.Artist.LastName,
			CreatedAt: row.Artist.CreatedAt,
			UpdatedAt: row.Artist.UpdatedAt,
		},
		CreatedAt: row.Hit.CreatedAt,
		UpdatedAt: row.Hit.UpdatedAt,
	}
}
