// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"errors"
	"net/http"

	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/models"
)

// API error codes. The two lowercase codes mirror the field-level error
// identifiers the original API contract exposes to clients.
const (
	codeInvalidRequest    = "INVALID_REQUEST"
	codeNotFound          = "NOT_FOUND"
	codeDatabaseError     = "DATABASE_ERROR"
	codeAuthentication    = "AUTHENTICATION_ERROR"
	codeArtistNotFound    = "artist_not_found"
	codeDuplicateHitTitle = "hit_with_given_title_already_exist_for_artist"
	codeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// respondLookupError maps store errors for detail, update, and delete
// operations: unknown IDs are 404, everything else is a store failure.
func respondLookupError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, database.ErrArtistNotFound), errors.Is(err, database.ErrHitNotFound):
		respondError(w, http.StatusNotFound, codeNotFound, resource+" not found", nil)
	default:
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "store operation failed", err)
	}
}

// respondHitWriteError maps store errors for hit create and update.
// A dangling artist reference and a duplicate title are client errors
// with field-scoped codes; the rest is a store failure.
func respondHitWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrArtistNotFound):
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    codeArtistNotFound,
			Message: "artist with given id does not exist",
			Details: map[string]interface{}{"field": "artist"},
		})
	case errors.Is(err, database.ErrDuplicateHitTitle):
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    codeDuplicateHitTitle,
			Message: "hit with given title already exists for this artist",
			Details: map[string]interface{}{"field": "hit"},
		})
	default:
		respondError(w, http.StatusInternalServerError, codeDatabaseError, "store operation failed", err)
	}
}
