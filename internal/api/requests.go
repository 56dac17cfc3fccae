// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/models"
)

// pagination holds the resolved page parameters of a list request.
type pagination struct {
	Page     int
	PageSize int
}

func (p pagination) limit() int  { return p.PageSize }
func (p pagination) offset() int { return (p.Page - 1) * p.PageSize }

// artistOrderingTokens is the ordering allow-list for the artist list.
var artistOrderingTokens = map[string]bool{
	"first_name": true,
	"last_name":  true,
}

// hitOrderingTokens is the ordering allow-list for the hit list.
var hitOrderingTokens = map[string]bool{
	"created_at":         true,
	"title":              true,
	"artist__first_name": true,
	"artist__last_name":  true,
}

// parsePagination resolves page and page_size against configured bounds.
// Non-numeric or out-of-range values are a client error, not a silent
// fallback.
func (h *Handler) parsePagination(r *http.Request) (pagination, *models.APIError) {
	p := pagination{Page: 1, PageSize: h.cfg.API.DefaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, &models.APIError{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("invalid page parameter: %q", raw),
			}
		}
		p.Page = page
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return p, &models.APIError{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("invalid page_size parameter: %q", raw),
			}
		}
		if size > h.cfg.API.MaxPageSize {
			size = h.cfg.API.MaxPageSize
		}
		p.PageSize = size
	}

	return p, nil
}

// parseOrdering splits a comma-separated ordering parameter and checks
// every token (sans "-" prefix) against the allow-list. Unknown tokens
// are a client error.
func parseOrdering(r *http.Request, allowed map[string]bool) ([]string, *models.APIError) {
	raw := r.URL.Query().Get("ordering")
	if raw == "" {
		return nil, nil
	}

	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if !allowed[strings.TrimPrefix(token, "-")] {
			return nil, &models.APIError{
				Code:    "INVALID_REQUEST",
				Message: fmt.Sprintf("unknown ordering field: %q", token),
			}
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// parseTimeParam parses an optional RFC3339 or date-only query value.
func parseTimeParam(r *http.Request, key string) (*time.Time, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &models.APIError{
		Code:    "INVALID_REQUEST",
		Message: fmt.Sprintf("invalid %s: %q, expected RFC3339 or YYYY-MM-DD", key, raw),
	}
}

// buildArtistFilter assembles the store filter for the artist list.
func (h *Handler) buildArtistFilter(r *http.Request) (database.ArtistFilter, pagination, *models.APIError) {
	var f database.ArtistFilter

	p, apiErr := h.parsePagination(r)
	if apiErr != nil {
		return f, p, apiErr
	}

	ordering, apiErr := parseOrdering(r, artistOrderingTokens)
	if apiErr != nil {
		return f, p, apiErr
	}

	after, apiErr := parseTimeParam(r, "created_at_after")
	if apiErr != nil {
		return f, p, apiErr
	}
	before, apiErr := parseTimeParam(r, "created_at_before")
	if apiErr != nil {
		return f, p, apiErr
	}

	q := r.URL.Query()
	f = database.ArtistFilter{
		FirstName:     q.Get("first_name"),
		LastName:      q.Get("last_name"),
		CreatedAfter:  after,
		CreatedBefore: before,
		Ordering:      ordering,
		Limit:         p.limit(),
		Offset:        p.offset(),
	}
	return f, p, nil
}

// buildHitFilter assembles the store filter for the hit list.
func (h *Handler) buildHitFilter(r *http.Request) (database.HitFilter, pagination, *models.APIError) {
	var f database.HitFilter

	p, apiErr := h.parsePagination(r)
	if apiErr != nil {
		return f, p, apiErr
	}

	ordering, apiErr := parseOrdering(r, hitOrderingTokens)
	if apiErr != nil {
		return f, p, apiErr
	}

	after, apiErr := parseTimeParam(r, "created_at_after")
	if apiErr != nil {
		return f, p, apiErr
	}
	before, apiErr := parseTimeParam(r, "created_at_before")
	if apiErr != nil {
		return f, p, apiErr
	}

	q := r.URL.Query()
	f = database.HitFilter{
		Title:          q.Get("title"),
		ArtistName:     q.Get("artist_name"),
		ArtistLastName: q.Get("artist_last_name"),
		CreatedAfter:   after,
		CreatedBefore:  before,
		Ordering:       ordering,
		Limit:          p.limit(),
		Offset:         p.offset(),
	}
	return f, p, nil
}

// buildEnvelope wraps one result page in the list envelope. Next and
// previous are absolute request URLs with the page parameter adjusted;
// the parameter is dropped entirely when it would be 1, and both links
// are null at their respective edges.
func buildEnvelope(r *http.Request, count int, p pagination, results interface{}) *models.ListEnvelope {
	envelope := &models.ListEnvelope{
		Count:   count,
		Results: results,
	}

	if p.offset()+p.PageSize < count {
		next := pageURL(r, p.Page+1)
		envelope.Next = &next
	}
	if p.Page > 1 {
		previous := pageURL(r, p.Page-1)
		envelope.Previous = &previous
	}
	return envelope
}

// pageURL rebuilds the request URL pointing at the given page.
func pageURL(r *http.Request, page int) string {
	u := *r.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return baseURL(r) + u.Path + pathQuery(u.RawQuery)
}

func pathQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	return "?" + rawQuery
}
