// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/models"
)

func TestCreateHit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Freddie", "Mercury")

	rec := doRequest(t, env, http.MethodPost, "/api/v1/hits/",
		`{"title": "Bohemian Rhapsody", "artist_id": "`+artist.ID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var detail models.HitDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode hit detail: %v", err)
	}
	if detail.Title != "Bohemian Rhapsody" {
		t.Errorf("unexpected title: %s", detail.Title)
	}
	if detail.Artist.ID != artist.ID || detail.Artist.FirstName != "Freddie" {
		t.Errorf("unexpected embedded artist: %+v", detail.Artist)
	}
	if !strings.HasPrefix(detail.Artist.ArtistURL, "http://localhost:8080/api/v1/artists/") {
		t.Errorf("expected absolute artist_url, got %s", detail.Artist.ArtistURL)
	}
}

func TestCreateHitErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Freddie", "Mercury")
	env.store.addHit("Bohemian Rhapsody", artist.ID)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			"unknown artist",
			`{"title": "Song", "artist_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7"}`,
			http.StatusBadRequest,
			"artist_not_found",
		},
		{
			"duplicate title for artist",
			`{"title": "Bohemian Rhapsody", "artist_id": "` + artist.ID + `"}`,
			http.StatusBadRequest,
			"hit_with_given_title_already_exist_for_artist",
		},
		{
			"missing artist_id",
			`{"title": "Song"}`,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
		},
		{
			"artist_id not a uuid",
			`{"title": "Song", "artist_id": "nope"}`,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
		},
		{
			"missing title",
			`{"artist_id": "` + artist.ID + `"}`,
			http.StatusBadRequest,
			"VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doRequest(t, env, http.MethodPost, "/api/v1/hits/", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, code)
			}
		})
	}
}

func TestSameTitleAllowedForDifferentArtists(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	first := env.store.addArtist("Freddie", "Mercury")
	second := env.store.addArtist("Cover", "Band")
	env.store.addHit("Bohemian Rhapsody", first.ID)

	rec := doRequest(t, env, http.MethodPost, "/api/v1/hits/",
		`{"title": "Bohemian Rhapsody", "artist_id": "`+second.ID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("same title under different artist must succeed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListHits(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Kate", "Bush")
	env.store.addHit("Running Up That Hill", artist.ID)
	env.store.addHit("Wuthering Heights", artist.ID)

	rec := doRequest(t, env, http.MethodGet, "/api/v1/hits/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got := decodeEnvelope(t, rec)
	if got.Count != 2 {
		t.Errorf("expected count 2, got %d", got.Count)
	}

	var item models.HitSummary
	if err := json.Unmarshal(got.Results[0], &item); err != nil {
		t.Fatalf("failed to decode hit summary: %v", err)
	}
	if item.Artist.LastName != "Bush" {
		t.Errorf("expected embedded artist, got %+v", item.Artist)
	}
	if !strings.HasPrefix(item.TitleURL, "http://localhost:8080/api/v1/hits/") {
		t.Errorf("expected absolute title_url, got %s", item.TitleURL)
	}
}

func TestListHitsRejectsUnknownOrdering(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	rec := doRequest(t, env, http.MethodGet, "/api/v1/hits/?ordering=artist__secret", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Relation-style tokens from the allow-list pass.
	rec = doRequest(t, env, http.MethodGet, "/api/v1/hits/?ordering=-artist__last_name,title", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for valid ordering, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateHitEmbedsArtistDetail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Freddie", "Mercury")
	hit := env.store.addHit("Bohemian Rapsody", artist.ID)

	rec := doRequest(t, env, http.MethodPatch, "/api/v1/hits/"+hit.ID+"/",
		`{"title": "Bohemian Rhapsody"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var detail models.HitUpdateDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode update detail: %v", err)
	}
	if detail.Title != "Bohemian Rhapsody" {
		t.Errorf("title not updated: %s", detail.Title)
	}
	// Update responses embed the owning artist's full detail.
	if detail.Artist.ID != artist.ID {
		t.Errorf("unexpected artist: %+v", detail.Artist)
	}
	if detail.Artist.CreatedAt.IsZero() || detail.Artist.UpdatedAt.IsZero() {
		t.Error("embedded artist detail must carry timestamps")
	}
}

func TestUpdateHitKeepsOwnerWhenArtistAbsent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Nick", "Cave")
	hit := env.store.addHit("Into My Arms", artist.ID)

	rec := doRequest(t, env, http.MethodPut, "/api/v1/hits/"+hit.ID+"/",
		`{"title": "The Mercy Seat"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var detail models.HitUpdateDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode update detail: %v", err)
	}
	if detail.Artist.ID != artist.ID {
		t.Errorf("owner must be kept when artist_id absent, got %s", detail.Artist.ID)
	}
}

func TestDeleteHit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Kate", "Bush")
	hit := env.store.addHit("Running Up That Hill", artist.ID)

	rec := doRequest(t, env, http.MethodDelete, "/api/v1/hits/"+hit.ID+"/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(t, env, http.MethodDelete, "/api/v1/hits/"+hit.ID+"/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", rec.Code)
	}
}

func TestArtistsByHitsRanking(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	freddie := env.store.addArtist("Freddie", "Mercury")
	kate := env.store.addArtist("Kate", "Bush")
	env.store.addArtist("Patti", "Smith")
	env.store.addHit("Bohemian Rhapsody", freddie.ID)
	env.store.addHit("Somebody to Love", freddie.ID)
	env.store.addHit("Running Up That Hill", kate.ID)

	rec := doRequest(t, env, http.MethodGet, "/api/v1/hits/by-artist/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decodeEnvelope(t, rec)
	if got.Count != 3 {
		t.Errorf("count must include zero-hit artists, got %d", got.Count)
	}

	var items []models.ArtistHits
	for _, raw := range got.Results {
		var item models.ArtistHits
		if err := json.Unmarshal(raw, &item); err != nil {
			t.Fatalf("failed to decode ranking item: %v", err)
		}
		items = append(items, item)
	}

	if items[0].LastName != "Mercury" || items[0].HitCount != 2 {
		t.Errorf("expected Mercury(2) first, got %s(%d)", items[0].LastName, items[0].HitCount)
	}
	if items[1].LastName != "Bush" {
		t.Errorf("expected Bush second, got %s", items[1].LastName)
	}

	// Zero-hit artist appears with an empty, non-null hits array.
	last := items[2]
	if last.LastName != "Smith" || last.HitCount != 0 {
		t.Errorf("expected Smith(0) last, got %s(%d)", last.LastName, last.HitCount)
	}
	if last.Hits == nil {
		t.Error("hits must be an empty array, not null")
	}
	if !strings.Contains(rec.Body.String(), `"hits":[]`) {
		t.Error("expected literal empty hits array in payload")
	}
}
