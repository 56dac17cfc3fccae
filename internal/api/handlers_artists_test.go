// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/models"
)

func doRequest(t *testing.T, env *testEnv, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Host = "localhost:8080"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decodeResponse(t, rec)
	if resp.Error == nil {
		t.Fatalf("expected error in response, got %s", rec.Body.String())
	}
	return resp.Error.Code
}

func TestListArtistsEnvelope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	env.store.addArtist("Freddie", "Mercury")
	env.store.addArtist("David", "Bowie")
	env.store.addArtist("Kate", "Bush")

	rec := doRequest(t, env, http.MethodGet, "/api/v1/artists/?page_size=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := decodeEnvelope(t, rec)
	if got.Count != 3 {
		t.Errorf("expected count 3, got %d", got.Count)
	}
	if len(got.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(got.Results))
	}
	if got.Next == nil {
		t.Fatal("expected next link")
	}
	if !strings.HasPrefix(*got.Next, "http://localhost:8080/api/v1/artists/?") ||
		!strings.Contains(*got.Next, "page=2") {
		t.Errorf("unexpected next link: %s", *got.Next)
	}
	if got.Previous != nil {
		t.Errorf("expected null previous on first page, got %s", *got.Previous)
	}

	var item models.ArtistSummary
	if err := json.Unmarshal(got.Results[0], &item); err != nil {
		t.Fatalf("failed to decode result item: %v", err)
	}
	if !strings.HasPrefix(item.ArtistURL, "http://localhost:8080/api/v1/artists/") {
		t.Errorf("expected absolute artist_url, got %s", item.ArtistURL)
	}
}

func TestListArtistsSecondPageLinks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	for i := 0; i < 5; i++ {
		env.store.addArtist("Artist", string(rune('A'+i)))
	}

	rec := doRequest(t, env, http.MethodGet, "/api/v1/artists/?page_size=2&page=2", "")
	got := decodeEnvelope(t, rec)

	if got.Next == nil || !strings.Contains(*got.Next, "page=3") {
		t.Errorf("expected next pointing at page 3, got %v", got.Next)
	}
	// Previous of page 2 is page 1, which drops the page parameter.
	if got.Previous == nil {
		t.Fatal("expected previous link on second page")
	}
	if strings.Contains(*got.Previous, "page=") {
		t.Errorf("previous link to page 1 must drop the page parameter: %s", *got.Previous)
	}
}

func TestListArtistsRejectsBadParams(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown ordering field", "/api/v1/artists/?ordering=evil"},
		{"non-numeric page", "/api/v1/artists/?page=abc"},
		{"zero page", "/api/v1/artists/?page=0"},
		{"negative page_size", "/api/v1/artists/?page_size=-1"},
		{"bad created_at_after", "/api/v1/artists/?created_at_after=not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doRequest(t, env, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if code := errorCode(t, rec); code != "INVALID_REQUEST" {
				t.Errorf("expected INVALID_REQUEST, got %s", code)
			}
		})
	}
}

func TestCreateArtist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	before := time.Now().UTC()
	rec := doRequest(t, env, http.MethodPost, "/api/v1/artists/",
		`{"first_name": "Patti", "last_name": "Smith"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if resp.Status != "success" {
		t.Errorf("expected success status, got %s", resp.Status)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data failed: %v", err)
	}
	var detail models.ArtistDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode artist detail: %v", err)
	}
	if detail.ID == "" {
		t.Error("expected generated ID")
	}
	if detail.FirstName != "Patti" || detail.LastName != "Smith" {
		t.Errorf("unexpected artist: %+v", detail)
	}
	if detail.CreatedAt.Before(before.Add(-time.Second)) {
		t.Errorf("created_at not server-assigned: %s", detail.CreatedAt)
	}
}

func TestCreateArtistValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing last_name", `{"first_name": "Patti"}`, "VALIDATION_ERROR"},
		{"blank first_name", `{"first_name": "   ", "last_name": "Smith"}`, "VALIDATION_ERROR"},
		{"malformed JSON", `{"first_name": `, "INVALID_REQUEST"},
		{"name too long", `{"first_name": "` + strings.Repeat("x", 256) + `", "last_name": "Smith"}`, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doRequest(t, env, http.MethodPost, "/api/v1/artists/", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, code)
			}
		})
	}
}

func TestCreateArtistIgnoresClientTimestamps(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	rec := doRequest(t, env, http.MethodPost, "/api/v1/artists/",
		`{"first_name": "Nick", "last_name": "Cave", "created_at": "1999-01-01T00:00:00Z", "id": "forged"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var detail models.ArtistDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if detail.ID == "forged" {
		t.Error("client-supplied id must be ignored")
	}
	if detail.CreatedAt.Year() == 1999 {
		t.Error("client-supplied created_at must be ignored")
	}
}

func TestGetArtistNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)

	rec := doRequest(t, env, http.MethodGet, "/api/v1/artists/7c9e6679-7425-40de-944b-e07fc1f90ae7/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestPatchArtistPartial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Dave", "Bowie")

	rec := doRequest(t, env, http.MethodPatch, "/api/v1/artists/"+artist.ID+"/",
		`{"first_name": "David"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var detail models.ArtistDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if detail.FirstName != "David" {
		t.Errorf("expected updated first name, got %s", detail.FirstName)
	}
	if detail.LastName != "Bowie" {
		t.Errorf("PATCH must keep absent fields, got last_name %s", detail.LastName)
	}
}

func TestPutArtistRequiresAllFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Kate", "Bush")

	rec := doRequest(t, env, http.MethodPut, "/api/v1/artists/"+artist.ID+"/",
		`{"first_name": "Cathy"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partial PUT, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}
}

func TestDeleteArtist(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, auth.AuthModeNone)
	artist := env.store.addArtist("Patti", "Smith")

	rec := doRequest(t, env, http.MethodDelete, "/api/v1/artists/"+artist.ID+"/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}

	rec = doRequest(t, env, http.MethodGet, "/api/v1/artists/"+artist.ID+"/", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}
