// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/cache"
	"github.com/pmilosz/hitparade/internal/config"
	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/models"
)

// fakeStore is an in-memory Store for handler tests. It preserves
// insertion order for lists and implements the ranking ordering exactly.
type fakeStore struct {
	mu      sync.Mutex
	artists []models.Artist
	hits    []models.Hit
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) addArtist(firstName, lastName string) models.Artist {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := models.Artist{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.artists = append(s.artists, a)
	return a
}

func (s *fakeStore) addHit(title, artistID string) models.Hit {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	h := models.Hit{
		ID:        uuid.New().String(),
		Title:     title,
		ArtistID:  artistID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.hits = append(s.hits, h)
	return h
}

func (s *fakeStore) CreateArtist(_ context.Context, firstName, lastName string) (*models.Artist, error) {
	if s.failAll {
		return nil, errStoreDown
	}
	a := s.addArtist(firstName, lastName)
	return &a, nil
}

func (s *fakeStore) GetArtist(_ context.Context, id string) (*models.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.artists {
		if s.artists[i].ID == id {
			a := s.artists[i]
			return &a, nil
		}
	}
	return nil, database.ErrArtistNotFound
}

func (s *fakeStore) UpdateArtist(_ context.Context, id, firstName, lastName string) (*models.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.artists {
		if s.artists[i].ID == id {
			s.artists[i].FirstName = firstName
			s.artists[i].LastName = lastName
			s.artists[i].UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
			a := s.artists[i]
			return &a, nil
		}
	}
	return nil, database.ErrArtistNotFound
}

func (s *fakeStore) DeleteArtist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.artists {
		if s.artists[i].ID == id {
			s.artists = append(s.artists[:i], s.artists[i+1:]...)
			kept := s.hits[:0]
			for _, h := range s.hits {
				if h.ArtistID != id {
					kept = append(kept, h)
				}
			}
			s.hits = kept
			return nil
		}
	}
	return database.ErrArtistNotFound
}

func (s *fakeStore) ListArtists(_ context.Context, f database.ArtistFilter) ([]models.Artist, int, error) {
	if s.failAll {
		return nil, 0, errStoreDown
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Artist, len(s.artists))
	copy(all, s.artists)
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (s *fakeStore) CreateHit(_ context.Context, title, artistID string) (*database.HitRow, error) {
	s.mu.Lock()
	owner, ok := s.findArtistLocked(artistID)
	if !ok {
		s.mu.Unlock()
		return nil, database.ErrArtistNotFound
	}
	for _, h := range s.hits {
		if h.ArtistID == artistID && h.Title == title {
			s.mu.Unlock()
			return nil, database.ErrDuplicateHitTitle
		}
	}
	s.mu.Unlock()

	h := s.addHit(title, artistID)
	return &database.HitRow{Hit: h, Artist: owner}, nil
}

func (s *fakeStore) GetHit(_ context.Context, id string) (*database.HitRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.hits {
		if h.ID == id {
			owner, _ := s.findArtistLocked(h.ArtistID)
			return &database.HitRow{Hit: h, Artist: owner}, nil
		}
	}
	return nil, database.ErrHitNotFound
}

func (s *fakeStore) UpdateHit(_ context.Context, id, title, artistID string) (*database.HitRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.findArtistLocked(artistID)
	if !ok {
		return nil, database.ErrArtistNotFound
	}
	for _, h := range s.hits {
		if h.ID != id && h.ArtistID == artistID && h.Title == title {
			return nil, database.ErrDuplicateHitTitle
		}
	}
	for i := range s.hits {
		if s.hits[i].ID == id {
			s.hits[i].Title = title
			s.hits[i].ArtistID = artistID
			s.hits[i].UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
			return &database.HitRow{Hit: s.hits[i], Artist: owner}, nil
		}
	}
	return nil, database.ErrHitNotFound
}

func (s *fakeStore) DeleteHit(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.hits {
		if s.hits[i].ID == id {
			s.hits = append(s.hits[:i], s.hits[i+1:]...)
			return nil
		}
	}
	return database.ErrHitNotFound
}

func (s *fakeStore) ListHits(_ context.Context, f database.HitFilter) ([]database.HitRow, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]database.HitRow, 0, len(s.hits))
	for _, h := range s.hits {
		owner, _ := s.findArtistLocked(h.ArtistID)
		rows = append(rows, database.HitRow{Hit: h, Artist: owner})
	}
	return page(rows, f.Limit, f.Offset), len(rows), nil
}

func (s *fakeStore) ArtistsByHitCount(_ context.Context, limit, offset int) ([]database.ArtistRanking, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rankings := make([]database.ArtistRanking, 0, len(s.artists))
	for _, a := range s.artists {
		ranking := database.ArtistRanking{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Hits:      []models.Hit{},
		}
		for _, h := range s.hits {
			if h.ArtistID == a.ID {
				ranking.Hits = append(ranking.Hits, h)
				ranking.HitCount++
			}
		}
		rankings = append(rankings, ranking)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].HitCount != rankings[j].HitCount {
			return rankings[i].HitCount > rankings[j].HitCount
		}
		if rankings[i].LastName != rankings[j].LastName {
			return rankings[i].LastName < rankings[j].LastName
		}
		return rankings[i].FirstName < rankings[j].FirstName
	})

	return page(rankings, limit, offset), len(rankings), nil
}

func (s *fakeStore) Ping(context.Context) error {
	if s.failAll {
		return errStoreDown
	}
	return nil
}

func (s *fakeStore) findArtistLocked(id string) (models.Artist, bool) {
	for _, a := range s.artists {
		if a.ID == id {
			return a, true
		}
	}
	return models.Artist{}, false
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var errStoreDown = errTest("store down")

type errTest string

func (e errTest) Error() string { return string(e) }

// testEnv bundles everything a handler test needs.
type testEnv struct {
	store   *fakeStore
	cache   *cache.ListCache
	handler http.Handler
}

// newTestEnv builds a router over the fake store. authMode selects
// whether write routes require a token.
func newTestEnv(t *testing.T, authMode string) *testEnv {
	t.Helper()

	cfg := &config.Config{
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			AuthMode:          authMode,
			JWTSecret:         "test-secret-that-is-at-least-32-chars-long",
			SessionTimeout:    time.Hour,
			AdminUsername:     "admin",
			AdminPassword:     "hunter2hunter2",
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
	}

	store := newFakeStore()
	listCache := cache.New(5*time.Minute, 1000)
	invalidator := cache.NewInvalidator(listCache)

	var jwtManager *auth.JWTManager
	var credentials *auth.CredentialStore
	if authMode == auth.AuthModeJWT {
		var err error
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			t.Fatalf("NewJWTManager failed: %v", err)
		}
		credentials, err = auth.NewCredentialStore(&cfg.Security)
		if err != nil {
			t.Fatalf("NewCredentialStore failed: %v", err)
		}
	}

	handler := NewHandler(store, listCache, invalidator, jwtManager, credentials,
		auth.NewLoginLimiter(100, time.Minute), cfg)
	router := NewRouter(handler, auth.NewMiddleware(jwtManager, authMode))

	return &testEnv{
		store:   store,
		cache:   listCache,
		handler: router.Setup(),
	}
}
