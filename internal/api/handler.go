// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"context"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/cache"
	"github.com/pmilosz/hitparade/internal/config"
	"github.com/pmilosz/hitparade/internal/database"
	"github.com/pmilosz/hitparade/internal/models"
)

// Store is the persistence interface consumed by the handlers.
// *database.DB is the production implementation; tests substitute an
// in-memory fake.
type Store interface {
	CreateArtist(ctx context.Context, firstName, lastName string) (*models.Artist, error)
	GetArtist(ctx context.Context, id string) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id, firstName, lastName string) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	ListArtists(ctx context.Context, f database.ArtistFilter) ([]models.Artist, int, error)

	CreateHit(ctx context.Context, title, artistID string) (*database.HitRow, error)
	GetHit(ctx context.Context, id string) (*database.HitRow, error)
	UpdateHit(ctx context.Context, id, title, artistID string) (*database.HitRow, error)
	DeleteHit(ctx context.Context, id string) error
	ListHits(ctx context.Context, f database.HitFilter) ([]database.HitRow, int, error)

	ArtistsByHitCount(ctx context.Context, limit, offset int) ([]database.ArtistRanking, int, error)

	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	store        Store
	cache        *cache.ListCache
	invalidator  *cache.Invalidator
	jwtManager   *auth.JWTManager
	credentials  *auth.CredentialStore
	loginLimiter *auth.LoginLimiter
	cfg          *config.Config
}

// NewHandler wires the handler dependencies. jwtManager and credentials
// may be nil when auth mode is "none"; cache may be nil to disable
// response caching entirely.
func NewHandler(store Store, listCache *cache.ListCache, invalidator *cache.Invalidator,
	jwtManager *auth.JWTManager, credentials *auth.CredentialStore,
	loginLimiter *auth.LoginLimiter, cfg *config.Config) *Handler {
	return &Handler{
		store:        store,
		cache:        listCache,
		invalidator:  invalidator,
		jwtManager:   jwtManager,
		credentials:  credentials,
		loginLimiter: loginLimiter,
		cfg:          cfg,
	}
}
