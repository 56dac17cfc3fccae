// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package models

import (
	"time"
)

// Artist is the database entity for a performer.
// Identity is a UUIDv4 string assigned by the store on creation.
// Timestamps are server-owned: CreatedAt is set once, UpdatedAt on every
// mutation. Client-supplied values for either are ignored.
type Artist struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistInput is the write payload for creating or updating an artist.
// Names are trimmed before validation; both must be 1-255 characters.
//
// Example:
//
//	{
//	  "first_name": "Freddie",
//	  "last_name": "Mercury"
//	}
type ArtistInput struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
}

// ArtistSummary is the artist representation embedded in list items and
// hit payloads. ArtistURL is the absolute URL of the artist detail
// endpoint, built from the incoming request host.
//
// Example:
//
//	{
//	  "id": "0b7f3c2e-...",
//	  "first_name": "Freddie",
//	  "last_name": "Mercury",
//	  "artist_url": "http://localhost:8080/api/v1/artists/0b7f3c2e-.../"
//	}
type ArtistSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ArtistURL string `json:"artist_url"`
}

// ArtistDetail is the full artist representation returned by the detail,
// create and update endpoints.
type ArtistDetail struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistHits is one entry of the artists-by-hit-count ranking.
// HitCount is the number of hits owned by the artist; artists with zero
// hits appear with an empty (never null) Hits slice. Ordering of the
// ranking is hit_count descending, then last_name, then first_name.
//
// Example:
//
//	{
//	  "id": "0b7f3c2e-...",
//	  "first_name": "Freddie",
//	  "last_name": "Mercury",
//	  "hit_count": 2,
//	  "hits": [
//	    {"id": "...", "title": "Somebody to Love", "title_url": "...", "created_at": "..."}
//	  ]
//	}
type ArtistHits struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	HitCount  int         `json:"hit_count"`
	Hits      []RankedHit `json:"hits"`
}

// RankedHit is the compact hit representation nested inside ArtistHits.
type RankedHit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	TitleURL  string    `json:"title_url"`
	CreatedAt time.Time `json:"created_at"`
}
