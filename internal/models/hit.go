// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package models

import (
	"time"
)

// Hit is the database entity for a song. Every hit belongs to exactly
// one artist; the (ArtistID, Title) pair is unique. Deleting the owning
// artist deletes the hit.
type Hit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ArtistID  string    `json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HitInput is the write payload for creating or updating a hit.
// Title is trimmed before validation. ArtistID must reference an
// existing artist; on update it is optional and keeps the current
// owner when absent.
//
// Example:
//
//	{
//	  "title": "Bohemian Rhapsody",
//	  "artist_id": "0b7f3c2e-..."
//	}
type HitInput struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	ArtistID string `json:"artist_id" validate:"omitempty,uuid4"`
}

// HitSummary is the hit representation used in list responses.
// TitleURL is the absolute URL of the hit detail endpoint.
//
// Example:
//
//	{
//	  "id": "9d2a41c6-...",
//	  "title": "Bohemian Rhapsody",
//	  "title_url": "http://localhost:8080/api/v1/hits/9d2a41c6-.../",
//	  "artist": {"id": "...", "first_name": "Freddie", "last_name": "Mercury", "artist_url": "..."},
//	  "created_at": "2026-01-15T10:00:00Z"
//	}
type HitSummary struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	TitleURL  string        `json:"title_url"`
	Artist    ArtistSummary `json:"artist"`
	CreatedAt time.Time     `json:"created_at"`
}

// HitDetail is the full hit representation returned by the detail and
// create endpoints. The embedded artist uses the summary shape.
type HitDetail struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Artist    ArtistSummary `json:"artist"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// HitUpdateDetail is returned by hit updates. Unlike HitDetail it embeds
// the owning artist's full detail including timestamps.
type HitUpdateDetail struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Artist    ArtistDetail `json:"artist"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
