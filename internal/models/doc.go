// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

/*
Package models defines data structures for the Hitparade application.

This package contains all data models used throughout the application:
database entities, API request/response structures, and the shared error
envelope. It serves as the single source of truth for data structure
definitions.

Key Components:

  - Artist, Hit: Core database entities
  - ArtistInput, HitInput: Validated write-request payloads
  - ListEnvelope: Paginated list response (count/next/previous/results)
  - ArtistHits: Aggregated ranking entry for the by-artist endpoint
  - APIResponse / APIError: Standardized error envelope

Model Categories:

 1. Database Entities:
    - Artist: Performer identified by first and last name
    - Hit: Song title owned by exactly one artist

 2. API Request Models:
    - ArtistInput: Create/update payload for artists
    - HitInput: Create/update payload for hits

 3. API Response Models:
    - ArtistSummary, ArtistDetail: Artist representations
    - HitSummary, HitDetail: Hit representations with embedded artist
    - ArtistHits: Ranking entry with hit_count and nested hits
    - ListEnvelope: Pagination wrapper
    - APIResponse, APIError, Metadata: Error envelope

Thread Safety:

All models are plain data structures with no internal synchronization.
They are safe for concurrent read access after construction.

JSON Marshaling:

All models use snake_case struct tags matching the wire format.
Timestamps serialize as RFC3339 via time.Time.

See Also:

  - internal/database: Database operations using these models
  - internal/api: API handlers returning these models
*/
package models
