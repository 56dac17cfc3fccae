// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package models

import (
	"time"
)

// APIResponse is the standardized envelope for error responses and
// non-list successes that carry metadata. Successful list responses are
// emitted as a bare ListEnvelope so cached payloads replay byte-for-byte.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "first_name is required",
//	    "details": {"field": "first_name"}
//	  },
//	  "metadata": {"timestamp": "2026-01-15T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when the response was generated (RFC3339)
//   - QueryTimeMS: Database query execution time in milliseconds (0 if cached)
//   - Cached: Whether the response was served from cache (omitted if false)
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - INVALID_REQUEST: Malformed body or query parameter
//   - VALIDATION_ERROR: Field validation failure
//   - artist_not_found: Hit payload references an unknown artist
//   - hit_with_given_title_already_exist_for_artist: Duplicate (artist, title)
//   - NOT_FOUND: Resource doesn't exist
//   - AUTHENTICATION_ERROR: Missing or invalid credentials
//   - AUTHORIZATION_ERROR: Authenticated but not an admin
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - DATABASE_ERROR: Store failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ListEnvelope wraps paginated list results. Count is the total number
// of matches across all pages; Next and Previous are absolute request
// URLs with the page parameter adjusted, null at the edges.
//
// Example:
//
//	{
//	  "count": 42,
//	  "next": "http://localhost:8080/api/v1/hits/?page=3",
//	  "previous": "http://localhost:8080/api/v1/hits/",
//	  "results": [...]
//	}
type ListEnvelope struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// LoginRequest is the payload for JWT authentication.
//
// Security:
//   - Password is transmitted in plaintext (HTTPS required)
//   - Compared against the configured admin credential via bcrypt
//   - Rate limited per IP
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
//
// Token usage:
//   - Sent as Authorization: Bearer <token> header
//   - Validated on every protected endpoint
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}
