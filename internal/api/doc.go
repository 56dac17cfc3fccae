// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package api implements the HTTP surface: chi routing, request
// parsing, the list-response cache decorator, and the JSON envelopes.
//
// Response contract:
//
//   - Successful list GETs return the bare {count, next, previous,
//     results} envelope. These are the responses the cache stores and
//     replays byte-for-byte, marked with X-Cache: HIT.
//   - Detail reads, creates, and updates return the APIResponse success
//     envelope with the resource under data.
//   - Deletes return 204 with no body.
//   - All errors use the APIResponse error envelope with a stable code.
//
// Reads are public. Every write route is wrapped in the admin JWT
// middleware and synchronously purges the affected cache views before
// its response is written: artist mutations purge the artist list and
// the by-artist ranking, hit mutations purge the hit list and the
// ranking, and artist deletion purges all three because it cascades to
// the artist's hits.
package api
