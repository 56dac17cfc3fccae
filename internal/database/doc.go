// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package database provides DuckDB-backed persistence for artists and
// hits, including filtered and paginated list queries and the
// hit-count ranking aggregation.
//
// Schema notes:
//
//   - Both tables use UUID string primary keys generated in Go.
//   - hits carries a UNIQUE(artist_id, title) constraint; violations
//     surface as ErrDuplicateHitTitle.
//   - There is no FOREIGN KEY from hits to artists: DuckDB rejects
//     updates to rows referenced by a foreign key, which would break
//     routine artist updates. Referential integrity is enforced in
//     code instead: hit writes verify the artist exists, and artist
//     deletion removes the artist's hits in the same transaction.
//
// Timestamps are assigned server-side in UTC, truncated to
// microseconds to match DuckDB's TIMESTAMP precision. created_at is
// immutable after insert; updated_at is bumped on every update.
//
// List queries validate ordering tokens against per-table allow-lists
// and always append an id tiebreak so pagination is stable. All query
// durations and errors feed the metrics package.
package database
