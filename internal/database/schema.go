// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package database

import (
	"fmt"
)

// initialize creates the schema if it does not exist.
//
// Referential integrity between hits and artists is enforced in code
// (creates verify the artist, deletes cascade transactionally) rather
// than with a FOREIGN KEY clause: DuckDB rejects updates to rows that
// are referenced by a foreign key, which would break touching an
// artist's updated_at while it owns hits.
func (db *DB) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artists (
			id         VARCHAR PRIMARY KEY,
			first_name VARCHAR NOT NULL,
			last_name  VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hits (
			id         VARCHAR PRIMARY KEY,
			title      VARCHAR NOT NULL,
			artist_id  VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (artist_id, title)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artists_name ON artists (first_name, last_name)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_artist_id ON hits (artist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_created_at ON hits (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_title ON hits (title)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}
