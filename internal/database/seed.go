// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package database

import (
	"context"
	"fmt"

	"github.com/pmilosz/hitparade/internal/logging"
)

// demoArtists is the demo fixture loaded by SeedDemoData.
var demoArtists = []struct {
	firstName string
	lastName  string
	hits      []string
}{
	{"Freddie", "Mercury", []string{"Bohemian Rhapsody", "Somebody to Love"}},
	{"David", "Bowie", []string{"Heroes", "Life on Mars?", "Space Oddity"}},
	{"Kate", "Bush", []string{"Running Up That Hill"}},
	{"Nick", "Cave", []string{"Into My Arms", "Red Right Hand"}},
	{"Patti", "Smith", nil},
}

// SeedDemoData loads a small demo fixture when the store is empty.
// No-op if any artist already exists, so restarting a seeded instance
// never duplicates data.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if count > 0 {
		logging.Debug().Int("artists", count).Msg("Store not empty, skipping demo seed")
		return nil
	}

	seededArtists := 0
	seededHits := 0
	for _, da := range demoArtists {
		artist, err := db.CreateArtist(ctx, da.firstName, da.lastName)
		if err != nil {
			return fmt.Errorf("failed to seed artist %s %s: %w", da.firstName, da.lastName, err)
		}
		seededArtists++

		for _, title := range da.hits {
			if _, err := db.CreateHit(ctx, title, artist.ID); err != nil {
				return fmt.Errorf("failed to seed hit %q: %w", title, err)
			}
			seededHits++
		}
	}

	logging.Info().
		Int("artists", seededArtists).
		Int("hits", seededHits).
		Msg("Demo data seeded")
	return nil
}
