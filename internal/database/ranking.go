// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmilosz/hitparade/internal/models"
)

// ArtistRanking is one entry of the artists-by-hit-count aggregation.
// Zero-hit artists appear with HitCount 0 and an empty Hits slice.
type ArtistRanking struct {
	ID        string
	FirstName string
	LastName  string
	HitCount  int
	Hits      []models.Hit
}

// ArtistsByHitCount returns one page of artists ranked by how many hits
// they own, plus the total artist count. Ordering is fixed: hit_count
// descending, then last_name ascending, then first_name ascending, with
// an id tiebreak for full determinism. The count is computed in SQL in
// a single grouped pass; the page's hits are collected in a second
// query and assembled here.
func (db *DB) ArtistsByHitCount(ctx context.Context, limit, offset int) ([]ArtistRanking, int, error) {
	start := time.Now()

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&total); err != nil {
		observe("count", "artists", start, err)
		return nil, 0, fmt.Errorf("failed to count artists: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT a.id, a.first_name, a.last_name, COUNT(h.id) AS hit_count
		FROM artists a
		LEFT JOIN hits h ON h.artist_id = a.id
		GROUP BY a.id, a.first_name, a.last_name
		ORDER BY hit_count DESC, a.last_name ASC, a.first_name ASC, a.id ASC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	observe("aggregate", "artists", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to rank artists: %w", err)
	}
	defer rows.Close()

	rankings := make([]ArtistRanking, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var r ArtistRanking
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.HitCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ranking: %w", err)
		}
		r.Hits = make([]models.Hit, 0)
		rankings = append(rankings, r)
		ids = append(ids, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rankings: %w", err)
	}

	if len(ids) == 0 {
		return rankings, total, nil
	}

	hitsByArtist, err := db.hitsForArtists(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rankings {
		if hits, ok := hitsByArtist[rankings[i].ID]; ok {
			rankings[i].Hits = hits
		}
	}

	return rankings, total, nil
}

// hitsForArtists collects the hits of the given artists, ordered by
// created_at then id within each artist.
func (db *DB) hitsForArtists(ctx context.Context, ids []string) (map[string][]models.Hit, error) {
	start := time.Now()

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, artist_id, created_at, updated_at
		FROM hits
		WHERE artist_id IN (`+placeholders+`)
		ORDER BY created_at ASC, id ASC`,
		args...,
	)
	observe("select", "hits", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to collect artist hits: %w", err)
	}
	defer rows.Close()

	byArtist := make(map[string][]models.Hit, len(ids))
	for rows.Next() {
		var h models.Hit
		if err := rows.Scan(&h.ID, &h.Title, &h.ArtistID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		byArtist[h.ArtistID] = append(byArtist[h.ArtistID], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hits: %w", err)
	}

	return byArtist, nil
}
