// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmilosz/hitparade/internal/models"
)

// HitRow is a hit joined with its owning artist, the unit hit queries
// return so handlers can build embedded-artist payloads in one pass.
type HitRow struct {
	Hit    models.Hit
	Artist models.Artist
}

// HitFilter narrows and orders hit list queries. Title and artist-name
// filters are case-insensitive substring matches. Ordering tokens:
// "created_at", "title", "artist__first_name", "artist__last_name",
// optionally "-"-prefixed.
type HitFilter struct {
	Title          string
	ArtistName     string
	ArtistLastName string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	Ordering       []string
	Limit          int
	Offset         int
}

// hitOrderColumns maps ordering tokens to SQL columns.
var hitOrderColumns = map[string]string{
	"created_at":         "h.created_at",
	"title":              "h.title",
	"artist__first_name": "a.first_name",
	"artist__last_name":  "a.last_name",
}

const hitJoinSelect = `SELECT
	h.id, h.title, h.artist_id, h.created_at, h.updated_at,
	a.id, a.first_name, a.last_name, a.created_at, a.updated_at
FROM hits h
JOIN artists a ON a.id = h.artist_id`

// CreateHit inserts a new hit owned by the given artist.
// Returns ErrArtistNotFound when the artist does not exist and
// ErrDuplicateHitTitle when the artist already has a hit with the title.
func (db *DB) CreateHit(ctx context.Context, title, artistID string) (*HitRow, error) {
	start := time.Now()
	now := start.UTC().Truncate(time.Microsecond)

	artist, err := db.GetArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	hit := models.Hit{
		ID:        uuid.New().String(),
		Title:     title,
		ArtistID:  artistID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO hits (id, title, artist_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		hit.ID, hit.Title, hit.ArtistID, hit.CreatedAt, hit.UpdatedAt,
	)
	observe("insert", "hits", start, err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateHitTitle
		}
		return nil, fmt.Errorf("failed to create hit: %w", err)
	}

	return &HitRow{Hit: hit, Artist: *artist}, nil
}

// GetHit retrieves a hit joined with its artist by ID.
// Returns ErrHitNotFound if no hit has that ID.
func (db *DB) GetHit(ctx context.Context, id string) (*HitRow, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx, hitJoinSelect+` WHERE h.id = ?`, id)
	hr, err := scanHitRow(row)
	observe("select", "hits", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hit: %w", err)
	}
	return hr, nil
}

// UpdateHit replaces a hit's title and owner and bumps updated_at.
// created_at is never touched. Returns ErrHitNotFound for unknown hit
// IDs, ErrArtistNotFound when the new owner does not exist, and
// ErrDuplicateHitTitle when the (owner, title) pair already exists.
func (db *DB) UpdateHit(ctx context.Context, id, title, artistID string) (*HitRow, error) {
	start := time.Now()
	now := start.UTC().Truncate(time.Microsecond)

	if _, err := db.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE hits SET title = ?, artist_id = ?, updated_at = ? WHERE id = ?`,
		title, artistID, now, id,
	)
	observe("update", "hits", start, err)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateHitTitle
		}
		return nil, fmt.Errorf("failed to update hit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrHitNotFound
	}

	return db.GetHit(ctx, id)
}

// DeleteHit removes a hit by ID. Returns ErrHitNotFound for unknown IDs.
func (db *DB) DeleteHit(ctx context.Context, id string) error {
	start := time.Now()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM hits WHERE id = ?`, id)
	observe("delete", "hits", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete hit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrHitNotFound
	}
	return nil
}

// ListHits returns one page of hits (joined with artists) matching the
// filter plus the total match count across all pages.
func (db *DB) ListHits(ctx context.Context, f HitFilter) ([]HitRow, int, error) {
	start := time.Now()

	where, args := buildHitWhere(f)

	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hits h JOIN artists a ON a.id = h.artist_id`+where, args...,
	).Scan(&total)
	if err != nil {
		observe("count", "hits", start, err)
		return nil, 0, fmt.Errorf("failed to count hits: %w", err)
	}

	query := hitJoinSelect + where +
		orderClause(f.Ordering, hitOrderColumns, "h.created_at ASC", "h.id") +
		` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)

	rows, err := db.conn.QueryContext(ctx, query, pageArgs...)
	observe("select", "hits", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hits: %w", err)
	}
	defer rows.Close()

	hits := make([]HitRow, 0)
	for rows.Next() {
		hr, err := scanHitRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan hit: %w", err)
		}
		hits = append(hits, *hr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating hits: %w", err)
	}

	return hits, total, nil
}

// buildHitWhere assembles the WHERE clause and args for a HitFilter.
func buildHitWhere(f HitFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if f.Title != "" {
		conds = append(conds, `h.title ILIKE '%' || ? || '%'`)
		args = append(args, f.Title)
	}
	if f.ArtistName != "" {
		conds = append(conds, `a.first_name ILIKE '%' || ? || '%'`)
		args = append(args, f.ArtistName)
	}
	if f.ArtistLastName != "" {
		conds = append(conds, `a.last_name ILIKE '%' || ? || '%'`)
		args = append(args, f.ArtistLastName)
	}
	if f.CreatedAfter != nil {
		conds = append(conds, `h.created_at >= ?`)
		args = append(args, *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		conds = append(conds, `h.created_at <= ?`)
		args = append(args, *f.CreatedBefore)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanTarget abstracts *sql.Row and *sql.Rows for shared scanning.
type scanTarget interface {
	Scan(dest ...any) error
}

// scanHitRow scans the hitJoinSelect column list.
func scanHitRow(s scanTarget) (*HitRow, error) {
	var hr HitRow
	err := s.Scan(
		&hr.Hit.ID, &hr.Hit.Title, &hr.Hit.ArtistID, &hr.Hit.CreatedAt, &hr.Hit.UpdatedAt,
		&hr.Artist.ID, &hr.Artist.FirstName, &hr.Artist.LastName, &hr.Artist.CreatedAt, &hr.Artist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hr, nil
}
