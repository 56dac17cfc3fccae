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

// ArtistFilter narrows and orders artist list queries.
// Name filters are case-insensitive substring matches; time bounds are
// inclusive. Ordering tokens come from the API allow-list ("first_name",
// "last_name", optionally "-"-prefixed for descending); unknown tokens
// are ignored here as a second line of defense.
type ArtistFilter struct {
	FirstName     string
	LastName      string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Ordering      []string
	Limit         int
	Offset        int
}

// artistOrderColumns maps ordering tokens to SQL columns.
var artistOrderColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
}

// CreateArtist inserts a new artist with a generated UUID and
// server-assigned timestamps.
func (db *DB) CreateArtist(ctx context.Context, firstName, lastName string) (*models.Artist, error) {
	start := time.Now()
	now := start.UTC().Truncate(time.Microsecond)

	artist := &models.Artist{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO artists (id, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		artist.ID, artist.FirstName, artist.LastName, artist.CreatedAt, artist.UpdatedAt,
	)
	observe("insert", "artists", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	return artist, nil
}

// GetArtist retrieves an artist by ID.
// Returns ErrArtistNotFound if no artist has that ID.
func (db *DB) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	start := time.Now()

	var artist models.Artist
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, created_at, updated_at FROM artists WHERE id = ?`, id,
	).Scan(&artist.ID, &artist.FirstName, &artist.LastName, &artist.CreatedAt, &artist.UpdatedAt)
	observe("select", "artists", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	return &artist, nil
}

// UpdateArtist replaces an artist's names and bumps updated_at.
// created_at is never touched. Returns ErrArtistNotFound for unknown IDs.
func (db *DB) UpdateArtist(ctx context.Context, id, firstName, lastName string) (*models.Artist, error) {
	start := time.Now()
	now := start.UTC().Truncate(time.Microsecond)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE artists SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, now, id,
	)
	observe("update", "artists", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrArtistNotFound
	}

	return db.GetArtist(ctx, id)
}

// DeleteArtist removes an artist and all of its hits in one transaction.
// The observable contract is identical to a cascading foreign key: after
// a successful return, neither the artist nor any of its hits exist.
// Returns ErrArtistNotFound for unknown IDs without deleting anything.
func (db *DB) DeleteArtist(ctx context.Context, id string) error {
	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		observe("delete", "artists", start, err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		observe("delete", "artists", start, err)
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		observe("delete", "artists", start, ErrArtistNotFound)
		return ErrArtistNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM hits WHERE artist_id = ?`, id); err != nil {
		observe("delete", "artists", start, err)
		return fmt.Errorf("failed to delete artist's hits: %w", err)
	}

	err = tx.Commit()
	observe("delete", "artists", start, err)
	if err != nil {
		return fmt.Errorf("failed to commit cascade delete: %w", err)
	}
	return nil
}

// ListArtists returns one page of artists matching the filter plus the
// total match count across all pages.
func (db *DB) ListArtists(ctx context.Context, f ArtistFilter) ([]models.Artist, int, error) {
	start := time.Now()

	where, args := buildArtistWhere(f)

	var total int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`+where, args...).Scan(&total)
	if err != nil {
		observe("count", "artists", start, err)
		return nil, 0, fmt.Errorf("failed to count artists: %w", err)
	}

	query := `SELECT id, first_name, last_name, created_at, updated_at FROM artists` + where +
		orderClause(f.Ordering, artistOrderColumns, "first_name ASC, last_name ASC", "id") +
		` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)

	rows, err := db.conn.QueryContext(ctx, query, pageArgs...)
	observe("select", "artists", start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, total, nil
}

// buildArtistWhere assembles the WHERE clause and args for an ArtistFilter.
func buildArtistWhere(f ArtistFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if f.FirstName != "" {
		conds = append(conds, `first_name ILIKE '%' || ? || '%'`)
		args = append(args, f.FirstName)
	}
	if f.LastName != "" {
		conds = append(conds, `last_name ILIKE '%' || ? || '%'`)
		args = append(args, f.LastName)
	}
	if f.CreatedAfter != nil {
		conds = append(conds, `created_at >= ?`)
		args = append(args, *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		conds = append(conds, `created_at <= ?`)
		args = append(args, *f.CreatedBefore)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause builds an ORDER BY clause from ordering tokens. A leading
// "-" means descending. Tokens missing from allowed are dropped; with no
// usable token the default ordering applies. A final id tiebreak keeps
// pagination stable.
func orderClause(tokens []string, allowed map[string]string, def, tiebreak string) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		dir := "ASC"
		name := token
		if strings.HasPrefix(token, "-") {
			dir = "DESC"
			name = token[1:]
		}
		col, ok := allowed[name]
		if !ok {
			continue
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return " ORDER BY " + def + ", " + tiebreak + " ASC"
	}
	return " ORDER BY " + strings.Join(parts, ", ") + ", " + tiebreak + " ASC"
}
