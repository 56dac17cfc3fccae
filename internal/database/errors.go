// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package database

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/metrics"
)

// Store errors. Handlers dispatch on these with errors.Is to pick the
// HTTP status and error code.
var (
	ErrArtistNotFound    = errors.New("artist not found")
	ErrHitNotFound       = errors.New("hit not found")
	ErrDuplicateHitTitle = errors.New("hit with this title already exists for artist")
)

// isUniqueConstraintError checks if an error is a unique constraint violation.
// DuckDB unique constraint error messages contain "UNIQUE constraint" or
// "Duplicate key".
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") || strings.Contains(errMsg, "duplicate key")
}

// closeQuietly closes a resource, logging failures at debug level.
func closeQuietly(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Debug().Err(err).Msg("Failed to close resource")
	}
}

// observe records query duration and errors for Prometheus.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}
