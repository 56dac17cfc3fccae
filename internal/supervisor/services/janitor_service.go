// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package services

import (
	"context"
	"time"

	"github.com/pmilosz/hitparade/internal/logging"
)

// Sweeper is anything with periodic housekeeping that reports how many
// entries it removed.
//
// Satisfied by:
//   - *cache.ListCache (expired entry sweep)
//   - *auth.LoginLimiter (idle per-IP limiter sweep)
type Sweeper interface {
	Cleanup() int
}

// JanitorService runs a Sweeper on a fixed interval under supervision.
// Neither the cache nor the login limiter spawn goroutines themselves;
// all background work lives here where suture can restart it.
type JanitorService struct {
	sweeper  Sweeper
	interval time.Duration
	name     string
}

// NewJanitorService creates a janitor that calls sweeper.Cleanup every
// interval. The name identifies the service in supervisor logs.
func NewJanitorService(name string, sweeper Sweeper, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &JanitorService{
		sweeper:  sweeper,
		interval: interval,
		name:     name,
	}
}

// Serve implements suture.Service. Blocks until the context is canceled.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := j.sweeper.Cleanup(); removed > 0 {
				logging.Debug().
					Str("janitor", j.name).
					Int("removed", removed).
					Msg("Janitor sweep completed")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (j *JanitorService) String() string {
	return j.name
}
