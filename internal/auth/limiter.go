// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter rate limits login attempts per client IP. The login
// endpoint gets its own limiter, stricter than the global request rate
// limit, because credential stuffing targets it specifically.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*loginLimiterEntry
	rate     rate.Limit
	burst    int
}

type loginLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter allows attempts login attempts per window for each IP.
// No cleanup goroutine is started; callers schedule Cleanup periodically.
func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		limiters: make(map[string]*loginLimiterEntry),
		rate:     rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
	}
}

// Allow reports whether a login attempt from the given IP may proceed.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, exists := l.limiters[ip]
	if !exists {
		entry = &loginLimiterEntry{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Cleanup drops per-IP limiters idle for more than an hour and returns
// how many were removed.
func (l *LoginLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	removed := 0
	for ip, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked IPs.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
