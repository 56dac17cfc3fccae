// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net"
	"net/http"
	"time"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/metrics"
	"github.com/pmilosz/hitparade/internal/models"
)

// Login handles POST /api/v1/auth/login. Verifies the configured admin
// credential and issues a JWT. Attempts are rate limited per client IP
// on top of the route-level httprate limit.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.jwtManager == nil || h.credentials == nil {
		respondError(w, http.StatusNotFound, codeNotFound, "authentication is disabled", nil)
		return
	}

	if h.loginLimiter != nil && !h.loginLimiter.Allow(clientIP(r)) {
		metrics.RecordLoginAttempt("rate_limited")
		respondError(w, http.StatusTooManyRequests, codeRateLimitExceeded, "too many login attempts", nil)
		return
	}

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body", err)
		return
	}

	if !h.credentials.Verify(req.Username, req.Password) {
		metrics.RecordLoginAttempt("failure")
		logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Login failed")
		respondError(w, http.StatusUnauthorized, codeAuthentication, "invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username, auth.RoleAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TOKEN_ERROR", "failed to issue token", err)
		return
	}

	metrics.RecordLoginAttempt("success")
	respondData(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  req.Username,
		Role:      auth.RoleAdmin,
	}, 0)
}

// clientIP returns the remote IP. The router's RealIP middleware has
// already resolved X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Health handles GET /api/v1/health: liveness plus a store ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check store ping failed")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status": status,
			"time":   time.Now().UTC(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
