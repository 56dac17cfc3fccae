// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/models"
)

type contextKey string

// ClaimsContextKey is the request context key holding validated claims.
const ClaimsContextKey contextKey = "claims"

// AuthModeNone disables authentication entirely; all writes are allowed.
// Rejected by config validation in production environments.
const AuthModeNone = "none"

// AuthModeJWT requires a valid bearer token on protected endpoints.
const AuthModeJWT = "jwt"

// RoleAdmin is the only role permitted to perform write operations.
const RoleAdmin = "admin"

// Middleware enforces bearer-token authentication and admin authorization
// on protected routes.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates authentication middleware. jwtManager may be nil
// only when authMode is "none".
func NewMiddleware(jwtManager *JWTManager, authMode string) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   authMode,
	}
}

// RequireAdmin guards write endpoints. Requests without a valid token get
// 401; authenticated requests without the admin role get 403. With auth
// mode "none" every request passes through.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == AuthModeNone {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			writeAuthError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid or expired token")
			return
		}

		if claims.Role != RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "AUTHORIZATION_ERROR", "admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the validated claims stored by RequireAdmin,
// if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// extractBearerToken reads the token from the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid authorization header")
	}

	return parts[1], nil
}

// writeAuthError emits the standard error envelope. Kept local to avoid a
// dependency on the api package.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
