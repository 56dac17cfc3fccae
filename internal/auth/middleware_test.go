// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/pmilosz/hitparade/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *models.APIError {
	t.Helper()

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Status != "error" || resp.Error == nil {
		t.Fatalf("expected error envelope, got %+v", resp)
	}
	return resp.Error
}

func TestRequireAdminModeNone(t *testing.T) {
	t.Parallel()

	m := NewMiddleware(nil, AuthModeNone)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/artists/", nil)

	m.RequireAdmin(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with auth mode none, got %d", rec.Code)
	}
}

func TestRequireAdminJWT(t *testing.T) {
	t.Parallel()

	jwtManager := newTestJWTManager(t, time.Hour)
	m := NewMiddleware(jwtManager, AuthModeJWT)

	adminToken, _, err := jwtManager.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	viewerToken, _, err := jwtManager.GenerateToken("bob", "viewer")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCode   string
	}{
		{"valid admin token", "Bearer " + adminToken, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"not bearer", "Basic dXNlcjpwdw==", http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"non-admin role", "Bearer " + viewerToken, http.StatusForbidden, "AUTHORIZATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/artists/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			m.RequireAdmin(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantCode != "" {
				apiErr := decodeError(t, rec)
				if apiErr.Code != tt.wantCode {
					t.Errorf("expected error code %s, got %s", tt.wantCode, apiErr.Code)
				}
			}
		})
	}
}

func TestRequireAdminStoresClaims(t *testing.T) {
	t.Parallel()

	jwtManager := newTestJWTManager(t, time.Hour)
	m := NewMiddleware(jwtManager, AuthModeJWT)

	token, _, err := jwtManager.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var gotClaims *Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/hits/x/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	m.RequireAdmin(handler).ServeHTTP(rec, req)

	if gotClaims == nil {
		t.Fatal("expected claims in request context")
	}
	if gotClaims.Username != "admin" || gotClaims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", gotClaims)
	}
}

func TestLoginLimiter(t *testing.T) {
	t.Parallel()

	limiter := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("fourth rapid attempt should be denied")
	}

	// Other IPs get their own budget.
	if !limiter.Allow("10.0.0.2") {
		t.Error("different IP should be allowed")
	}

	if limiter.Len() != 2 {
		t.Errorf("expected 2 tracked IPs, got %d", limiter.Len())
	}

	// Fresh entries survive cleanup.
	if removed := limiter.Cleanup(); removed != 0 {
		t.Errorf("expected no removals for fresh entries, got %d", removed)
	}
}
