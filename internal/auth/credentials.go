// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pmilosz/hitparade/internal/config"
)

// CredentialStore verifies the configured admin credential. The plaintext
// password from config is hashed once at startup so later comparisons run
// against the bcrypt digest only.
type CredentialStore struct {
	username     string
	passwordHash []byte
}

// NewCredentialStore hashes the configured admin password and returns a
// store ready for verification. Fails if either credential is empty.
func NewCredentialStore(cfg *config.SecurityConfig) (*CredentialStore, error) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &CredentialStore{
		username:     cfg.AdminUsername,
		passwordHash: hash,
	}, nil
}

// Verify reports whether the given username and password match the admin
// credential. The username comparison is constant-time and the password
// check always runs, so failures don't leak which part was wrong.
func (s *CredentialStore) Verify(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return usernameOK && passwordOK
}
