// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package auth implements JWT authentication and admin authorization for
// the write endpoints.
//
// Read endpoints are public; POST, PUT, PATCH, and DELETE require a
// bearer token whose claims carry the admin role. Tokens are issued by
// the login endpoint after verifying the configured admin credential
// against its bcrypt hash, and signed with HMAC-SHA256.
//
// AUTH_MODE=none disables the checks entirely for local development;
// config validation forbids it in production.
//
// The login endpoint is additionally rate limited per client IP via
// LoginLimiter, independent of the global request rate limit.
package auth
