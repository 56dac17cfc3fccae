// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package middleware provides HTTP middleware shared across the router:
// request ID propagation and Prometheus request instrumentation.
// Rate limiting and CORS come from go-chi/httprate and go-chi/cors and
// are wired directly in the router.
package middleware
