// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package services contains suture.Service wrappers for the components
// the supervisor tree runs: the HTTP server and the periodic janitors.
package services
