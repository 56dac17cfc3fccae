// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

// Package supervisor provides suture-based process supervision.
//
// The tree has two layers under the root: the API layer runs the HTTP
// server, the maintenance layer runs the janitors that sweep expired
// cache entries and idle login limiters. Crashes restart the failing
// layer without taking down the other.
package supervisor
