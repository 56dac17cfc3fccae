// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

/*
Package config provides layered configuration management for Hitparade.

Configuration is loaded with Koanf v2 from three sources in order of
increasing precedence: built-in defaults, an optional YAML config file,
and environment variables. The loaded Config is validated before use and
immutable afterwards.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
	    Level:  cfg.Logging.Level,
	    Format: cfg.Logging.Format,
	})

The config file path can be overridden with CONFIG_PATH; otherwise the
paths in DefaultConfigPaths are probed in order. Environment variable
names map to nested config paths via envTransformFunc (e.g. HTTP_PORT
becomes server.port); unknown variables are ignored.
*/
package config
