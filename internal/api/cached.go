// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"bytes"
	"net/http"

	"github.com/pmilosz/hitparade/internal/cache"
	"github.com/pmilosz/hitparade/internal/logging"
	"github.com/pmilosz/hitparade/internal/metrics"
)

// cachedList wraps a list handler with response caching. On a hit the
// stored payload is replayed byte-for-byte with X-Cache: HIT. On a miss
// the handler runs against a buffering writer and only 200 responses are
// stored. A nil cache degrades to calling the handler directly.
func (h *Handler) cachedList(view cache.View, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cache == nil {
			fn(w, r)
			return
		}

		key := cache.Key(view, r.URL.Query())

		if payload, ok := h.cache.Get(key); ok {
			metrics.RecordCacheHit(string(view))
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(payload); err != nil {
				logging.Error().Err(err).Str("view", string(view)).Msg("Failed to replay cached response")
			}
			return
		}

		metrics.RecordCacheMiss(string(view))
		w.Header().Set("X-Cache", "MISS")

		buf := &bufferingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		fn(buf, r)

		if buf.statusCode == http.StatusOK {
			h.cache.Set(key, buf.body.Bytes())
		}
	}
}

// bufferingResponseWriter tees the response body so successful list
// payloads can be stored after they are sent.
type bufferingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (w *bufferingResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bufferingResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
