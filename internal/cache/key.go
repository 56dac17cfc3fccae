// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package cache

import (
	"net/url"
)

// View identifies a cacheable list endpoint. Each view owns a key
// prefix in the cache; invalidation purges whole prefixes.
type View string

// Cacheable list views.
const (
	ArtistList    View = "ArtistList"
	HitList       View = "HitList"
	ArtistsByHits View = "ArtistsByHits"
)

// noParams is the key suffix for requests with an empty query string,
// keeping the bare request distinct from any parameterized one.
const noParams = "no-params"

// Key derives the cache key for a view and request query parameters.
// Two requests with the same parameters in different order produce the
// same key: url.Values.Encode sorts parameters by name. Values within a
// repeated parameter keep their request order.
//
// Examples:
//
//	Key(HitList, url.Values{})                       // "HitList:no-params"
//	Key(HitList, {"page":["2"],"title":["love"]})    // "HitList:page=2&title=love"
//	Key(HitList, {"title":["love"],"page":["2"]})    // same key as above
func Key(view View, query url.Values) string {
	canonical := query.Encode()
	if canonical == "" {
		canonical = noParams
	}
	return string(view) + ":" + canonical
}

// Prefix returns the key prefix owned by a view, used for invalidation.
func Prefix(view View) string {
	return string(view) + ":"
}
