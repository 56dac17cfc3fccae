// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

/*
Package cache implements the TTL response cache for list endpoints and
the invalidation that keeps it consistent with entity mutations.

Three pieces:

  - ListCache: thread-safe in-memory store of serialized list responses.
    Entries expire after a fixed TTL; expired entries are dropped lazily
    on read and in bulk by Cleanup (driven by the supervisor's janitor).

  - Key / View: deterministic cache key derivation. A key is the view
    name plus the canonical (sorted) encoding of the request query, with
    a "no-params" sentinel for bare requests. Every view owns the key
    prefix "ViewName:".

  - Invalidator: synchronous fan-out from entity changes to prefix
    purges. Artist changes purge ArtistList and ArtistsByHits; hit
    changes purge HitList and ArtistsByHits. The by-artist ranking is
    bound to both entity types because its payload derives from both.

Failure policy: the cache is an optimization. Callers treat any miss or
cache-layer problem as a signal to serve from the database and attempt
to repopulate; requests are never failed on account of the cache.
*/
package cache
