// Package source implements the HTTP client for the external game-data API.
//
// # Requests
//
// Collections are read with
//
//	GET {base_url}/{resource}?$skip=N&$limit=M&lang=fr&<filters>
//
// which answers {"total": T, "limit": L, "skip": S, "data": [...]}, and single
// records with GET {base_url}/{resource}/{id}.
//
// # Throttling
//
// Every request waits on a shared token bucket sized from requests_per_minute
// and then on a minimum delay since the previous request. Callers block until a
// slot is free; nothing is rejected.
//
// # Caching
//
// Successful response bodies are cached for the configured TTL, keyed by
// resource, filters, language and page. FetchOptions.SkipCache bypasses the
// read but still refreshes the entry. Identical concurrent misses share one
// request.
//
// # Pagination
//
// The API may cap the requested page size. FetchAll advances skip by the limit
// the API actually returned, never by the requested one, so a capped page size
// neither skips records nor loops forever.
//
// # Failures
//
// Network errors, 429 and 5xx answers are retried with the collection policy.
// Other statuses are terminal. Both end in a *CollectionError carrying the last
// status and body.
package source
