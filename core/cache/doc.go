// Package cache provides the TTL byte cache shared by the source client.
//
// Two drivers exist:
//
//   - memory: a process-local map guarded by a RWMutex, entries expire lazily.
//   - redis: go-redis backed, shared between processes, keys carry a prefix.
//
// New selects the driver from Config. Values are opaque byte slices; callers
// own their encoding.
package cache
