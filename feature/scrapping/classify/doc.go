// Package classify decides which kind a polymorphic item record belongs to.
//
// Items, resources and consumables share one source endpoint. Each record
// carries a source type id; the classifier maps it to a candidate kind
// (resource, then consumable, in priority order) or falls back to the generic
// item kind.
//
// # Authority
//
//   - lists: static allow and deny lists per candidate kind, from configuration
//     and an optional YAML file.
//   - registry: the persisted source_type_registry table, where each type id is
//     allowed, blocked or pending and carries usage counters.
//   - combined: the union of both.
//
// A deny entry always overrides an allow entry for the same kind. Unknown ids
// are never errors; they fall back to item.
//
// # Snapshots
//
// Classify reads an immutable snapshot and is safe for concurrent use. Refresh
// rebuilds the snapshot from the registry; SetDecision refreshes after writing.
package classify
