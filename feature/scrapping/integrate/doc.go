// Package integrate writes converted records to the database.
//
// Every top-level record is written in one transaction together with the
// related records it owns and the links to them. A failure anywhere rolls
// the whole bundle back, so a partially linked record is never visible.
//
// An existing row (same external id in the target table) is handled by the
// configured conflict strategy: update, skip, duplicate or error.
package integrate
