// Package models defines the shared types of the scrapping pipeline: entity
// kinds, converted records, warnings, per-entity and batch results, and the
// gorm models of the target tables.
package models
