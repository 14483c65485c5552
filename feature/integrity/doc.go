// Package integrity validates the infrastructure the import pipeline runs on.
//
// # Checks Provided
//
//   - Server: Validates that every pipeline table exists with the columns (and declared types) of its model.
//   - Storage: Checks that the report bucket exists and whether job reports were archived in it.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/server : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true to create the bucket).
package integrity
