// Package orchestrator runs import jobs.
//
// A job imports one entity, a list of entities or a whole category. Every
// entity goes through the same phases in sequence:
//
//	collect → classify (polymorphic kinds only) → convert → integrate
//
// and ends as a models.ImportResult. A failure ends the entity, never the
// job: batch and category jobs finish succeeded, partial, failed or
// cancelled.
//
// # Concurrency
//
// Entity pipelines are bounded three ways. A process wide semaphore sized
// MaxConcurrentProcesses is shared by all jobs of the orchestrator. Each job
// runs at most MaxConcurrentEntities entities at once, and a category job
// keeps at most MaxConcurrentBatches pages in flight. Work beyond the bounds
// waits.
//
// # Failures
//
// Each phase runs under its own timeout and retry policy. Whether a failure
// is retried is decided by the fallback table: a timeout is
// service_unavailable (retry_later), a storage error is database_error
// (rollback_and_retry), anything else is terminal for the entity.
//
// Relations are resolved one level deep. A related record is collected and
// converted once per job, and a related failure is a warning on the owner.
package orchestrator
