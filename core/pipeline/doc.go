// Package pipeline holds the configuration of the import pipeline: the
// concurrency budget, phase timeouts, retry policies, conflict strategy and
// classifier authority. It is read once when the orchestrator is built.
package pipeline
