// Package notify delivers pipeline events to external collaborators.
//
// A Sink receives events synchronously. The Dispatcher wraps any number of
// sinks behind a bounded queue: Publish never blocks, and when the queue is
// full the event is dropped and counted.
//
// Sinks:
//
//   - LogSink writes events to the zap logger.
//   - RedisSink publishes JSON events on a redis channel.
//   - MemorySink keeps events in memory, mostly for tests.
package notify
