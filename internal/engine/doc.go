// Package engine registers model adapter instances and coordinates access
// to them: capability probing and caching, per-instance admission, and the
// evaluation entry points the HTTP layer calls. It is structured into
// small files by concern:
//
//   - engine.go: core Engine type, constructor, registration, lookup.
//   - config.go: Config and package defaults.
//   - types.go: internal instance bookkeeping.
//   - errors.go: error types and helpers (IsNotFound, IsTooBusy).
//   - admission.go: per-instance queueing, single in-flight evaluation.
//   - eval.go: capability-checked dispatch for every adapter operation.
//   - status.go: Status reporting for /status.
//
// Each registered adapter is owned exclusively by the engine: one
// evaluation in flight per instance, a bounded FIFO queue in front of it.
// Capability sets are probed once at registration and cached; adapters fix
// their capabilities at construction, so the cache cannot go stale.
package engine
