// Package adapter defines the uniform contract heterogeneous probabilistic
// model implementations present to an inference driver, and the capability
// probe that reports which optional operations an instance supports. It is
// structured into small files by concern:
//
//   - adapter.go: the Model contract, optional-operation interfaces, and
//     CapabilitySet.
//   - probe.go: Probe and the capability-checked dispatch helpers.
//   - errors.go: error types and predicates (IsUnsupportedOperation,
//     IsUnsupportedPartialData, IsConstructionFailed).
//   - native.go: graph-backed variant with gradient access.
//   - numeric.go: plain-callback variant; values copied across the
//     boundary, no gradients.
//   - external.go: compiled-program variant; full-batch only.
//
// An adapter instance is created once, probed once, and owned by a single
// driver for one inference run. Capabilities are fixed at construction, so
// the probe result may be cached for the run's duration. Instances are not
// safe for concurrent invocation unless the variant documents otherwise.
package adapter
