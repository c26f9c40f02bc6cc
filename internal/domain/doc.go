// Package domain defines the core domain types for the Lanterna network
// diagnostics assistant.
//
// This package contains the value objects exchanged between the probe
// orchestrator, the passive link discovery engine, the health aggregator,
// and the HTTP layer.
//
// # Probes
//
// ProbeKind enumerates the four diagnostic checks (ping, dns, tnc, tracert).
// A ProbeRequest names one check against one target; the runner answers with
// a ProbeOutcome carrying the raw tool output, the exit status (real or
// synthetic), and, when parsing succeeded, a typed ProbeSummary variant.
//
// # Link Discovery
//
// LinkDiscoveryResult is the tagged result of one passive capture attempt:
// available with exactly one NeighborDescriptor, or a degraded status
// (unavailable, not_installed, checking) with a reason and remediation tips.
// CaptureCapability is the precondition snapshot (driver, elevation,
// interface) recomputed before every attempt and never cached across
// process restarts.
//
// # Health
//
// OverallStatus reduces everything to ok/warn/fail. Findings are plain
// strings rebuilt on every aggregation pass; they carry no identity.
// DiagnosticSnapshot is the immutable structure handed to the report
// renderers and the export endpoint.
//
// # Design Principles
//
// - Results are created once and never mutated after being returned
// - Failure modes are encoded as values, not exceptions
// - No I/O, no external dependencies, pure data
package domain
