// Package service implements the orchestration layer of the
// diagnostics assistant.
//
// Diagnostics coordinates between the HTTP handlers and the probe,
// discovery, and local-info components: it validates requests, runs
// probes, keeps the bounded history of recent outcomes, and assembles
// the aggregated snapshot used by the overview and export surfaces.
//
// # Event System
//
// State changes publish events via EventBus for real-time updates to
// connected clients over Server-Sent Events (SSE): probe completion,
// discovery lifecycle, and restart requests. Publishing never blocks;
// slow subscribers miss events rather than stalling the service.
package service
