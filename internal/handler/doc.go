// Package handler implements HTTP request handlers for the Lanterna API.
//
// This package provides the HTTP layer for the diagnostics assistant,
// handling probe execution, local network info, link discovery control,
// report export, and restart requests.
//
// # Handlers
//
// DiagnosticsHandler serves every JSON endpoint. It delegates all domain
// work to the service layer and limits itself to decoding requests,
// mapping errors to status codes, and encoding responses.
//
// Middleware provides panic recovery, request logging, and CORS support.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for actions and probe execution
// - DELETE for cancelling the in-flight discovery attempt
//
// Probe execution is synchronous: POST /api/probes blocks until the
// probe finishes and returns its full outcome. Link discovery is
// asynchronous: POST /api/link-discovery returns 202 immediately and
// the result is polled via GET or pushed over SSE.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes
// (200, 202, 204). Error responses return JSON with {error, details}
// structure. A busy capture answers 409; cancelling when idle answers
// 404.
//
// # Server-Sent Events
//
// The /api/events endpoint streams probe and discovery lifecycle
// events, allowing clients to follow long-running work without polling.
package handler
