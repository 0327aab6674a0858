// Package tools provides the tool registry and dispatch engine.
//
// # Overview
//
// Domain packages under internal/hrtools each contribute a Pack of tools at
// startup. The Registry keys tools by name in insertion order; the Dispatcher
// resolves invocation requests against it and wraps every outcome in a
// uniform CallResult envelope.
//
// # Failure boundaries
//
// Two boundaries are honored. Expected failures — classified API errors from
// the bamboo client, invalid arguments — are handled inside each handler and
// returned as a {success:false, error} payload; the dispatcher treats whatever
// the handler returns as the result. Defects (a panic escaping a handler) and
// unknown tool names are caught at the dispatch boundary and surfaced as an
// IsError envelope. Nothing propagates out of the server as a raw fault.
//
// # Schema validation
//
// Parameter schemas are advertised for capability discovery only. The
// dispatcher passes the raw argument bag through untouched; each handler owns
// its own extraction, defaulting, and coercion. This is a deliberate design
// choice, not a gap.
package tools
