// Package bookstack is a thin client for the BookStack REST API.
//
// The API is an external contract owned by the wiki product: list endpoints
// paginate via count/offset and return {data: [...], total: N}; writes are
// plain POST/PUT returning the affected resource; authentication is a static
// "Token id:secret" header pair attached to every request.
//
// Two defensive behaviors are built in:
//
//   - Every request, read or write, waits for a shared rate limiter so a
//     full reconciliation run never bursts against the instance.
//   - Responses whose body is not JSON-shaped (does not start with '{' or
//     '[') are retried with linear backoff. Proxies in front of BookStack
//     answer with HTML error pages under load.
//
// Errors are split into TransportError (fetch could not complete) and
// MutationError (a write returned no usable id). Callers treat the former
// as fatal during the snapshot phase and the latter as a per-item failure.
package bookstack
