// Package shared holds the request and response helpers used by every
// handler and middleware: JSON decoding, request validation, error bodies
// and the per-request trace ID.
package shared
