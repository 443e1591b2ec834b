// Package middleware contains HTTP middleware shared by all routes: request
// tracing with trace-scoped loggers, and Prometheus request metrics.
package middleware
