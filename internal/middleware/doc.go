// Package middleware provides the HTTP middleware chain: request ID and
// trace propagation, structured request logging, panic recovery, token
// bucket rate limiting, CORS, security headers, and compression.
package middleware
