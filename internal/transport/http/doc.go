// Package http contains the chi HTTP handlers for the data, analysis,
// export, and health endpoints. Handlers depend on narrow service
// interfaces, respond through go-chi/render, and route every failure
// through the shared error handler. Degenerate pipeline outcomes are 200
// responses carrying a state field.
package http
