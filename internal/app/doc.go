// Package app assembles the application: configuration, the structured
// logger, OpenTelemetry metrics, the data pipeline and its cache, the
// service layer, the websocket refresh hub, and the chi router with its
// middleware chain, all behind one http.Server with graceful shutdown.
package app
