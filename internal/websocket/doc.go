// Package websocket pushes refresh notifications to connected dashboard
// clients. The hub fans events out to clients over gorilla/websocket, and
// the watcher polls the source files, invalidating the data cache and
// broadcasting a data_refreshed event when either file changes on disk.
package websocket
