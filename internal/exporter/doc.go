// Package exporter serializes joined rows and correlation results to CSV
// and xlsx, either to files on disk or streamed onto an HTTP response.
// CSV output is BOM-prefixed for Excel compatibility and non-finite values
// export as "N/A".
package exporter
