// Package services holds the application layer between HTTP transport and
// the dataset/analysis packages. DataService owns the load-merge-filter
// pipeline and its cache, AnalysisService runs the statistical layer on top
// of it, and HealthService reports source availability. Degenerate pipeline
// outcomes (missing sources, disjoint keys, empty ranges) are states, not
// errors.
package services
