package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"dataweaver/internal/dataset"
)

// HealthService reports service liveness plus the state of the two data
// sources the pipeline depends on.
type HealthService struct {
	version   string
	loader    *dataset.Loader
	data      *DataService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Sources   map[string]SourceInfo  `json:"sources"`
	Cache     map[string]interface{} `json:"cache"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// SourceInfo describes one source file's availability
type SourceInfo struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	ModTime   string `json:"mod_time,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, loader *dataset.Loader, data *DataService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		loader:    loader,
		data:      data,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check builds the health report. The service is "healthy" when both source
// files are readable and "degraded" otherwise; a degraded service still
// answers requests, it just serves no_data outcomes.
func (hs *HealthService) Check(ctx context.Context) *HealthStatus {
	sources := map[string]SourceInfo{
		dataset.KindTemperature.String(): hs.sourceInfo(dataset.KindTemperature),
		dataset.KindEggPrice.String():    hs.sourceInfo(dataset.KindEggPrice),
	}

	status := "healthy"
	for _, info := range sources {
		if !info.Available {
			status = "degraded"
			break
		}
	}

	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
		Sources:   sources,
		Cache:     hs.data.CacheStats(),
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

func (hs *HealthService) sourceInfo(kind dataset.Kind) SourceInfo {
	path := hs.loader.SourcePath(kind)
	info := SourceInfo{Path: path}

	stat, err := os.Stat(path)
	if err != nil {
		return info
	}

	info.Available = true
	info.SizeBytes = stat.Size()
	info.ModTime = stat.ModTime().UTC().Format(time.RFC3339)
	return info
}
