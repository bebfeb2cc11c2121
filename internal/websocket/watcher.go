package websocket

import (
	"context"
	"log/slog"
	"time"

	"dataweaver/internal/dataset"
)

// DataCache is the slice of the data service the watcher needs: dropping
// stale entries and reading source file modification times.
type DataCache interface {
	Invalidate()
	SourceModTime(kind dataset.Kind) time.Time
}

// Watcher polls the source files and, when either changes on disk,
// invalidates the data cache and notifies connected dashboard clients so
// they re-fetch.
type Watcher struct {
	hub    *Hub
	cache  DataCache
	period time.Duration
	logger *slog.Logger

	lastSeen map[dataset.Kind]time.Time
}

// NewWatcher creates a watcher polling at the given period
func NewWatcher(hub *Hub, cache DataCache, period time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if period <= 0 {
		period = 30 * time.Second
	}
	return &Watcher{
		hub:    hub,
		cache:  cache,
		period: period,
		logger: logger.With(slog.String("component", "websocket.watcher")),
		lastSeen: map[dataset.Kind]time.Time{
			dataset.KindTemperature: cache.SourceModTime(dataset.KindTemperature),
			dataset.KindEggPrice:    cache.SourceModTime(dataset.KindEggPrice),
		},
	}
}

// Run polls until the context is canceled
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	w.logger.Info("source watcher started", slog.Duration("period", w.period))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("source watcher stopped")
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	var changed []string
	for _, kind := range []dataset.Kind{dataset.KindTemperature, dataset.KindEggPrice} {
		current := w.cache.SourceModTime(kind)
		if !current.Equal(w.lastSeen[kind]) {
			w.lastSeen[kind] = current
			changed = append(changed, kind.String())
		}
	}

	if len(changed) == 0 {
		return
	}

	w.logger.Info("source files changed", slog.Any("kinds", changed))
	w.cache.Invalidate()
	w.hub.Broadcast(TypeDataRefreshed, map[string]interface{}{
		"sources": changed,
	})
}
