package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataweaver/internal/dataset"
)

func TestHealthService_Check(t *testing.T) {
	dir := t.TempDir()
	tempFile := writeTemperatureCSV(t, dir, monthRows("Chennai", 2, func(i int) float64 { return 25 }))
	eggFile := writeEggPriceCSV(t, dir, monthRows("Chennai", 2, func(i int) float64 { return 5 }))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	loader := dataset.NewLoader(tempFile, eggFile, logger)
	store := dataset.NewStore(loader, 0)
	data := NewDataService(store, nil, logger)

	hs := NewHealthService("1.0.0", loader, data, logger)
	status := hs.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	require.Len(t, status.Sources, 2)
	assert.True(t, status.Sources["temperature"].Available)
	assert.True(t, status.Sources["egg_price"].Available)
	assert.NotEmpty(t, status.Runtime["go_version"])
}

func TestHealthService_Check_Degraded(t *testing.T) {
	dir := t.TempDir()
	tempFile := writeTemperatureCSV(t, dir, monthRows("Chennai", 2, func(i int) float64 { return 25 }))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	loader := dataset.NewLoader(tempFile, filepath.Join(dir, "absent.csv"), logger)
	store := dataset.NewStore(loader, 0)
	data := NewDataService(store, nil, logger)

	hs := NewHealthService("1.0.0", loader, data, logger)
	status := hs.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.False(t, status.Sources["egg_price"].Available)
}
