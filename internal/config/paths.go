package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	WebDir        string
	LogsDir       string

	// Source files
	TemperatureFile string
	EggPriceFile    string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return PathsFromDir(filepath.Dir(exe)), nil
}

// PathsFromDir builds the path set rooted at the given directory.
// Useful in tests and in the report CLI where the root is explicit.
func PathsFromDir(root string) *Paths {
	dataDir := filepath.Join(root, DefaultDataDir)

	return &Paths{
		ExecutableDir:   root,
		DataDir:         dataDir,
		ReportsDir:      filepath.Join(dataDir, "reports"),
		WebDir:          filepath.Join(root, DefaultWebDir),
		LogsDir:         filepath.Join(root, DefaultLogsDir),
		TemperatureFile: filepath.Join(dataDir, "temperature.csv"),
		EggPriceFile:    filepath.Join(dataDir, "egg_prices.csv"),
	}
}

// EnsureDirectories creates all required directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.LogsDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// SourceFile returns the path of the named source, "" if unknown
func (p *Paths) SourceFile(kind string) string {
	switch kind {
	case "temperature":
		return p.TemperatureFile
	case "egg_price":
		return p.EggPriceFile
	}
	return ""
}

// FileExists reports whether the given path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// LogPathResolution logs the resolved paths at startup for debugging
func (p *Paths) LogPathResolution() {
	slog.Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("temperature_file", p.TemperatureFile),
		slog.String("egg_price_file", p.EggPriceFile))
}
