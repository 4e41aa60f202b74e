// Package config provides the host configuration loader for weft.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only weft.yaml schema version this loader accepts.
const supportedVersion = "1"

// Loader reads the host configuration from a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its ancestors for weft.yaml and returns the validated
// configuration. When no file exists the defaults apply.
func (l *Loader) Load(cwd string) (Host, error) {
	path, found := l.findConfiguration(cwd)
	if !found {
		return DefaultHost(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the directory walk above
	if err != nil {
		return Host{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Hostfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Host{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Version != supportedVersion {
		return Host{}, zerr.With(zerr.With(domain.ErrConfigInvalid, "version", file.Version), "path", path)
	}
	if file.DebounceMillis < 0 {
		return Host{}, zerr.With(zerr.With(domain.ErrConfigInvalid, "debounceMillis", file.DebounceMillis), "path", path)
	}

	host := DefaultHost()
	if file.Caching != nil {
		host.Caching = *file.Caching
	}
	if file.CacheDir != "" {
		// Relative directories anchor at the config file, not the process cwd.
		host.CacheDir = file.CacheDir
		if !filepath.IsAbs(file.CacheDir) {
			host.CacheDir = filepath.Join(filepath.Dir(path), file.CacheDir)
		}
	}
	host.Tracing = file.Tracing
	host.JSONLogs = file.JSONLogs
	if file.DebounceMillis > 0 {
		host.DebounceMillis = file.DebounceMillis
	}
	return host, nil
}

// findConfiguration walks up from cwd looking for weft.yaml.
func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, fs.ErrNotExist) && l.Logger != nil {
			l.Logger.Warn("could not stat " + candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}
