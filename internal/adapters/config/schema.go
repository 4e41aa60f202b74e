package config

// FileName is the host configuration file the loader searches for.
const FileName = "weft.yaml"

// Hostfile represents the structure of the weft.yaml configuration file.
type Hostfile struct {
	Version string `yaml:"version"`
	// Caching enables the checksum-keyed descriptor result cache.
	Caching *bool `yaml:"caching"`
	// CacheDir persists the result cache on disk under the given directory.
	// Empty keeps the cache in memory only.
	CacheDir string `yaml:"cacheDir"`
	// Tracing enables OpenTelemetry spans around decode sessions.
	Tracing bool `yaml:"tracing"`
	// JSONLogs switches log output to JSON.
	JSONLogs bool `yaml:"jsonLogs"`
	// DebounceMillis is the watch-mode debounce window in milliseconds.
	DebounceMillis int `yaml:"debounceMillis"`
}

// Host is the validated runtime configuration.
type Host struct {
	Caching        bool
	CacheDir       string
	Tracing        bool
	JSONLogs       bool
	DebounceMillis int
}

// DefaultHost returns the configuration used when no weft.yaml exists: caching on,
// tracing off, text logs.
func DefaultHost() Host {
	return Host{
		Caching:        true,
		DebounceMillis: 50,
	}
}
