package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/config"
	"go.uber.org/mock/gomock"

	"go.trai.ch/weft/internal/core/ports/mocks"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := newLoader(t)

	host, err := loader.Load(t.TempDir())

	require.NoError(t, err)
	assert.True(t, host.Caching)
	assert.False(t, host.Tracing)
	assert.Equal(t, 50, host.DebounceMillis)
}

func TestLoader_Load_File(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, config.FileName, `
version: "1"
caching: false
tracing: true
jsonLogs: true
debounceMillis: 200
`)

	host, err := loader.Load(dir)

	require.NoError(t, err)
	assert.False(t, host.Caching)
	assert.True(t, host.Tracing)
	assert.True(t, host.JSONLogs)
	assert.Equal(t, 200, host.DebounceMillis)
}

func TestLoader_Load_FoundInParent(t *testing.T) {
	loader := newLoader(t)
	root := t.TempDir()
	createFile(t, root, config.FileName, `
version: "1"
tracing: true
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	host, err := loader.Load(nested)

	require.NoError(t, err)
	assert.True(t, host.Tracing)
	// caching defaults to on when the file does not set it
	assert.True(t, host.Caching)
}

func TestLoader_Load_CacheDir(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, config.FileName, `
version: "1"
cacheDir: .weft/cache
`)

	host, err := loader.Load(dir)

	require.NoError(t, err)
	// Relative directories anchor at the config file.
	assert.Equal(t, filepath.Join(dir, ".weft", "cache"), host.CacheDir)
}

func TestLoader_Load_UnsupportedVersion(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, config.FileName, `version: "2"`)

	_, err := loader.Load(dir)

	require.Error(t, err)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, config.FileName, "version: [\n")

	_, err := loader.Load(dir)

	require.Error(t, err)
}

func TestLoader_Load_NegativeDebounce(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, config.FileName, `
version: "1"
debounceMillis: -5
`)

	_, err := loader.Load(dir)

	require.Error(t, err)
}
