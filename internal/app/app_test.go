package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/weft/internal/adapters/cache"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/app"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports/mocks"
	"go.trai.ch/weft/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

// encodeSet serializes a minimal descriptor set envelope with one tag helper.
func encodeSet(t *testing.T, version int32) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	require.NoError(t, enc.EncodeMapLen(4))
	require.NoError(t, enc.EncodeString("Version"))
	require.NoError(t, enc.EncodeInt(int64(version)))
	require.NoError(t, enc.EncodeString("Configuration"))
	require.NoError(t, enc.EncodeNil())
	require.NoError(t, enc.EncodeString("TagHelpers"))
	require.NoError(t, enc.EncodeArrayLen(1))
	require.NoError(t, enc.EncodeMapLen(3))
	require.NoError(t, enc.EncodeString("Kind"))
	require.NoError(t, enc.EncodeString("Component"))
	require.NoError(t, enc.EncodeString("Name"))
	require.NoError(t, enc.EncodeString("Counter"))
	require.NoError(t, enc.EncodeString("AssemblyName"))
	require.NoError(t, enc.EncodeString("MyApp"))
	require.NoError(t, enc.EncodeString("Diagnostics"))
	require.NoError(t, enc.EncodeArrayLen(0))

	return buf.Bytes()
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	return app.New(
		config.NewLoader(log),
		log,
		cache.NewInterner(),
		builder.NewPool(),
		cache.NewDescriptorStore(),
		nil,
		telemetry.NewNoOpTracer(),
	)
}

func TestDecodeDescriptorSetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helpers.bin")
	require.NoError(t, os.WriteFile(path, encodeSet(t, domain.SetFormatVersion), 0o644))

	a := newTestApp(t)
	err := a.Decode(context.Background(), []string{path}, app.DecodeOptions{})
	require.NoError(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helpers.bin")
	require.NoError(t, os.WriteFile(path, encodeSet(t, 99), 0o644))

	a := newTestApp(t)
	err := a.Decode(context.Background(), []string{path}, app.DecodeOptions{})
	// String check for robustness against zerr wrapping.
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrUnsupportedVersion.Error())
}

func TestDecodeRequiresInputs(t *testing.T) {
	a := newTestApp(t)
	err := a.Decode(context.Background(), nil, app.DecodeOptions{})
	require.ErrorIs(t, err, domain.ErrNoInputsSpecified)
}

func TestDecodeMissingFile(t *testing.T) {
	a := newTestApp(t)
	err := a.Decode(context.Background(), []string{filepath.Join(t.TempDir(), "absent.bin")}, app.DecodeOptions{})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrSetOpenFailed.Error())
}
