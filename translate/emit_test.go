package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion2constatus/constatus"
)

func TestOutputPath(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"/etc/motion/cam1.conf", "/etc/motion/cam1-constatus.cfg"},
		{"motion.conf", "motion-constatus.cfg"},
		{"/etc/motion/thread", "/etc/motion/thread-constatus.cfg"},
		{"/etc/motion.d/cam", "/etc/motion.d/cam-constatus.cfg"},
		{"/etc/motion/cam.1.conf", "/etc/motion/cam.1-constatus.cfg"},
		{"/home/me/.motion", "/home/me/.motion-constatus.cfg"},
	} {
		assert.Equal(t, tc.want, OutputPath(tc.in), tc.in)
	}
}

func sampleDocument() *constatus.Document {
	return &constatus.Document{
		Logfile:    constatus.DefaultLogfile,
		LogLevel:   constatus.LogLevel,
		ResizeType: constatus.ResizeType,
		Source:     &constatus.NetworkSource{ID: "x", Type: "rtsp", URL: "rtsp://x"},
	}
}

func TestEmitOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cam-constatus.cfg")
	require.NoError(t, os.WriteFile(out, []byte("stale contents that are longer than the new ones"), 0600))

	require.NoError(t, Emit(out, sampleDocument()))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `url = "rtsp://x";`)
	assert.NotContains(t, string(b), "stale")

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEmitWriteError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing-dir", "cam-constatus.cfg")
	err := Emit(out, sampleDocument())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
	assert.Equal(t, "write_error", Kind(err))
	assert.Contains(t, err.Error(), out)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "other", Kind(errors.New("boom")))
	assert.Equal(t, "missing_source", Kind(errors.Wrap(constatus.ErrMissingSource, "cam")))
	assert.Equal(t, "include_depth", Kind(errors.Wrap(ErrIncludeDepth, "cam")))
}
