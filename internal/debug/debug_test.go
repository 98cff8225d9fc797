package debug

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetGraphics(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestReportWL(t *testing.T) {
	buf := capture(t)

	ReportWL("wl_registry.bind(wl_compositor)", errors.New("dead object"))
	out := buf.String()
	assert.Contains(t, out, "wl_registry.bind(wl_compositor)")
	assert.Contains(t, out, "debug_test.go:")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "dead object")
}

func TestReportGraphicsGated(t *testing.T) {
	buf := capture(t)

	ReportGraphics("eglCreateContext", "EGL_BAD_CONFIG")
	assert.Empty(t, buf.String())

	SetGraphics(true)
	require.True(t, Graphics())
	ReportGraphics("eglCreateContext", "EGL_BAD_CONFIG")
	assert.Contains(t, buf.String(), "eglCreateContext")
	assert.Contains(t, buf.String(), "EGL_BAD_CONFIG")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	t.Cleanup(func() { SetLevel("info") })
	assert.Error(t, SetLevel("loud"))
}

func TestSetLevelKeepsTrace(t *testing.T) {
	buf := capture(t)
	prev, level := trace, logger.GetLevel()
	t.Cleanup(func() {
		trace = prev
		logger.SetLevel(level)
	})

	trace = true
	require.NoError(t, SetLevel("info"))
	Printf("-> wl_surface@5.commit()")
	assert.Contains(t, buf.String(), "wl_surface@5.commit()")

	trace = false
	require.NoError(t, SetLevel("info"))
	buf.Reset()
	Printf("-> wl_surface@5.commit()")
	assert.Empty(t, buf.String())
}
