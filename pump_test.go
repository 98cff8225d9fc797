package wlsys

import (
	"testing"

	"deedles.dev/wlsys/internal/wltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestProcessEventsPollError(t *testing.T) {
	_, conn := wltest.New(t, wltest.Global{Name: 3, Interface: "wl_compositor", Version: 4})
	s, err := New(Options{
		Conn:     conn,
		Driver:   wltest.NewGLDriver(),
		Compiler: wltest.NewCompiler(nil),
	})
	require.NoError(t, err)
	defer s.Close()

	for s.ProcessEvents(false) {
	}

	var calls int
	s.poll = func(events int16, timeout int) (int16, error) {
		calls++
		return 0, unix.EINVAL
	}

	assert.False(t, s.ProcessEvents(true))
	assert.Equal(t, 1, calls)
	assert.NoError(t, s.err)
}
