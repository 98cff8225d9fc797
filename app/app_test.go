package app_test

import (
	"testing"

	"deedles.dev/wlsys"
	"deedles.dev/wlsys/app"
	"deedles.dev/wlsys/internal/wltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*app.App, *wltest.Server) {
	t.Helper()

	srv, conn := wltest.New(t,
		wltest.Global{Name: 1, Interface: "wl_compositor", Version: 4},
		wltest.Global{Name: 2, Interface: "wl_shm", Version: 1},
		wltest.Global{Name: 3, Interface: "xdg_wm_base", Version: 2},
	)
	a, err := app.New(wlsys.Options{
		Conn:     conn,
		Driver:   wltest.NewGLDriver(),
		Compiler: wltest.NewCompiler(nil),
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	return a, srv
}

func TestRun(t *testing.T) {
	a, _ := newApp(t)

	win, err := a.System().CreateWindow(wlsys.WindowOptions{Title: "one", Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, []*wlsys.Window{win}, a.Windows.Windows())
	assert.Equal(t, []string{"one"}, a.Windows.Titles())

	var kinds []wlsys.EventKind
	err = a.Run(func(ev wlsys.Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == wlsys.EventWindowUpdate {
			a.Quit()
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []wlsys.EventKind{wlsys.EventWindowSize, wlsys.EventWindowUpdate}, kinds)
}

func TestRunTimer(t *testing.T) {
	a, _ := newApp(t)

	var ticks int
	a.Timers.Add(5, 5, func(*app.Timer, uint64) {
		ticks++
		if ticks == 3 {
			a.Quit()
		}
	})

	require.NoError(t, a.Run(func(wlsys.Event) {}))
	assert.Equal(t, 3, ticks)
}

func TestWindows(t *testing.T) {
	a, _ := newApp(t)

	one, err := a.System().CreateWindow(wlsys.WindowOptions{Title: "one", Width: 10, Height: 10})
	require.NoError(t, err)
	two, err := a.System().CreateWindow(wlsys.WindowOptions{Title: "two", Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Windows.Len())
	assert.Error(t, a.Windows.AddWindow(one))

	require.NoError(t, two.Close())
	assert.Equal(t, []*wlsys.Window{one}, a.Windows.Windows())

	require.NoError(t, a.Windows.Close(one))
	assert.False(t, one.Valid())
	assert.Zero(t, a.Windows.Len())
	assert.Error(t, a.Windows.Close(one))
}
