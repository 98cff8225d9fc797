package wlsys_test

import (
	"sync"
	"testing"
	"time"

	"deedles.dev/wlsys"
	"deedles.dev/wlsys/internal/wltest"
	"github.com/stretchr/testify/require"
)

const (
	compositorName = 3
	shmName        = 4
	xdgName        = 5
	shellName      = 6
	outputName     = 7
	seatName       = 8
)

func compositorGlobal() wltest.Global {
	return wltest.Global{Name: compositorName, Interface: "wl_compositor", Version: 4}
}

func shmGlobal() wltest.Global {
	return wltest.Global{Name: shmName, Interface: "wl_shm", Version: 1}
}

func xdgGlobal() wltest.Global {
	return wltest.Global{Name: xdgName, Interface: "xdg_wm_base", Version: 2}
}

func shellGlobal() wltest.Global {
	return wltest.Global{Name: shellName, Interface: "wl_shell", Version: 1}
}

func outputGlobal(width, height int32) wltest.Global {
	return wltest.Global{
		Name:      outputName,
		Interface: "wl_output",
		Version:   3,
		OnBind: func(send func(op uint16, args ...any)) {
			send(1, uint32(1), width, height, int32(60000))
			send(2)
		},
	}
}

func seatGlobal(caps uint32) wltest.Global {
	return wltest.Global{
		Name:      seatName,
		Interface: "wl_seat",
		Version:   5,
		OnBind: func(send func(op uint16, args ...any)) {
			send(0, caps)
		},
	}
}

// recorder is the EventQueue and WindowManager of a test System.
type recorder struct {
	m       sync.Mutex
	events  []wlsys.Event
	windows []*wlsys.Window
}

func (r *recorder) PushEvent(ev wlsys.Event) {
	r.m.Lock()
	defer r.m.Unlock()

	r.events = append(r.events, ev)
}

func (r *recorder) AddWindow(w *wlsys.Window) error {
	r.m.Lock()
	defer r.m.Unlock()

	r.windows = append(r.windows, w)
	return nil
}

// Kinds returns the kinds of the recorded events that concern w, or
// every event if w is nil.
func (r *recorder) Kinds(w *wlsys.Window) []wlsys.EventKind {
	r.m.Lock()
	defer r.m.Unlock()

	var kinds []wlsys.EventKind
	for _, ev := range r.events {
		if (w == nil) || (ev.Window == w) {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds
}

func (r *recorder) Count(kind wlsys.EventKind) int {
	r.m.Lock()
	defer r.m.Unlock()

	var n int
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) Last(kind wlsys.EventKind) (wlsys.Event, bool) {
	r.m.Lock()
	defer r.m.Unlock()

	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return wlsys.Event{}, false
}

type testEnv struct {
	srv *wltest.Server
	sys *wlsys.System
	rec *recorder
	gl  *wltest.GLDriver
	xkb *wltest.Compiler

	pings uint32
}

func newEnv(t *testing.T, timers wlsys.TimerManager, globals ...wltest.Global) *testEnv {
	t.Helper()

	srv, conn := wltest.New(t, globals...)
	env := testEnv{
		srv: srv,
		rec: new(recorder),
		gl:  wltest.NewGLDriver(),
		xkb: wltest.NewCompiler(map[string]wltest.Keymap{"us": wltest.USKeymap}),
	}

	sys, err := wlsys.New(wlsys.Options{
		Conn:     conn,
		Driver:   env.gl,
		Compiler: env.xkb,
		Windows:  env.rec,
		Timers:   timers,
		Events:   env.rec,
	})
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })
	env.sys = sys

	return &env
}

// pumpUntil processes events without blocking until cond is true.
func (env *testEnv) pumpUntil(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for events")
		}
		env.sys.ProcessEvents(false)
		time.Sleep(time.Millisecond)
	}
}

func (env *testEnv) object(t *testing.T, iface string) uint32 {
	t.Helper()

	var ids []uint32
	env.pumpUntil(t, func() bool {
		ids = env.srv.Objects(iface)
		return len(ids) > 0
	})
	return ids[0]
}

// sync waits until every event sent so far has been dispatched. It
// needs xdg_wm_base to be bound.
func (env *testEnv) sync(t *testing.T) {
	t.Helper()

	env.pings++
	env.srv.Send(env.srv.Bound("xdg_wm_base")[0], 0, env.pings)
	env.pumpUntil(t, func() bool {
		return len(env.srv.Requests("xdg_wm_base", "pong")) == int(env.pings)
	})
}
