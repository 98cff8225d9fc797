// Package app provides the collaborators a wlsys.System needs along
// with a simple event loop built on them.
package app

import (
	"fmt"

	"deedles.dev/wlsys"
)

// App runs a System with its own clock, timers, event queue, and
// window list.
type App struct {
	Clock   *Clock
	Timers  *Timers
	Events  *Events
	Windows *Windows

	sys  *wlsys.System
	quit bool
}

// New connects to the compositor. The collaborator fields of opts are
// replaced by the App's own.
func New(opts wlsys.Options) (*App, error) {
	clock := NewClock()
	a := App{
		Clock:   clock,
		Timers:  NewTimers(clock),
		Events:  new(Events),
		Windows: new(Windows),
	}

	opts.Clock = a.Clock
	opts.Timers = a.Timers
	opts.Events = a.Events
	opts.Windows = a.Windows
	sys, err := wlsys.New(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	a.sys = sys

	return &a, nil
}

func (a *App) System() *wlsys.System {
	return a.sys
}

// Quit makes Run return after the current event.
func (a *App) Quit() {
	a.quit = true
}

// Run processes events, passing each to handle, until Quit is called
// or the connection to the compositor breaks.
func (a *App) Run(handle func(ev wlsys.Event)) error {
	for !a.quit {
		a.sys.ProcessEvents(true)
		for !a.quit {
			ev, ok := a.Events.Pop()
			if !ok {
				break
			}
			handle(ev)
		}

		if a.quit {
			break
		}
		if err := a.sys.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every window and then the System.
func (a *App) Close() error {
	err := a.Windows.CloseAll()
	if err != nil {
		a.sys.Close()
		return err
	}
	return a.sys.Close()
}
