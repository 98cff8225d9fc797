package app

import (
	"errors"

	"deedles.dev/wlsys"
	"deedles.dev/wlsys/internal/set"
	"deedles.dev/wlsys/internal/xslices"
)

// Windows is a WindowManager that remembers windows in the order they
// were created.
type Windows struct {
	known   set.Set[*wlsys.Window]
	ordered []*wlsys.Window
}

func (m *Windows) AddWindow(w *wlsys.Window) error {
	if m.known == nil {
		m.known = set.New[*wlsys.Window]()
	}
	if m.known.Has(w) {
		return errors.New("window already added")
	}

	m.known.Add(w)
	m.ordered = append(m.ordered, w)
	return nil
}

// Windows returns every window that is still open.
func (m *Windows) Windows() []*wlsys.Window {
	m.prune()
	return append([]*wlsys.Window(nil), m.ordered...)
}

// Len returns the number of open windows.
func (m *Windows) Len() int {
	m.prune()
	return len(m.ordered)
}

// Titles returns the titles of the open windows.
func (m *Windows) Titles() []string {
	return xslices.Map(m.Windows(), (*wlsys.Window).Title)
}

// Close closes w and forgets it.
func (m *Windows) Close(w *wlsys.Window) error {
	if !m.known.Remove(w) {
		return errors.New("unknown window")
	}
	m.prune()
	return w.Close()
}

// CloseAll closes every window.
func (m *Windows) CloseAll() error {
	var errs []error
	for _, w := range m.ordered {
		errs = append(errs, w.Close())
	}
	m.known = nil
	m.ordered = nil
	return errors.Join(errs...)
}

func (m *Windows) prune() {
	m.ordered = xslices.Filter(m.ordered, func(w *wlsys.Window) bool {
		if !w.Valid() || !m.known.Has(w) {
			m.known.Remove(w)
			return false
		}
		return true
	})
}
