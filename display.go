package wlsys

import (
	"errors"
	"fmt"
)

// DisplaySetting describes a display mode.
type DisplaySetting struct {
	Width, Height int

	// Frequency is the refresh rate in Hz.
	Frequency int

	BitsPerPixel int
}

// DisplayManager reports on the single output tracked by a System.
// Changing modes is not supported.
type DisplayManager struct {
	sys *System
}

// Displays returns the System's DisplayManager.
func (s *System) Displays() *DisplayManager {
	return &DisplayManager{sys: s}
}

func (m *DisplayManager) NumDisplays() int {
	return 1
}

func (m *DisplayManager) NumDisplaySettings(display int) (int, error) {
	if display != 0 {
		return 0, fmt.Errorf("no display %v", display)
	}
	return 1, nil
}

func (m *DisplayManager) DisplaySetting(display, index int) (DisplaySetting, error) {
	if index != 0 {
		return DisplaySetting{}, fmt.Errorf("no display setting %v", index)
	}
	return m.CurrentDisplaySetting(display)
}

// CurrentDisplaySetting returns the current mode of the output. The
// result is zero until the compositor has announced one.
func (m *DisplayManager) CurrentDisplaySetting(display int) (DisplaySetting, error) {
	if display != 0 {
		return DisplaySetting{}, fmt.Errorf("no display %v", display)
	}

	out := m.sys.out
	if out.size.X == 0 {
		return DisplaySetting{}, errors.New("no output mode available")
	}
	return DisplaySetting{
		Width:        out.size.X,
		Height:       out.size.Y,
		Frequency:    int(out.refresh) / 1000,
		BitsPerPixel: 32,
	}, nil
}

// SetCurrentDisplaySetting does nothing.
func (m *DisplayManager) SetCurrentDisplaySetting(display int, setting DisplaySetting) error {
	return nil
}
