// Package debug holds the logger shared by the rest of the module and
// the protocol and graphics error reporters.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/charmbracelet/log"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "wlsys"})

	// trace is set when WAYLAND_DEBUG asks for every message to be
	// printed.
	trace bool

	// graphics enables the graphics error reporter.
	graphics bool
)

func init() {
	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil {
		return
	}
	if debugLevel > 0 {
		trace = true
		logger.SetLevel(log.DebugLevel)
	}
}

// Logger returns the module-wide logger.
func Logger() *log.Logger {
	return logger
}

// SetOutput redirects all logging to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel parses level and applies it to the logger. While
// WAYLAND_DEBUG tracing is on the level is never raised above debug.
func SetLevel(level string) error {
	l, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	if trace && (l > log.DebugLevel) {
		l = log.DebugLevel
	}
	logger.SetLevel(l)
	return nil
}

// SetGraphics toggles reporting of graphics API failures.
func SetGraphics(enabled bool) {
	graphics = enabled
}

// Graphics reports whether graphics API failures are being reported.
func Graphics() bool {
	return graphics
}

// Printf traces protocol traffic when WAYLAND_DEBUG is set.
func Printf(str string, args ...any) {
	if !trace {
		return
	}
	logger.Debugf(str, args...)
}

// ReportWL logs a failed protocol call. site names the request, such
// as "wl_registry.bind(wl_compositor)".
func ReportWL(site string, err error) {
	logger.Error(fmt.Sprintf("%v (%v): FAILED", site, location(2)), "err", err)
}

// ReportGraphics logs a failed graphics API call, but only when
// graphics reporting is enabled. name is the symbolic error code.
func ReportGraphics(site string, name string) {
	if !graphics {
		return
	}
	logger.Error(fmt.Sprintf("%v (%v): %v", site, location(2), name))
}

func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???"
	}
	return fmt.Sprintf("%v:%v", filepath.Base(file), line)
}
