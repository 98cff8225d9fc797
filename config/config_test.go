package config

import (
	"os"
	"path/filepath"
	"testing"

	"deedles.dev/wlsys/egl"
	"deedles.dev/wlsys/internal/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wlsys.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
debug = true
shell = "wl_shell"
title_prefix = "dev: "

[gl]
red = 8
depth = 24
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ShellWlShell, cfg.Shell)
	assert.Equal(t, "dev: ", cfg.TitlePrefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, egl.Attribs{Red: 8, Green: 1, Blue: 1, Alpha: 1, Depth: 24}, cfg.Attribs())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("WLSYS_SOCKET", "wayland-9")
	t.Setenv("WLSYS_GL_ALPHA", "0")
	t.Setenv("WLSYS_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "wayland-9", cfg.Socket)
	assert.Equal(t, 0, cfg.GL.Alpha)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, `shell = "x11"`))
	assert.ErrorContains(t, err, "invalid shell")

	_, err = Load(writeConfig(t, "[gl\nred = 8"))
	assert.ErrorContains(t, err, "read config")
}

func TestApply(t *testing.T) {
	t.Cleanup(func() {
		debug.SetGraphics(false)
		debug.SetLevel("info")
	})

	cfg := Default()
	cfg.Debug = true
	cfg.LogLevel = "warn"
	require.NoError(t, cfg.Apply())
	assert.True(t, debug.Graphics())

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Apply())
}
