// Package config loads backend settings from an optional TOML file and
// WLSYS_* environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"deedles.dev/wlsys/egl"
	"deedles.dev/wlsys/internal/debug"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Shell selects the shell protocol used for top-level windows.
type Shell string

const (
	// ShellAuto prefers xdg_wm_base and falls back to wl_shell.
	ShellAuto    Shell = "auto"
	ShellXdg     Shell = "xdg"
	ShellWlShell Shell = "wl_shell"
)

// Config holds the backend settings.
type Config struct {
	// Debug enables reporting of graphics API failures.
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`

	// Socket overrides the compositor socket. Relative paths are
	// resolved against XDG_RUNTIME_DIR.
	Socket string `mapstructure:"socket"`

	Shell       Shell    `mapstructure:"shell"`
	TitlePrefix string   `mapstructure:"title_prefix"`
	GL          GLConfig `mapstructure:"gl"`
}

// GLConfig holds the minimum framebuffer sizes, in bits.
type GLConfig struct {
	Red   int `mapstructure:"red"`
	Green int `mapstructure:"green"`
	Blue  int `mapstructure:"blue"`
	Alpha int `mapstructure:"alpha"`
	Depth int `mapstructure:"depth"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Shell:    ShellAuto,
		GL: GLConfig{
			Red:   egl.DefaultAttribs.Red,
			Green: egl.DefaultAttribs.Green,
			Blue:  egl.DefaultAttribs.Blue,
			Alpha: egl.DefaultAttribs.Alpha,
			Depth: egl.DefaultAttribs.Depth,
		},
	}
}

// Dir returns the directory searched for wlsys.toml.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "wlsys")
}

// Load reads the configuration. If path is empty, wlsys.toml is looked
// for in Dir, and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("wlsys")
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("WLSYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("socket", def.Socket)
	v.SetDefault("shell", string(def.Shell))
	v.SetDefault("title_prefix", def.TitlePrefix)
	v.SetDefault("gl.red", def.GL.Red)
	v.SetDefault("gl.green", def.GL.Green)
	v.SetDefault("gl.blue", def.GL.Blue)
	v.SetDefault("gl.alpha", def.GL.Alpha)
	v.SetDefault("gl.depth", def.GL.Depth)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for settings that can't be used.
func (cfg *Config) Validate() error {
	switch cfg.Shell {
	case ShellAuto, ShellXdg, ShellWlShell:
	default:
		return fmt.Errorf("invalid shell %q", cfg.Shell)
	}

	for _, size := range []int{cfg.GL.Red, cfg.GL.Green, cfg.GL.Blue, cfg.GL.Alpha, cfg.GL.Depth} {
		if size < 0 {
			return fmt.Errorf("invalid framebuffer size %v", size)
		}
	}

	return nil
}

// Apply configures logging and error reporting.
func (cfg *Config) Apply() error {
	if cfg.LogLevel != "" {
		if err := debug.SetLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	debug.SetGraphics(cfg.Debug)
	return nil
}

// Attribs returns the framebuffer attributes to request.
func (cfg *Config) Attribs() egl.Attribs {
	return egl.Attribs{
		Red:   cfg.GL.Red,
		Green: cfg.GL.Green,
		Blue:  cfg.GL.Blue,
		Alpha: cfg.GL.Alpha,
		Depth: cfg.GL.Depth,
	}
}
