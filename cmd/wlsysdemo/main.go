// wlsysdemo opens a window and animates it, exercising the software
// and OpenGL presentation paths.
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"runtime"

	"deedles.dev/wlsys"
	"deedles.dev/wlsys/app"
	"deedles.dev/wlsys/config"
	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/key"
	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

var palette = []color.RGBA{
	colornames.Steelblue,
	colornames.Darkolivegreen,
	colornames.Indianred,
	colornames.Goldenrod,
	colornames.Slategray,
}

type demo struct {
	app *app.App
	win *wlsys.Window

	color   int
	frames  int
	pattern *image.RGBA
}

func (d *demo) handle(ev wlsys.Event) {
	switch ev.Kind {
	case wlsys.EventWindowUpdate:
		d.frames++
		if err := d.present(); err != nil {
			debug.Logger().Error("present", "err", err)
			d.app.Quit()
		}

	case wlsys.EventWindowClose:
		d.app.Quit()

	case wlsys.EventKeyDown:
		switch ev.Key {
		case key.Esc:
			d.app.Quit()
		case key.F:
			state := wlsys.WindowStateFullscreen
			if d.win.State() == wlsys.WindowStateFullscreen {
				state = wlsys.WindowStateNormal
			}
			if err := d.win.SetState(state); err != nil {
				debug.Logger().Warn("set state", "state", state, "err", err)
			}
		}

	case wlsys.EventWheel:
		d.color = (d.color + int(ev.Wheel) + len(palette)) % len(palette)

	case wlsys.EventButtonDown:
		debug.Logger().Info("click", "button", ev.Button, "window", d.win.Title())
	}
}

func (d *demo) present() error {
	if d.win.DrawingContext() == wlsys.DrawingContextOpenGL {
		return d.win.SwapBuffers()
	}

	img := d.win.Image()
	bounds := img.Bounds()
	draw.Draw(img, bounds, image.NewUniform(palette[d.color]), image.Point{}, draw.Src)

	// A scaled checkerboard that moves one pixel per frame.
	size := min(bounds.Dx(), bounds.Dy()) / 2
	off := d.frames % max(bounds.Dx()-size, 1)
	dst := image.Rect(off, (bounds.Dy()-size)/2, off+size, (bounds.Dy()+size)/2)
	draw.NearestNeighbor.Scale(img, dst, d.pattern, d.pattern.Bounds(), draw.Over, nil)

	return d.win.Present()
}

func checkerboard() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := colornames.White
			if (x+y)%2 == 0 {
				c = colornames.Black
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func run(cfg *config.Config, opts wlsys.WindowOptions) error {
	// EGL contexts are bound to the thread that made them current.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	a, err := app.New(wlsys.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer a.Close()

	win, err := a.System().CreateWindow(opts)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	d := demo{app: a, win: win, pattern: checkerboard()}
	a.Timers.Add(1000, 1000, func(*app.Timer, uint64) {
		debug.Logger().Debug("frames", "count", d.frames, "displays", a.System().NumDisplays())
		d.frames = 0
	})

	w, h := a.System().MainDisplayDimensions()
	debug.Logger().Info("started", "display", image.Pt(w, h), "context", opts.Context)

	return a.Run(d.handle)
}

func main() {
	var (
		configPath string
		gl         bool
		opts       = wlsys.WindowOptions{Title: "wlsys demo", Width: 640, Height: 480}
	)

	cmd := &cobra.Command{
		Use:          "wlsysdemo",
		Short:        "Open an animated window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if gl {
				opts.Context = wlsys.DrawingContextOpenGL
			}
			return run(cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to configuration file")
	flags.BoolVar(&gl, "gl", false, "render with OpenGL")
	flags.StringVarP(&opts.Title, "title", "t", opts.Title, "window title")
	flags.IntVar(&opts.Width, "width", opts.Width, "window width")
	flags.IntVar(&opts.Height, "height", opts.Height, "window height")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
