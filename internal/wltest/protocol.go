package wltest

import "strings"

// request describes one request that the fake compositor understands.
// Argument kinds follow libwayland's signature letters: u, i, f, s,
// o, a, h, n (typed new_id, written as n:interface) and N (the untyped
// new_id of wl_registry.bind).
type request struct {
	name       string
	args       []string
	destructor bool
}

func req(name string, sig string) request {
	return request{name: name, args: strings.Fields(sig)}
}

func dtor(name string) request {
	return request{name: name, destructor: true}
}

var requests = map[string]map[uint16]request{
	"wl_display": {
		0: req("sync", "n:wl_callback"),
		1: req("get_registry", "n:wl_registry"),
	},
	"wl_registry": {
		0: req("bind", "u N"),
	},
	"wl_compositor": {
		0: req("create_surface", "n:wl_surface"),
	},
	"wl_surface": {
		0: dtor("destroy"),
		1: req("attach", "o i i"),
		2: req("damage", "i i i i"),
		3: req("frame", "n:wl_callback"),
		6: req("commit", ""),
	},
	"wl_shell": {
		0: req("get_shell_surface", "n:wl_shell_surface o"),
	},
	"wl_shell_surface": {
		0: req("pong", "u"),
		3: req("set_toplevel", ""),
		5: req("set_fullscreen", "u u o"),
		7: req("set_maximized", "o"),
		8: req("set_title", "s"),
		9: req("set_class", "s"),
	},
	"xdg_wm_base": {
		0: dtor("destroy"),
		2: req("get_xdg_surface", "n:xdg_surface o"),
		3: req("pong", "u"),
	},
	"xdg_surface": {
		0: dtor("destroy"),
		1: req("get_toplevel", "n:xdg_toplevel"),
		3: req("set_window_geometry", "i i i i"),
		4: req("ack_configure", "u"),
	},
	"xdg_toplevel": {
		0:  dtor("destroy"),
		2:  req("set_title", "s"),
		3:  req("set_app_id", "s"),
		9:  req("set_maximized", ""),
		10: req("unset_maximized", ""),
		11: req("set_fullscreen", "o"),
		12: req("unset_fullscreen", ""),
		13: req("set_minimized", ""),
	},
	"wl_seat": {
		0: req("get_pointer", "n:wl_pointer"),
		1: req("get_keyboard", "n:wl_keyboard"),
		3: dtor("release"),
	},
	"wl_keyboard": {
		0: dtor("release"),
	},
	"wl_pointer": {
		0: req("set_cursor", "u o i i"),
		1: dtor("release"),
	},
	"wl_output": {
		0: dtor("release"),
	},
	"wl_shm": {
		0: req("create_pool", "n:wl_shm_pool h i"),
	},
	"wl_shm_pool": {
		0: req("create_buffer", "n:wl_buffer i i i i u"),
		1: dtor("destroy"),
		2: req("resize", "i"),
	},
	"wl_buffer": {
		0: dtor("destroy"),
	},
}
