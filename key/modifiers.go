package key

import "strings"

// Modifiers is the set of modifier keys that are held down.
type Modifiers uint8

const (
	ModLeftShift Modifiers = 1 << iota
	ModRightShift
	ModLeftAlt
	ModRightAlt
	ModLeftControl
	ModRightControl
	ModOS
)

var modNames = []struct {
	mod  Modifiers
	name string
}{
	{ModLeftShift, "LeftShift"},
	{ModRightShift, "RightShift"},
	{ModLeftAlt, "LeftAlt"},
	{ModRightAlt, "RightAlt"},
	{ModLeftControl, "LeftControl"},
	{ModRightControl, "RightControl"},
	{ModOS, "OS"},
}

// Has reports whether every modifier in m2 is set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// With returns m with mod set or cleared.
func (m Modifiers) With(mod Modifiers, down bool) Modifiers {
	if down {
		return m | mod
	}
	return m &^ mod
}

func (m Modifiers) String() string {
	if m == 0 {
		return "None"
	}

	var names []string
	for _, n := range modNames {
		if m&n.mod != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
