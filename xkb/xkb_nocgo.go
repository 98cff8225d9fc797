//go:build !linux || !cgo

package xkb

// NewCompiler always fails when built without cgo.
func NewCompiler() (Compiler, error) {
	return nil, ErrUnavailable
}
