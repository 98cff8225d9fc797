//go:build !linux || !cgo

package egl

import "errors"

// NewDriver fails when built without cgo.
func NewDriver() (Driver, error) {
	return nil, errors.New("egl: built without cgo")
}
