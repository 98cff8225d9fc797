// Package shm provides helpers for dealing with shared memory.
package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Create returns a new anonymous memory-backed file.
func Create(name string) (*os.File, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}

	return os.NewFile(uintptr(fd), name), nil
}

type Mmap []byte

func Map(file *os.File, size int, prot int, flags int) (mmap Mmap, err error) {
	sc, err := file.SyscallConn()
	if err != nil {
		return nil, err
	}

	cerr := sc.Control(func(fd uintptr) {
		m, merr := unix.Mmap(int(fd), 0, size, prot, flags)
		mmap, err = Mmap(m), merr
	})
	if cerr != nil {
		return nil, cerr
	}

	return mmap, err
}

// MapShared maps file so that writes are visible to other processes
// that map it, such as the compositor.
func MapShared(file *os.File, size int, prot int) (Mmap, error) {
	return Map(file, size, prot, unix.MAP_SHARED)
}

// MapReadOnly maps a file received from the compositor, such as a
// keymap, for reading only.
func MapReadOnly(file *os.File, size int) (Mmap, error) {
	return Map(file, size, unix.PROT_READ, unix.MAP_PRIVATE)
}

func (mmap Mmap) Unmap() error {
	if mmap == nil {
		return nil
	}
	return unix.Munmap(mmap[:cap(mmap)])
}
