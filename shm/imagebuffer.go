package shm

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/ximage/format"
	"golang.org/x/sys/unix"
)

// ImageBuffer is a wl_buffer backed by a shared memory pool whose
// pixels can be written to directly. It is the drawable that a window
// presents.
type ImageBuffer struct {
	w, h int32
	shm  *wl.Shm
	pool *wl.ShmPool
	buf  *wl.Buffer
	file *os.File
	mmap Mmap
	size int32
}

// NewImageBuffer creates an ARGB8888 buffer of the given size.
func NewImageBuffer(shm *wl.Shm, w, h int32) (*ImageBuffer, error) {
	s := ImageBuffer{
		w:   max(w, 1),
		h:   max(h, 1),
		shm: shm,
	}

	err := s.init()
	if err != nil {
		s.Destroy()
		return nil, err
	}
	return &s, nil
}

func (s *ImageBuffer) init() error {
	file, err := Create("wlsys-drawable")
	if err != nil {
		return fmt.Errorf("create SHM file: %w", err)
	}
	s.file = file

	err = s.grow(s.Len())
	if err != nil {
		return err
	}

	s.pool, err = s.shm.CreatePool(file, s.size)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	s.buf, err = s.pool.CreateBuffer(0, s.w, s.h, s.Stride(), wl.ShmFormatArgb8888)
	if err != nil {
		return fmt.Errorf("create buffer: %w", err)
	}

	return nil
}

// grow makes the backing file and mapping at least size bytes long.
func (s *ImageBuffer) grow(size int32) error {
	if size <= s.size {
		return nil
	}

	err := s.file.Truncate(int64(size))
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	err = s.mmap.Unmap()
	if err != nil {
		return fmt.Errorf("unmap: %w", err)
	}
	s.mmap = nil

	mmap, err := MapShared(s.file, int(size), unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	s.mmap = mmap
	s.size = size

	return nil
}

// Destroy releases the buffer, the pool, and the shared memory. It is
// safe to call more than once.
func (s *ImageBuffer) Destroy() {
	if s.buf != nil {
		s.buf.Destroy()
		s.buf = nil
	}
	if s.pool != nil {
		s.pool.Destroy()
		s.pool = nil
	}
	if s.mmap != nil {
		s.mmap.Unmap()
		s.mmap = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
}

func (s *ImageBuffer) Buffer() *wl.Buffer {
	return s.buf
}

func (s *ImageBuffer) Width() int32 {
	return s.w
}

func (s *ImageBuffer) Height() int32 {
	return s.h
}

func (s *ImageBuffer) Stride() int32 {
	return s.w * 4
}

// Len is the number of bytes used by the current image.
func (s *ImageBuffer) Len() int32 {
	return s.Stride() * s.h
}

func (s *ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.w), int(s.h))
}

// Pix returns the raw pixel memory of the current image.
func (s *ImageBuffer) Pix() []byte {
	return s.mmap[:s.Len()]
}

// Resize changes the size of the image. The pool only ever grows, so
// shrinking reuses the existing memory.
func (s *ImageBuffer) Resize(w, h int32) error {
	w, h = max(w, 1), max(h, 1)
	if (w == s.w) && (h == s.h) {
		return nil
	}
	if s.pool == nil {
		return fmt.Errorf("resize destroyed buffer: %w", wl.ErrDeadObject)
	}

	ow, oh := s.w, s.h
	s.w = w
	s.h = h
	if s.Len() > s.size {
		err := s.grow(s.Len())
		if err != nil {
			s.w, s.h = ow, oh
			return err
		}
		err = s.pool.Resize(s.size)
		if err != nil {
			s.w, s.h = ow, oh
			return fmt.Errorf("resize pool: %w", err)
		}
	}

	if s.buf != nil {
		s.buf.Destroy()
	}
	buf, err := s.pool.CreateBuffer(0, s.w, s.h, s.Stride(), wl.ShmFormatArgb8888)
	if err != nil {
		s.buf = nil
		return fmt.Errorf("create buffer: %w", err)
	}
	s.buf = buf

	return nil
}

// Image returns a view of the pixel memory. It is invalidated by
// Resize.
func (s *ImageBuffer) Image() draw.Image {
	return &format.Image{
		Format: format.ARGB8888,
		Rect:   s.Bounds(),
		Pix:    s.Pix(),
	}
}
