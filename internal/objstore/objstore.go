// Package objstore tracks the protocol objects known to one end of a
// connection by ID.
package objstore

import (
	"maps"
	"slices"

	"deedles.dev/wlsys/wire"
)

// maxClientID is the last ID in the client-allocated range. Server
// allocated IDs start at 0xFF000000.
const maxClientID = 0xFEFFFFFF

type Store struct {
	objects map[uint32]wire.Object
	nextID  uint32
	free    []uint32
}

func New(start uint32) *Store {
	return &Store{
		objects: make(map[uint32]wire.Object),
		nextID:  start,
	}
}

// Add assigns obj an ID if it doesn't have one yet and starts tracking
// it. IDs released by Delete are reused before new ones are allocated.
func (s *Store) Add(obj wire.Object) {
	id := obj.ID()
	if id == 0 {
		id = s.alloc()
		obj.SetID(id)
	}

	s.objects[id] = obj
}

func (s *Store) alloc() uint32 {
	if len(s.free) > 0 {
		id := s.free[0]
		s.free = s.free[1:]
		return id
	}

	id := s.nextID
	if id > maxClientID {
		panic("object ID space exhausted")
	}
	s.nextID++
	return id
}

func (s *Store) Get(id uint32) wire.Object {
	return s.objects[id]
}

// Delete stops tracking the object with the given ID, calls its Delete
// method, and makes the ID available for reuse.
func (s *Store) Delete(id uint32) {
	obj, ok := s.objects[id]
	if !ok {
		return
	}
	delete(s.objects, id)
	s.free = append(s.free, id)
	obj.Delete()
}

func (s *Store) Len() int {
	return len(s.objects)
}

// IDs returns the IDs of every tracked object in ascending order.
func (s *Store) IDs() []uint32 {
	return slices.Sorted(maps.Keys(s.objects))
}
