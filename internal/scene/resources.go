package scene

import (
	"errors"
	"fmt"
	"sync"

	"cogentcore.org/core/math32"
)

var ErrAllocation = errors.New("failed to allocate scene resource")

type ResourceKind string

const (
	ResourceGeometry ResourceKind = "geometry"
	ResourceMaterial ResourceKind = "material"
)

// Resource describes a GPU object the builder needs. Size is set for
// geometries, Color for materials.
type Resource struct {
	Kind  ResourceKind
	Label string
	Shape Shape
	Size  math32.Vector3
	Color string
}

// Handle identifies an allocated resource
type Handle struct {
	ID    uint64       `json:"id"`
	Kind  ResourceKind `json:"kind"`
	Label string       `json:"label"`
}

// Allocator creates and frees the GPU objects backing a scene
type Allocator interface {
	Allocate(r Resource) (Handle, error)
	Free(h Handle)
}

// MemoryAllocator hands out handles without touching a GPU. The server uses it
// to describe scenes; tests use it to check release discipline.
type MemoryAllocator struct {
	mu     sync.Mutex
	nextID uint64
	live   map[uint64]Handle
	// FailAfter makes the allocation after this many successful ones fail.
	// Zero disables failures.
	FailAfter int
	allocated int
}

func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{live: make(map[uint64]Handle)}
}

func (a *MemoryAllocator) Allocate(r Resource) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.FailAfter > 0 && a.allocated >= a.FailAfter {
		return Handle{}, fmt.Errorf("%w: %s %s", ErrAllocation, r.Kind, r.Label)
	}

	a.nextID++
	a.allocated++
	h := Handle{ID: a.nextID, Kind: r.Kind, Label: r.Label}
	a.live[h.ID] = h
	return h, nil
}

func (a *MemoryAllocator) Free(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.live, h.ID)
}

// Live returns the number of allocated handles not yet freed
func (a *MemoryAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// tracker records every handle acquired for one scene so it can be released
// as a unit
type tracker struct {
	alloc   Allocator
	handles []Handle
}

func (t *tracker) acquire(r Resource) (Handle, error) {
	h, err := t.alloc.Allocate(r)
	if err != nil {
		return Handle{}, err
	}
	t.handles = append(t.handles, h)
	return h, nil
}

// releaseAll frees in reverse acquisition order
func (t *tracker) releaseAll() {
	for i := len(t.handles) - 1; i >= 0; i-- {
		t.alloc.Free(t.handles[i])
	}
	t.handles = nil
}
