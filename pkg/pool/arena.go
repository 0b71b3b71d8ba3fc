// Package pool provides slab arenas for objects that are built once, read many
// times and released together.
package pool

import (
	"github.com/pkg/errors"
)

// ErrExhausted is returned when an arena has reached its slab limit.
var ErrExhausted = errors.New("pool exhausted")

// Handle references an object inside an Arena.
// The zero Handle never refers to an object and is used as "absent".
type Handle uint32

// Valid reports whether h can refer to an object.
func (h Handle) Valid() bool {
	return h != 0
}

// Arena hands out fixed-size objects from a growable list of slabs.
// Slabs are never reallocated, so pointers returned by Alloc and Get stay
// valid until Reset. There is no per-object free.
type Arena[T any] struct {
	slabSize int
	maxSlabs int
	slabs    [][]T
	count    int
}

// NewArena creates an arena with slabSize objects per slab.
// maxSlabs limits growth; 0 means unlimited.
func NewArena[T any](slabSize, maxSlabs int) (*Arena[T], error) {
	if slabSize <= 0 {
		return nil, errors.Errorf("invalid slab size %d", slabSize)
	}
	if maxSlabs < 0 {
		return nil, errors.Errorf("invalid slab limit %d", maxSlabs)
	}
	return &Arena[T]{
		slabSize: slabSize,
		maxSlabs: maxSlabs,
	}, nil
}

// Alloc returns a zeroed object and its handle.
func (a *Arena[T]) Alloc() (Handle, *T, error) {
	if a.count == len(a.slabs)*a.slabSize {
		if err := a.grow(); err != nil {
			return 0, nil, err
		}
	}

	idx := a.count
	a.count++

	obj := &a.slabs[idx/a.slabSize][idx%a.slabSize]
	var zero T
	*obj = zero
	return Handle(idx + 1), obj, nil
}

func (a *Arena[T]) grow() error {
	if a.maxSlabs > 0 && len(a.slabs) >= a.maxSlabs {
		return errors.Wrapf(ErrExhausted, "%d slabs of %d objects in use", len(a.slabs), a.slabSize)
	}
	a.slabs = append(a.slabs, make([]T, a.slabSize))
	return nil
}

// Get returns the object for h, or nil if h is not live.
func (a *Arena[T]) Get(h Handle) *T {
	if !h.Valid() || int(h) > a.count {
		return nil
	}
	idx := int(h) - 1
	return &a.slabs[idx/a.slabSize][idx%a.slabSize]
}

// Len returns the number of live objects.
func (a *Arena[T]) Len() int {
	return a.count
}

// Slabs returns the number of slabs currently in use.
func (a *Arena[T]) Slabs() int {
	return len(a.slabs)
}

// Reset releases every object at once. All handles and pointers obtained
// before Reset become invalid. The first slab is kept for reuse.
func (a *Arena[T]) Reset() {
	for i := range a.slabs {
		used := a.count - i*a.slabSize
		if used <= 0 {
			break
		}
		clear(a.slabs[i][:min(used, a.slabSize)])
	}
	for i := 1; i < len(a.slabs); i++ {
		a.slabs[i] = nil
	}
	if len(a.slabs) > 1 {
		a.slabs = a.slabs[:1]
	}
	a.count = 0
}
