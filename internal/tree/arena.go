package tree

import "fmt"

// Handle addresses an arena slot. A handle whose slot was freed and reused
// no longer resolves. The zero Handle is invalid.
type Handle[T any] struct {
	index uint32
	gen   uint32
}

func (h Handle[T]) Valid() bool {
	return h.gen != 0
}

// Uint64 packs the handle into a stable number for IPC.
func (h Handle[T]) Uint64() uint64 {
	return uint64(h.gen)<<32 | uint64(h.index)
}

func (h Handle[T]) String() string {
	if !h.Valid() {
		return "nil"
	}
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

type slot[T any] struct {
	gen        uint32
	live       bool
	destroying bool
	// refs counts transaction instructions referencing the slot.
	refs  int
	value T
}

// Arena owns values of T. Slots are heap allocated so pointers returned by Get
// stay valid until the slot is freed.
type Arena[T any] struct {
	slots []*slot[T]
	free  []uint32
	live  int
}

func (a *Arena[T]) Insert(v T) Handle[T] {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, &slot[T]{})
	}
	s := a.slots[idx]
	s.gen++
	s.live = true
	s.destroying = false
	s.refs = 0
	s.value = v
	a.live++
	return Handle[T]{index: idx, gen: s.gen}
}

func (a *Arena[T]) slot(h Handle[T]) *slot[T] {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}

// Get returns the value behind h or nil when h is stale.
func (a *Arena[T]) Get(h Handle[T]) *T {
	s := a.slot(h)
	if s == nil {
		return nil
	}
	return &s.value
}

func (a *Arena[T]) Ref(h Handle[T]) {
	if s := a.slot(h); s != nil {
		s.refs++
	}
}

// Unref drops a reference and frees the slot if it is destroying and unreferenced.
func (a *Arena[T]) Unref(h Handle[T]) (freed bool) {
	s := a.slot(h)
	if s == nil {
		return false
	}
	if s.refs > 0 {
		s.refs--
	}
	if s.destroying && s.refs == 0 {
		a.release(h.index, s)
		return true
	}
	return false
}

func (a *Arena[T]) Refs(h Handle[T]) int {
	if s := a.slot(h); s != nil {
		return s.refs
	}
	return 0
}

// Destroy marks the slot as destroying and frees it once unreferenced.
func (a *Arena[T]) Destroy(h Handle[T]) (freed bool) {
	s := a.slot(h)
	if s == nil {
		return false
	}
	s.destroying = true
	if s.refs == 0 {
		a.release(h.index, s)
		return true
	}
	return false
}

// MarkDestroying flags the slot without freeing it. The last Unref frees it.
func (a *Arena[T]) MarkDestroying(h Handle[T]) {
	if s := a.slot(h); s != nil {
		s.destroying = true
	}
}

func (a *Arena[T]) Destroying(h Handle[T]) bool {
	s := a.slot(h)
	return s != nil && s.destroying
}

// Len returns the number of live slots.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live slot in index order.
func (a *Arena[T]) Each(fn func(h Handle[T], v *T)) {
	for i, s := range a.slots {
		if s.live {
			fn(Handle[T]{index: uint32(i), gen: s.gen}, &s.value)
		}
	}
}

func (a *Arena[T]) release(idx uint32, s *slot[T]) {
	var zero T
	s.live = false
	s.destroying = false
	s.refs = 0
	s.value = zero
	a.free = append(a.free, idx)
	a.live--
}
