// Package identity implements the stream-scoped identity/reference
// table that backs IDENTITY(n)/REFERENCE(n) control tags: on the
// writer side it hands out a monotonic id the first time a shareable
// value is seen and reports repeats so the writer can emit a reference
// instead of a second copy; on the reader side it lets a serializer
// register a placeholder before recursing into a self-referential
// value's fields, so cyclic graphs decode without infinite recursion.
package identity

import (
	"reflect"

	"github.com/pofkit/pof/errs"
)

// Table is a bidirectional id<->value map scoped to a single blob. It
// is not safe for concurrent use; a blob is read or written by exactly
// one goroutine at a time.
type Table struct {
	nextID int32

	// writer side
	handles map[uintptr]int32
	content map[uint64]int32

	// reader side
	slots map[int32]*Slot
}

// Slot is a reader-side placeholder for a value whose IDENTITY tag has
// been seen but whose body is still being decoded.
type Slot struct {
	id       int32
	value    any
	resolved bool
}

// New creates an empty identity table.
func New() *Table {
	return &Table{
		handles: make(map[uintptr]int32),
		content: make(map[uint64]int32),
		slots:   make(map[int32]*Slot),
	}
}

// IDOf returns the id assigned to handle, minting a fresh one on first
// sighting. first reports whether this call minted the id (the writer
// must emit IDENTITY(id) then the value) or found an existing one (the
// writer must emit REFERENCE(id) and skip the value entirely).
//
// handle must be a pointer, map, slice, or chan — a kind reflect.Value.Pointer
// can extract a stable address from. Value-kind types that still want
// sharing must go through ContentIDOf with a caller-computed key.
func (t *Table) IDOf(handle any) (id int32, first bool) {
	v := reflect.ValueOf(handle)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
	default:
		panic("identity: IDOf requires a pointer/map/slice/chan handle; use ContentIDOf for value types")
	}

	ptr := v.Pointer()
	if id, ok := t.handles[ptr]; ok {
		return id, false
	}

	id = t.nextID
	t.nextID++
	t.handles[ptr] = id

	return id, true
}

// ContentIDOf is the value-type fallback for IDOf: the caller supplies
// a content key (typically xxhash of the value's canonical encoding)
// instead of a pointer address.
func (t *Table) ContentIDOf(key uint64) (id int32, first bool) {
	if id, ok := t.content[key]; ok {
		return id, false
	}

	id = t.nextID
	t.nextID++
	t.content[key] = id

	return id, true
}

// Reserve registers a placeholder for id before its value has been
// decoded, so a later REFERENCE(id) within the same blob resolves even
// if it appears while id's own value is still being read (a
// self-referential field).
func (t *Table) Reserve(id int32) *Slot {
	s := &Slot{id: id}
	t.slots[id] = s

	return s
}

// Resolve fills in the value a slot was reserved for. It is the
// serializer's responsibility to call Resolve as soon as the value's
// identity is established (typically right after allocating the empty
// shell, before recursing into fields).
func (s *Slot) Resolve(v any) {
	s.value = v
	s.resolved = true
}

// Get returns the value registered under id, if any. A slot that has
// been reserved but not yet resolved returns nil with ok true; once
// Resolve has run (BindSelf does this right after a user type's empty
// shell is allocated) it returns that value, even while its fields are
// still being decoded, which is what breaks cycles.
func (t *Table) Get(id int32) (any, bool) {
	s, ok := t.slots[id]
	if !ok {
		return nil, false
	}

	return s.value, true
}

// Resolve looks up id and returns errs.ErrUnresolvedIdentity if no
// Reserve call has registered it yet — a REFERENCE(id) that precedes
// its IDENTITY(id), which the ordering invariant forbids.
func (t *Table) Resolve(id int32) (any, error) {
	v, ok := t.Get(id)
	if !ok {
		return nil, errs.ErrUnresolvedIdentity
	}

	return v, nil
}
