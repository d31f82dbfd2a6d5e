package pofio

import "github.com/pofkit/pof/format"

// The methods in this file are the minimal exported surface navigator
// needs to walk a blob's structure without decoding every value: peek
// and consume a leading tag, read a packed length/index, and skip a
// value's body once its tag is already known. Everything else about
// Reader's internal position bookkeeping stays unexported.

// PeekTag returns the tag at the current position without consuming it.
func (r *Reader) PeekTag() (format.TypeID, error) { return r.peekTag() }

// ConsumeTag reads and consumes the tag at the current position.
func (r *Reader) ConsumeTag() (format.TypeID, error) { return r.readTag() }

// ReadLength reads a packed int32, the wire shape shared by container
// counts, sparse/property indices, and the terminal -1 sentinel.
func (r *Reader) ReadLength() (int32, error) { return r.readPacked32() }

// SkipValueBody discards the body belonging to an already-consumed tag.
func (r *Reader) SkipValueBody(tag format.TypeID) error { return r.skipBody(tag) }

// ReadValueBody decodes the body belonging to an already-consumed tag —
// the case a uniform container's elements need, since they carry no
// per-element tag byte of their own, only the body.
func (r *Reader) ReadValueBody(tag format.TypeID) (any, error) { return r.readBody(tag) }

// SkipValue consumes one full value (tag plus body) starting at the
// current position.
func (r *Reader) SkipValue() error { return r.Skip() }
