// Package navigator implements PofValue, a lazy, zero-copy cursor over
// an encoded blob: it parses only the tag of the value it is opened
// over, and only descends into a child's header when Child is called,
// rather than decoding the whole tree up front.
package navigator

import (
	"fmt"
	"slices"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/registry"
)

func newSink() *pool.ByteBuffer { return pool.NewByteBuffer(256) }

// root holds the blob shared by every Cursor descended from one Open
// call, plus the pending edits SetValue accumulates for ApplyChanges.
type root struct {
	data  []byte
	ctx   *registry.Context
	edits []Edit
}

// Edit is one pending byte-range replacement: the half-open range
// [Start, End) of the original blob, replaced verbatim by Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// Delta is the edit list Changes returns without applying it.
type Delta struct {
	Edits []Edit
}

// Cursor is a position within a blob: the byte range [start, end) of
// one value, plus the leading tag already peeked when the cursor was
// created.
type Cursor struct {
	root       *root
	start, end int
	tag        format.TypeID
	// uniform is true when this cursor was produced as an element of a
	// uniform array/sparse array: span is body-only (no tag byte of its
	// own), and tag was supplied by the container's single elemType
	// rather than read from the span.
	uniform bool
}

// Open parses only the outer tag of data and returns a Cursor over the
// whole value. ctx resolves user-type tags encountered by Value/Child.
func Open(data []byte, ctx *registry.Context) (*Cursor, error) {
	r := pofio.NewReader(data, ctx)

	tag, err := r.PeekTag()
	if err != nil {
		return nil, err
	}
	if err := r.SkipValue(); err != nil {
		return nil, err
	}

	return &Cursor{
		root: &root{data: data, ctx: ctx},
		end:  r.Pos(),
		tag:  tag,
	}, nil
}

// Tag returns the leading type-id of the value this cursor points to.
func (c *Cursor) Tag() format.TypeID { return c.tag }

// span is the cursor's byte range within its root blob.
func (c *Cursor) span() []byte { return c.root.data[c.start:c.end] }

// Value decodes the value this cursor points to. If requiredType is
// given, the cursor's tag must equal one of them or Value fails with
// errs.ErrTypeMismatch.
func (c *Cursor) Value(requiredType ...format.TypeID) (any, error) {
	if len(requiredType) > 0 {
		ok := false
		for _, t := range requiredType {
			if t == c.tag {
				ok = true
				break
			}
		}
		if !ok {
			return nil, errs.ErrTypeMismatch
		}
	}

	if c.uniform {
		r := pofio.NewReader(c.span(), c.root.ctx)
		return r.ReadValueBody(c.tag)
	}

	r := pofio.NewReader(c.span(), c.root.ctx)
	return r.ReadObject()
}

// Child navigates to the value at index within this cursor's container
// (array, collection, sparse array, or user-type property frame).
// A present-but-absent index (a sparse array/user-type frame that
// simply never wrote it) returns (nil, nil), matching the wire format's
// own absent-index semantics; an index out of range for a fixed-length
// array or collection fails with errs.ErrNavigation.
func (c *Cursor) Child(index int32) (*Cursor, error) {
	r := pofio.NewReader(c.span(), c.root.ctx)

	tag, err := r.ConsumeTag()
	if err != nil {
		return nil, err
	}

	switch {
	case tag == format.T_ARRAY || tag == format.T_COLLECTION:
		return c.childByPosition(r, index, nil)
	case tag == format.T_UNIFORM_ARRAY || tag == format.T_UNIFORM_COLLECTION:
		elemTag, err := r.ConsumeTag()
		if err != nil {
			return nil, err
		}
		return c.childByPosition(r, index, &elemTag)
	case tag == format.T_SPARSE_ARRAY:
		return c.childByIndex(r, index, nil)
	case tag == format.T_UNIFORM_SPARSE_ARRAY:
		elemTag, err := r.ConsumeTag()
		if err != nil {
			return nil, err
		}
		return c.childByIndex(r, index, &elemTag)
	case tag.IsUserType():
		if _, err := r.ReadLength(); err != nil { // version-id
			return nil, err
		}
		return c.childByIndex(r, index, nil)
	default:
		return nil, fmt.Errorf("%w: %s has no children", errs.ErrNavigation, tag)
	}
}

// childByPosition walks a fixed-length, 0-based sequence (array,
// collection, or uniform array) looking for position index.
func (c *Cursor) childByPosition(r *pofio.Reader, index int32, elemTag *format.TypeID) (*Cursor, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrNavigation, index, n)
	}

	for i := int32(0); i < n; i++ {
		valStart := r.Pos()
		var valTag format.TypeID
		if elemTag == nil {
			valTag, err = r.PeekTag()
			if err != nil {
				return nil, err
			}
			if err := r.SkipValue(); err != nil {
				return nil, err
			}
		} else {
			valTag = *elemTag
			if err := r.SkipValueBody(valTag); err != nil {
				return nil, err
			}
		}

		if i == index {
			return &Cursor{
				root: c.root, start: c.start + valStart, end: c.start + r.Pos(),
				tag: valTag, uniform: elemTag != nil,
			}, nil
		}
	}

	return nil, nil
}

// childByIndex walks a (index, value)* … -1 sequence (sparse array or
// user-type property frame) looking for the entry keyed by index.
func (c *Cursor) childByIndex(r *pofio.Reader, index int32, elemTag *format.TypeID) (*Cursor, error) {
	for {
		idx, err := r.ReadLength()
		if err != nil {
			return nil, err
		}
		if idx == -1 {
			return nil, nil
		}

		valStart := r.Pos()
		var valTag format.TypeID
		if elemTag == nil {
			valTag, err = r.PeekTag()
			if err != nil {
				return nil, err
			}
			if err := r.SkipValue(); err != nil {
				return nil, err
			}
		} else {
			valTag = *elemTag
			if err := r.SkipValueBody(valTag); err != nil {
				return nil, err
			}
		}

		if idx == index {
			return &Cursor{
				root: c.root, start: c.start + valStart, end: c.start + r.Pos(),
				tag: valTag, uniform: elemTag != nil,
			}, nil
		}
	}
}

// SetValue queues v as the replacement for this cursor's byte range.
// The edit is not visible in the blob until ApplyChanges is called on
// any cursor sharing this root.
func (c *Cursor) SetValue(v any) error {
	w := pofio.NewWriter(newSink(), c.root.ctx)
	if err := w.WriteObject(v); err != nil {
		return err
	}

	c.root.edits = append(c.root.edits, Edit{Start: c.start, End: c.end, Replacement: w.Bytes()})

	return nil
}

// ApplyChanges splices every queued SetValue edit into a fresh copy of
// the root blob and returns it; the original blob is untouched. Edits
// are sorted by start offset before splicing; two edits whose ranges overlap (a parent
// and one of its own descendants both mutated) are rejected, since
// splicing both unambiguously would require re-deriving one from the
// other.
func (c *Cursor) ApplyChanges() ([]byte, error) {
	edits := append([]Edit(nil), c.root.edits...)
	sortEdits(edits)

	if err := checkNonOverlapping(edits); err != nil {
		return nil, err
	}

	buf := pool.GetPatchBuffer()
	defer pool.PutPatchBuffer(buf)

	pos := 0
	for _, e := range edits {
		buf.MustWrite(c.root.data[pos:e.Start])
		buf.MustWrite(e.Replacement)
		pos = e.End
	}
	buf.MustWrite(c.root.data[pos:])

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Changes returns the queued edits without applying them, so a caller
// can ship a binary delta instead of a full re-encoded blob.
func (c *Cursor) Changes() (Delta, error) {
	edits := append([]Edit(nil), c.root.edits...)
	sortEdits(edits)

	if err := checkNonOverlapping(edits); err != nil {
		return Delta{}, err
	}

	return Delta{Edits: edits}, nil
}

func sortEdits(edits []Edit) {
	slices.SortFunc(edits, func(a, b Edit) int { return a.Start - b.Start })
}

func checkNonOverlapping(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].Start < edits[i-1].End {
			return errs.ErrAmbiguousMutation
		}
	}

	return nil
}
