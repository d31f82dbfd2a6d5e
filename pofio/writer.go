package pofio

import (
	"math"
	"reflect"
	"slices"

	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/identity"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/rawtime"
	"github.com/pofkit/pof/varint"
)

// Writer is the primitive POF writer: one Write<Family> method per
// wire family from the data model, plus WriteObject for the
// user-type/container dispatch path. A Writer wraps a pool.ByteBuffer
// sink and is not safe for concurrent use.
type Writer struct {
	buf      *pool.ByteBuffer
	cfg      *Config
	identity *identity.Table
	resolver Resolver
}

// NewWriter creates a Writer appending to buf. resolver supplies the
// user-type-id/serializer lookups WriteObject needs for values that
// are not one of the built-in primitive families.
func NewWriter(buf *pool.ByteBuffer, resolver Resolver, opts ...Option) *Writer {
	cfg := newConfig(opts...)

	w := &Writer{buf: buf, cfg: cfg, resolver: resolver}
	if cfg.enableReferences {
		w.identity = identity.New()
	}

	return w
}

// Bytes returns the bytes written so far. The returned slice is valid
// until the next write.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) appendPacked32(v int32) {
	w.buf.B = varint.AppendInt32(w.buf.B, v)
}

func (w *Writer) appendPacked64(v int64) {
	w.buf.B = varint.AppendInt64(w.buf.B, v)
}

func (w *Writer) writeTag(id format.TypeID) {
	w.appendPacked32(int32(id))
}

// WriteBool writes a boolean as one of the compact sentinels; a
// boolean never carries a body.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.writeTag(format.V_BOOLEAN_TRUE)
	} else {
		w.writeTag(format.V_BOOLEAN_FALSE)
	}
}

// WriteOctet writes a single unsigned byte.
func (w *Writer) WriteOctet(b byte) {
	w.writeTag(format.T_OCTET)
	w.buf.MustWrite([]byte{b})
}

// WriteChar writes a single Unicode code point.
func (w *Writer) WriteChar(r rune) {
	w.writeTag(format.T_CHAR)
	w.appendPacked32(int32(r))
}

// WriteInt16 writes v, using a compact sentinel when v falls in [-1, 22].
func (w *Writer) WriteInt16(v int16) {
	if id, ok := format.IntSentinel(int64(v)); ok {
		w.writeTag(id)
		return
	}
	w.writeTag(format.T_INT16)
	w.appendPacked32(int32(v))
}

// WriteInt32 writes v, using a compact sentinel when v falls in [-1, 22].
func (w *Writer) WriteInt32(v int32) {
	if id, ok := format.IntSentinel(int64(v)); ok {
		w.writeTag(id)
		return
	}
	w.writeTag(format.T_INT32)
	w.appendPacked32(v)
}

// WriteInt64 writes v, using a compact sentinel when v falls in [-1, 22].
func (w *Writer) WriteInt64(v int64) {
	if id, ok := format.IntSentinel(v); ok {
		w.writeTag(id)
		return
	}
	w.writeTag(format.T_INT64)
	w.appendPacked64(v)
}

// WriteFloat32 writes v, folding NaN/+Inf/-Inf into their compact
// sentinels instead of IEEE-754 bit patterns.
func (w *Writer) WriteFloat32(v float32) {
	switch {
	case math.IsNaN(float64(v)):
		w.writeTag(format.V_FP_NAN)
	case math.IsInf(float64(v), 1):
		w.writeTag(format.V_FP_POS_INFINITY)
	case math.IsInf(float64(v), -1):
		w.writeTag(format.V_FP_NEG_INFINITY)
	default:
		w.writeTag(format.T_FLOAT32)
		w.WriteFloat32Body(v)
	}
}

// WriteFloat64 writes v, folding NaN/+Inf/-Inf into their compact
// sentinels instead of IEEE-754 bit patterns.
func (w *Writer) WriteFloat64(v float64) {
	switch {
	case math.IsNaN(v):
		w.writeTag(format.V_FP_NAN)
	case math.IsInf(v, 1):
		w.writeTag(format.V_FP_POS_INFINITY)
	case math.IsInf(v, -1):
		w.writeTag(format.V_FP_NEG_INFINITY)
	default:
		w.writeTag(format.T_FLOAT64)
		w.WriteFloat64Body(v)
	}
}

// WriteOctetString writes a length-prefixed binary blob.
func (w *Writer) WriteOctetString(data []byte) {
	w.writeTag(format.T_OCTET_STRING)
	w.appendPacked32(int32(len(data)))
	w.buf.MustWrite(data)
}

// WriteCharString writes a length-prefixed UTF-8 string, using the
// zero-length sentinel for "".
func (w *Writer) WriteCharString(s string) {
	if len(s) == 0 {
		w.writeTag(format.V_STRING_ZERO_LENGTH)
		return
	}
	w.writeTag(format.T_CHAR_STRING)
	w.WriteCharStringBody(s)
}

// WriteDate writes a calendar date.
func (w *Writer) WriteDate(d rawtime.RawDate) {
	w.writeTag(format.T_DATE)
	w.writeDateBody(d)
}

func (w *Writer) writeDateBody(d rawtime.RawDate) {
	w.appendPacked32(d.Year)
	w.appendPacked32(d.Month)
	w.appendPacked32(d.Day)
}

func (w *Writer) writeTimeBody(t rawtime.RawTime) {
	w.appendPacked32(t.Hour)
	w.appendPacked32(t.Minute)
	w.appendPacked32(t.Second)
	w.appendPacked32(t.Nanos)

	if t.HasZone {
		w.buf.MustWrite([]byte{1})
		w.appendPacked32(t.ZoneOffsetMinutes)
	} else {
		w.buf.MustWrite([]byte{0})
	}
}

// WriteTime writes a time-of-day, optionally zone-qualified.
func (w *Writer) WriteTime(t rawtime.RawTime) {
	w.writeTag(format.T_TIME)
	w.writeTimeBody(t)
}

// WriteDateTime writes a combined date and time-of-day.
func (w *Writer) WriteDateTime(dt rawtime.RawDateTime) {
	w.writeTag(format.T_DATETIME)
	w.writeDateBody(dt.Date)
	w.writeTimeBody(dt.Time)
}

// WriteYearMonthInterval writes a calendar-relative interval.
func (w *Writer) WriteYearMonthInterval(i rawtime.RawYearMonthInterval) {
	w.writeTag(format.T_YEAR_MONTH_INTERVAL)
	w.appendPacked32(i.Years)
	w.appendPacked32(i.Months)
}

// WriteDayTimeInterval writes a fixed-duration interval.
func (w *Writer) WriteDayTimeInterval(i rawtime.RawDayTimeInterval) {
	w.writeTag(format.T_DAY_TIME_INTERVAL)
	w.appendPacked32(i.Days)
	w.appendPacked32(i.Hours)
	w.appendPacked32(i.Minutes)
	w.appendPacked32(i.Seconds)
	w.appendPacked32(i.Nanos)
}

// Body-only writers: no leading tag. These back uniform-element
// containers, whose children carry only the body (spec's
// "uniform-* optimization").

func (w *Writer) WriteBoolBody(b bool) {
	if b {
		w.buf.MustWrite([]byte{1})
	} else {
		w.buf.MustWrite([]byte{0})
	}
}

func (w *Writer) WriteOctetBody(b byte) { w.buf.MustWrite([]byte{b}) }

func (w *Writer) WriteInt32Body(v int32) { w.appendPacked32(v) }

func (w *Writer) WriteInt64Body(v int64) { w.appendPacked64(v) }

func (w *Writer) WriteFloat32Body(v float32) {
	var buf [4]byte
	w.cfg.engine.PutUint32(buf[:], math.Float32bits(v))
	w.buf.MustWrite(buf[:])
}

func (w *Writer) WriteFloat64Body(v float64) {
	var buf [8]byte
	w.cfg.engine.PutUint64(buf[:], math.Float64bits(v))
	w.buf.MustWrite(buf[:])
}

func (w *Writer) WriteCharStringBody(s string) {
	w.appendPacked32(int32(len(s)))
	w.buf.MustWrite([]byte(s))
}

// WriteObject writes v, dispatching on its Go type: the built-in
// primitive families get their matching Write<Family> call; anything
// else is treated as a user type and routed through Resolver plus
// identity/reference tracking, if enabled.
func (w *Writer) WriteObject(v any) error {
	switch val := v.(type) {
	case nil:
		w.writeTag(format.V_REFERENCE_NULL)
	case bool:
		w.WriteBool(val)
	case byte:
		w.WriteOctet(val)
	case int16:
		w.WriteInt16(val)
	case int32:
		w.WriteInt32(val)
	case int64:
		w.WriteInt64(val)
	case int:
		w.WriteInt64(int64(val))
	case float32:
		w.WriteFloat32(val)
	case float64:
		w.WriteFloat64(val)
	case []byte:
		w.WriteOctetString(val)
	case string:
		w.WriteCharString(val)
	case rawtime.RawDate:
		w.WriteDate(val)
	case rawtime.RawTime:
		w.WriteTime(val)
	case rawtime.RawDateTime:
		w.WriteDateTime(val)
	case rawtime.RawYearMonthInterval:
		w.WriteYearMonthInterval(val)
	case rawtime.RawDayTimeInterval:
		w.WriteDayTimeInterval(val)
	default:
		return w.writeUserObject(v)
	}

	return nil
}

func isReferenceEligible(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func (w *Writer) writeUserObject(v any) error {
	if w.identity != nil && isReferenceEligible(v) {
		id, first := w.identity.IDOf(v)
		if !first {
			w.writeTag(format.T_REFERENCE)
			w.appendPacked32(id)
			return nil
		}
		w.writeTag(format.T_IDENTITY)
		w.appendPacked32(id)
	}

	typeID, err := w.resolver.UserTypeID(v)
	if err != nil {
		return err
	}
	ser, err := w.resolver.Serializer(typeID)
	if err != nil {
		return err
	}

	w.writeTag(typeID)
	w.appendPacked32(ser.VersionID())

	utw := newUserTypeWriter(w)
	if err := ser.Encode(utw, v); err != nil {
		return err
	}
	if !utw.closed {
		return utw.WriteRemainder(nil)
	}

	return nil
}

// WriteArray writes a heterogeneous fixed-length array.
func (w *Writer) WriteArray(elems []any) error {
	w.writeTag(format.T_ARRAY)
	w.appendPacked32(int32(len(elems)))
	for _, e := range elems {
		if err := w.WriteObject(e); err != nil {
			return err
		}
	}

	return nil
}

// WriteCollection writes a heterogeneous ordered collection; the wire
// shape is identical to WriteArray, the distinction is the logical
// container the caller had in hand.
func (w *Writer) WriteCollection(elems []any) error {
	w.writeTag(format.T_COLLECTION)
	w.appendPacked32(int32(len(elems)))
	for _, e := range elems {
		if err := w.WriteObject(e); err != nil {
			return err
		}
	}

	return nil
}

// WriteUniformCollection writes a uniform ordered collection whose
// elements all share elemType; the wire shape is identical to
// WriteUniformArray, the distinction is the logical container the
// caller had in hand.
func (w *Writer) WriteUniformCollection(elemType format.TypeID, n int, encodeElem func(i int) error) error {
	w.writeTag(format.T_UNIFORM_COLLECTION)
	w.writeTag(elemType)
	w.appendPacked32(int32(n))
	for i := range n {
		if err := encodeElem(i); err != nil {
			return err
		}
	}

	return nil
}

// WriteUniformArray writes a fixed-length array whose n elements all
// share elemType. encodeElem is called once per element and must write
// exactly the body (no tag) via one of the Write<Family>Body helpers.
func (w *Writer) WriteUniformArray(elemType format.TypeID, n int, encodeElem func(i int) error) error {
	w.writeTag(format.T_UNIFORM_ARRAY)
	w.writeTag(elemType)
	w.appendPacked32(int32(n))
	for i := range n {
		if err := encodeElem(i); err != nil {
			return err
		}
	}

	return nil
}

// WriteSparseArray writes entries keyed by non-negative index, in
// increasing index order, terminated by packed(-1). Absent indices
// materialize as nil cursors on read.
func (w *Writer) WriteSparseArray(entries map[int32]any) error {
	w.writeTag(format.T_SPARSE_ARRAY)

	indices := make([]int32, 0, len(entries))
	for idx := range entries {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	for _, idx := range indices {
		w.appendPacked32(idx)
		if err := w.WriteObject(entries[idx]); err != nil {
			return err
		}
	}
	w.appendPacked32(-1)

	return nil
}

// WriteUniformSparseArray writes entries keyed by non-negative index, in
// increasing index order, terminated by packed(-1); every entry's body
// shares elemType and carries no tag of its own. encodeBody must write
// exactly the body for the value at idx via a Write<Family>Body helper.
func (w *Writer) WriteUniformSparseArray(elemType format.TypeID, entries map[int32]any, encodeBody func(idx int32, v any) error) error {
	w.writeTag(format.T_UNIFORM_SPARSE_ARRAY)
	w.writeTag(elemType)

	indices := make([]int32, 0, len(entries))
	for idx := range entries {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	for _, idx := range indices {
		w.appendPacked32(idx)
		if err := encodeBody(idx, entries[idx]); err != nil {
			return err
		}
	}
	w.appendPacked32(-1)

	return nil
}
