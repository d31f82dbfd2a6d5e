package pofio

import (
	"math"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/identity"
	"github.com/pofkit/pof/rawtime"
	"github.com/pofkit/pof/varint"
)

// Reader is the primitive POF reader, mirroring Writer one family at a
// time. It is not safe for concurrent use.
type Reader struct {
	data     []byte
	pos      int
	cfg      *Config
	identity *identity.Table
	resolver Resolver
}

// NewReader creates a Reader over data. resolver supplies the
// type-id-to-serializer lookup ReadObject needs for non-primitive tags.
func NewReader(data []byte, resolver Resolver, opts ...Option) *Reader {
	cfg := newConfig(opts...)

	return &Reader{
		data:     data,
		cfg:      cfg,
		identity: identity.New(),
		resolver: resolver,
	}
}

// Pos returns the current byte offset into the underlying data.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total length of the underlying data.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the unconsumed tail of the underlying data.
func (r *Reader) Remaining() []byte { return r.data[r.pos:] }

// Data returns the full underlying data the Reader was opened over.
func (r *Reader) Data() []byte { return r.data }

func (r *Reader) readTag() (format.TypeID, error) {
	v, n, err := varint.ReadInt32(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n

	return format.TypeID(v), nil
}

func (r *Reader) peekTag() (format.TypeID, error) {
	v, _, err := varint.ReadInt32(r.data[r.pos:])
	return format.TypeID(v), err
}

func (r *Reader) consumeTag() {
	_, n, _ := varint.ReadInt32(r.data[r.pos:])
	r.pos += n
}

func (r *Reader) readPacked32() (int32, error) {
	v, n, err := varint.ReadInt32(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n

	return v, nil
}

func (r *Reader) readPacked64() (int64, error) {
	v, n, err := varint.ReadInt64(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n

	return v, nil
}

// ReadBool reads a boolean sentinel.
func (r *Reader) ReadBool() (bool, error) {
	tag, err := r.readTag()
	if err != nil {
		return false, err
	}

	switch tag {
	case format.V_BOOLEAN_TRUE:
		return true, nil
	case format.V_BOOLEAN_FALSE:
		return false, nil
	default:
		return false, errs.ErrTypeMismatch
	}
}

// ReadOctet reads a single unsigned byte.
func (r *Reader) ReadOctet() (byte, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}
	if tag != format.T_OCTET {
		return 0, errs.ErrTypeMismatch
	}
	if r.pos >= len(r.data) {
		return 0, errs.ErrMalformedStream
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadChar reads a single Unicode code point.
func (r *Reader) ReadChar() (rune, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}
	if tag != format.T_CHAR {
		return 0, errs.ErrTypeMismatch
	}

	v, err := r.readPacked32()
	if err != nil {
		return 0, err
	}

	return rune(v), nil
}

func (r *Reader) readIntFamily() (int64, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}
	if n, ok := format.SentinelInt(tag); ok {
		return n, nil
	}

	switch tag {
	case format.T_INT16, format.T_INT32:
		v, err := r.readPacked32()
		return int64(v), err
	case format.T_INT64:
		return r.readPacked64()
	default:
		return 0, errs.ErrTypeMismatch
	}
}

// ReadInt16 reads an integer value, narrowing if it fits.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.readIntFamily()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, errs.ErrTypeMismatch
	}

	return int16(v), nil
}

// ReadInt32 reads an integer value, narrowing if it fits.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.readIntFamily()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errs.ErrTypeMismatch
	}

	return int32(v), nil
}

// ReadInt64 reads an integer value.
func (r *Reader) ReadInt64() (int64, error) {
	return r.readIntFamily()
}

// ReadFloat32 reads a float value, recognizing the NaN/+Inf/-Inf sentinels.
func (r *Reader) ReadFloat32() (float32, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}

	switch tag {
	case format.V_FP_NAN:
		return float32(math.NaN()), nil
	case format.V_FP_POS_INFINITY:
		return float32(math.Inf(1)), nil
	case format.V_FP_NEG_INFINITY:
		return float32(math.Inf(-1)), nil
	case format.T_FLOAT32:
		if r.pos+4 > len(r.data) {
			return 0, errs.ErrMalformedStream
		}
		bits := r.cfg.engine.Uint32(r.data[r.pos : r.pos+4])
		r.pos += 4

		return math.Float32frombits(bits), nil
	default:
		return 0, errs.ErrTypeMismatch
	}
}

// ReadFloat64 reads a float value, recognizing the NaN/+Inf/-Inf sentinels.
func (r *Reader) ReadFloat64() (float64, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}

	switch tag {
	case format.V_FP_NAN:
		return math.NaN(), nil
	case format.V_FP_POS_INFINITY:
		return math.Inf(1), nil
	case format.V_FP_NEG_INFINITY:
		return math.Inf(-1), nil
	case format.T_FLOAT64:
		if r.pos+8 > len(r.data) {
			return 0, errs.ErrMalformedStream
		}
		bits := r.cfg.engine.Uint64(r.data[r.pos : r.pos+8])
		r.pos += 8

		return math.Float64frombits(bits), nil
	default:
		return 0, errs.ErrTypeMismatch
	}
}

// ReadOctetString reads a length-prefixed binary blob.
func (r *Reader) ReadOctetString() ([]byte, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_OCTET_STRING {
		return nil, errs.ErrTypeMismatch
	}

	return r.ReadOctetStringBody()
}

func (r *Reader) ReadOctetStringBody() ([]byte, error) {
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}
	if n < 0 || r.pos+int(n) > len(r.data) {
		return nil, errs.ErrMalformedStream
	}

	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+int(n)])
	r.pos += int(n)

	return out, nil
}

// ReadCharString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadCharString() (string, error) {
	tag, err := r.readTag()
	if err != nil {
		return "", err
	}
	if tag == format.V_STRING_ZERO_LENGTH {
		return "", nil
	}
	if tag != format.T_CHAR_STRING {
		return "", errs.ErrTypeMismatch
	}

	return r.ReadCharStringBody()
}

// ReadDate reads a calendar date.
func (r *Reader) ReadDate() (rawtime.RawDate, error) {
	tag, err := r.readTag()
	if err != nil {
		return rawtime.RawDate{}, err
	}
	if tag != format.T_DATE {
		return rawtime.RawDate{}, errs.ErrTypeMismatch
	}

	return r.readDateBody()
}

func (r *Reader) readDateBody() (rawtime.RawDate, error) {
	year, err := r.readPacked32()
	if err != nil {
		return rawtime.RawDate{}, err
	}
	month, err := r.readPacked32()
	if err != nil {
		return rawtime.RawDate{}, err
	}
	day, err := r.readPacked32()
	if err != nil {
		return rawtime.RawDate{}, err
	}

	return rawtime.RawDate{Year: year, Month: month, Day: day}, nil
}

func (r *Reader) readTimeBody() (rawtime.RawTime, error) {
	hour, err := r.readPacked32()
	if err != nil {
		return rawtime.RawTime{}, err
	}
	minute, err := r.readPacked32()
	if err != nil {
		return rawtime.RawTime{}, err
	}
	second, err := r.readPacked32()
	if err != nil {
		return rawtime.RawTime{}, err
	}
	nanos, err := r.readPacked32()
	if err != nil {
		return rawtime.RawTime{}, err
	}
	if r.pos >= len(r.data) {
		return rawtime.RawTime{}, errs.ErrMalformedStream
	}

	hasZone := r.data[r.pos] != 0
	r.pos++

	var offset int32
	if hasZone {
		offset, err = r.readPacked32()
		if err != nil {
			return rawtime.RawTime{}, err
		}
	}

	return rawtime.RawTime{
		Hour: hour, Minute: minute, Second: second, Nanos: nanos,
		HasZone: hasZone, ZoneOffsetMinutes: offset,
	}, nil
}

// ReadTime reads a time-of-day.
func (r *Reader) ReadTime() (rawtime.RawTime, error) {
	tag, err := r.readTag()
	if err != nil {
		return rawtime.RawTime{}, err
	}
	if tag != format.T_TIME {
		return rawtime.RawTime{}, errs.ErrTypeMismatch
	}

	return r.readTimeBody()
}

// ReadDateTime reads a combined date and time-of-day.
func (r *Reader) ReadDateTime() (rawtime.RawDateTime, error) {
	tag, err := r.readTag()
	if err != nil {
		return rawtime.RawDateTime{}, err
	}
	if tag != format.T_DATETIME {
		return rawtime.RawDateTime{}, errs.ErrTypeMismatch
	}

	d, err := r.readDateBody()
	if err != nil {
		return rawtime.RawDateTime{}, err
	}
	t, err := r.readTimeBody()
	if err != nil {
		return rawtime.RawDateTime{}, err
	}

	return rawtime.RawDateTime{Date: d, Time: t}, nil
}

// ReadYearMonthInterval reads a calendar-relative interval.
func (r *Reader) ReadYearMonthInterval() (rawtime.RawYearMonthInterval, error) {
	tag, err := r.readTag()
	if err != nil {
		return rawtime.RawYearMonthInterval{}, err
	}
	if tag != format.T_YEAR_MONTH_INTERVAL {
		return rawtime.RawYearMonthInterval{}, errs.ErrTypeMismatch
	}

	years, err := r.readPacked32()
	if err != nil {
		return rawtime.RawYearMonthInterval{}, err
	}
	months, err := r.readPacked32()
	if err != nil {
		return rawtime.RawYearMonthInterval{}, err
	}

	return rawtime.RawYearMonthInterval{Years: years, Months: months}, nil
}

// ReadDayTimeInterval reads a fixed-duration interval.
func (r *Reader) ReadDayTimeInterval() (rawtime.RawDayTimeInterval, error) {
	tag, err := r.readTag()
	if err != nil {
		return rawtime.RawDayTimeInterval{}, err
	}
	if tag != format.T_DAY_TIME_INTERVAL {
		return rawtime.RawDayTimeInterval{}, errs.ErrTypeMismatch
	}

	vals := make([]int32, 5)
	for i := range vals {
		v, err := r.readPacked32()
		if err != nil {
			return rawtime.RawDayTimeInterval{}, err
		}
		vals[i] = v
	}

	return rawtime.RawDayTimeInterval{
		Days: vals[0], Hours: vals[1], Minutes: vals[2], Seconds: vals[3], Nanos: vals[4],
	}, nil
}

// Body-only readers, mirroring Writer's Write<Family>Body helpers.

func (r *Reader) ReadBoolBody() (bool, error) {
	if r.pos >= len(r.data) {
		return false, errs.ErrMalformedStream
	}
	b := r.data[r.pos] != 0
	r.pos++

	return b, nil
}

func (r *Reader) ReadOctetBody() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errs.ErrMalformedStream
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *Reader) ReadInt32Body() (int32, error) { return r.readPacked32() }

func (r *Reader) ReadInt64Body() (int64, error) { return r.readPacked64() }

func (r *Reader) ReadFloat32Body() (float32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errs.ErrMalformedStream
	}
	bits := r.cfg.engine.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4

	return math.Float32frombits(bits), nil
}

func (r *Reader) ReadFloat64Body() (float64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errs.ErrMalformedStream
	}
	bits := r.cfg.engine.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return math.Float64frombits(bits), nil
}

func (r *Reader) ReadCharStringBody() (string, error) {
	n, err := r.readPacked32()
	if err != nil {
		return "", err
	}
	if n < 0 || r.pos+int(n) > len(r.data) {
		return "", errs.ErrMalformedStream
	}

	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)

	return s, nil
}

// ReadObject reads the next value off the stream regardless of family,
// dispatching on its leading tag. User types decode through Resolver;
// IDENTITY/REFERENCE tags are resolved transparently.
func (r *Reader) ReadObject() (any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}

	return r.readBody(tag)
}

// readBody decodes the value whose tag has already been consumed as
// tag. It is the decode-side mirror of skipBody: every family skipBody
// knows how to discard, readBody knows how to materialize, which is
// what lets a uniform container's body-only elements (no per-element
// tag, just the container's single leading elemType) decode through
// the same path as a normal tag-prefixed value.
func (r *Reader) readBody(tag format.TypeID) (any, error) {
	if n, ok := format.SentinelInt(tag); ok {
		return n, nil
	}

	switch tag {
	case format.V_REFERENCE_NULL:
		return nil, nil
	case format.T_REFERENCE:
		id, err := r.readPacked32()
		if err != nil {
			return nil, err
		}

		return r.identity.Resolve(id)
	case format.T_IDENTITY:
		id, err := r.readPacked32()
		if err != nil {
			return nil, err
		}

		slot := r.identity.Reserve(id)
		innerTag, err := r.readTag()
		if err != nil {
			return nil, err
		}

		var v any
		if innerTag.IsUserType() {
			v, err = r.readUserObjectBody(innerTag, slot)
		} else {
			v, err = r.readBody(innerTag)
		}
		if err != nil {
			return nil, err
		}
		slot.Resolve(v)

		return v, nil
	case format.V_BOOLEAN_TRUE:
		return true, nil
	case format.V_BOOLEAN_FALSE:
		return false, nil
	case format.T_OCTET:
		return r.ReadOctetBody()
	case format.T_CHAR:
		v, err := r.readPacked32()
		return rune(v), err
	case format.T_INT16, format.T_INT32:
		return r.ReadInt32Body()
	case format.T_INT64:
		return r.ReadInt64Body()
	case format.V_FP_NAN:
		return math.NaN(), nil
	case format.V_FP_POS_INFINITY:
		return math.Inf(1), nil
	case format.V_FP_NEG_INFINITY:
		return math.Inf(-1), nil
	case format.T_FLOAT32:
		return r.ReadFloat32Body()
	case format.T_FLOAT64:
		return r.ReadFloat64Body()
	case format.T_OCTET_STRING:
		return r.ReadOctetStringBody()
	case format.V_STRING_ZERO_LENGTH:
		return "", nil
	case format.T_CHAR_STRING:
		return r.ReadCharStringBody()
	case format.T_DATE:
		return r.readDateBody()
	case format.T_TIME:
		return r.readTimeBody()
	case format.T_DATETIME:
		d, err := r.readDateBody()
		if err != nil {
			return nil, err
		}
		t, err := r.readTimeBody()
		if err != nil {
			return nil, err
		}

		return rawtime.RawDateTime{Date: d, Time: t}, nil
	case format.T_YEAR_MONTH_INTERVAL:
		years, err := r.readPacked32()
		if err != nil {
			return nil, err
		}
		months, err := r.readPacked32()
		if err != nil {
			return nil, err
		}

		return rawtime.RawYearMonthInterval{Years: years, Months: months}, nil
	case format.T_DAY_TIME_INTERVAL:
		vals := make([]int32, 5)
		for i := range vals {
			v, err := r.readPacked32()
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}

		return rawtime.RawDayTimeInterval{
			Days: vals[0], Hours: vals[1], Minutes: vals[2], Seconds: vals[3], Nanos: vals[4],
		}, nil
	case format.V_COLLECTION_EMPTY:
		return []any{}, nil
	case format.T_ARRAY, format.T_COLLECTION:
		return r.readObjectSeq()
	case format.T_UNIFORM_ARRAY, format.T_UNIFORM_COLLECTION:
		return r.readUniformSeqBody()
	case format.T_SPARSE_ARRAY:
		return r.readSparseArrayBody()
	case format.T_UNIFORM_SPARSE_ARRAY:
		return r.readUniformSparseArrayBody()
	case format.T_MAP:
		return r.readMapBody()
	case format.T_UNIFORM_KEYS_MAP:
		keyType, err := r.readTag()
		if err != nil {
			return nil, err
		}

		return r.readUniformKeysMapBody(keyType, r.readBody)
	case format.T_UNIFORM_MAP:
		keyType, err := r.readTag()
		if err != nil {
			return nil, err
		}
		valueType, err := r.readTag()
		if err != nil {
			return nil, err
		}

		return r.readUniformMapBody(keyType, valueType, r.readBody, r.readBody)
	default:
		if tag.IsUserType() {
			return r.readUserObjectBody(tag, nil)
		}
		if tag.IsReserved() {
			return nil, errs.ErrUnsupportedType
		}

		return nil, errs.ErrUnknownType
	}
}

// readUserObjectBody decodes a user-type frame whose tag has already
// been consumed by the caller. slot is non-nil when this frame sits
// directly under an IDENTITY tag; it is handed to the UserTypeReader
// so a serializer can register its shell (UserTypeReader.BindSelf)
// before decoding fields, letting a self-referential field resolve to
// the enclosing value instead of a forward reference error.
func (r *Reader) readUserObjectBody(tag format.TypeID, slot *identity.Slot) (any, error) {
	versionID, err := r.readPacked32()
	if err != nil {
		return nil, err
	}

	ser, err := r.resolver.Serializer(tag)
	if err != nil {
		return nil, err
	}

	utr := newUserTypeReader(r, versionID, slot)
	v, err := ser.Decode(utr)
	if err != nil {
		return nil, err
	}
	if !utr.ended {
		if _, err := utr.ReadRemainder(); err != nil {
			return nil, err
		}
	}
	if slot != nil {
		slot.Resolve(v)
	}

	return v, nil
}

// ReadArray reads a heterogeneous fixed-length array.
func (r *Reader) ReadArray() ([]any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_ARRAY {
		return nil, errs.ErrTypeMismatch
	}

	return r.readObjectSeq()
}

// ReadCollection reads a heterogeneous ordered collection.
func (r *Reader) ReadCollection() ([]any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_COLLECTION {
		return nil, errs.ErrTypeMismatch
	}

	return r.readObjectSeq()
}

func (r *Reader) readObjectSeq() ([]any, error) {
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errs.ErrMalformedStream
	}

	out := make([]any, n)
	for i := range out {
		v, err := r.ReadObject()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// ReadUniformArrayHeader reads the T_UNIFORM_ARRAY tag, element type,
// and length; the caller then reads n bodies with the matching
// Read<Family>Body method.
func (r *Reader) ReadUniformArrayHeader() (format.TypeID, int32, error) {
	tag, err := r.readTag()
	if err != nil {
		return 0, 0, err
	}
	if tag != format.T_UNIFORM_ARRAY {
		return 0, 0, errs.ErrTypeMismatch
	}

	elemTag, err := r.readTag()
	if err != nil {
		return 0, 0, err
	}
	n, err := r.readPacked32()
	if err != nil {
		return 0, 0, err
	}

	return elemTag, n, nil
}

// ReadUniformArray reads a T_UNIFORM_ARRAY into a slice, decoding every
// body with the element type the header reports.
func (r *Reader) ReadUniformArray() ([]any, error) {
	elemTag, n, err := r.ReadUniformArrayHeader()
	if err != nil {
		return nil, err
	}

	return r.readUniformElems(elemTag, n)
}

// ReadUniformCollection reads a T_UNIFORM_COLLECTION into a slice.
func (r *Reader) ReadUniformCollection() ([]any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_UNIFORM_COLLECTION {
		return nil, errs.ErrTypeMismatch
	}

	return r.readUniformSeqBody()
}

// readUniformSeqBody decodes a uniform array/collection body (elemType,
// length, then n bodies) whose own tag has already been consumed.
func (r *Reader) readUniformSeqBody() ([]any, error) {
	elemTag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}

	return r.readUniformElems(elemTag, n)
}

func (r *Reader) readUniformElems(elemTag format.TypeID, n int32) ([]any, error) {
	if n < 0 {
		return nil, errs.ErrMalformedStream
	}

	out := make([]any, n)
	for i := range out {
		v, err := r.readBody(elemTag)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// ReadUniformSparseArray reads a T_UNIFORM_SPARSE_ARRAY into a map of
// index to value, decoding every body with the element type the header
// reports.
func (r *Reader) ReadUniformSparseArray() (map[int32]any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_UNIFORM_SPARSE_ARRAY {
		return nil, errs.ErrTypeMismatch
	}

	return r.readUniformSparseArrayBody()
}

// readUniformSparseArrayBody decodes a T_UNIFORM_SPARSE_ARRAY body
// (elemType, then (index, body) pairs terminated by -1) whose own tag
// has already been consumed.
func (r *Reader) readUniformSparseArrayBody() (map[int32]any, error) {
	elemTag, err := r.readTag()
	if err != nil {
		return nil, err
	}

	out := make(map[int32]any)
	for {
		idx, err := r.readPacked32()
		if err != nil {
			return nil, err
		}
		if idx == -1 {
			break
		}

		v, err := r.readBody(elemTag)
		if err != nil {
			return nil, err
		}
		out[idx] = v
	}

	return out, nil
}

// Skip discards the next value of any family without materializing it.
func (r *Reader) Skip() error {
	tag, err := r.readTag()
	if err != nil {
		return err
	}

	return r.skipBody(tag)
}

func (r *Reader) skipBytes(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errs.ErrMalformedStream
	}
	r.pos += n

	return nil
}

func (r *Reader) skipPacked(k int) error {
	for range k {
		if _, err := r.readPacked64(); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reader) skipTimeBody() error {
	if err := r.skipPacked(4); err != nil {
		return err
	}
	if r.pos >= len(r.data) {
		return errs.ErrMalformedStream
	}
	hasZone := r.data[r.pos] != 0
	r.pos++
	if hasZone {
		if _, err := r.readPacked32(); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reader) skipUserTypeFrame() error {
	if _, err := r.readPacked32(); err != nil { // version-id
		return err
	}
	for {
		idx, err := r.readPacked32()
		if err != nil {
			return err
		}
		if idx == -1 {
			return nil
		}
		if err := r.Skip(); err != nil {
			return err
		}
	}
}

// skipBody discards the body belonging to an already-consumed tag.
func (r *Reader) skipBody(tag format.TypeID) error {
	if _, ok := format.SentinelInt(tag); ok {
		return nil
	}

	switch tag {
	case format.V_BOOLEAN_TRUE, format.V_BOOLEAN_FALSE,
		format.V_STRING_ZERO_LENGTH, format.V_COLLECTION_EMPTY,
		format.V_REFERENCE_NULL, format.V_FP_POS_INFINITY,
		format.V_FP_NEG_INFINITY, format.V_FP_NAN:
		return nil
	case format.T_OCTET:
		return r.skipBytes(1)
	case format.T_CHAR, format.T_INT16, format.T_INT32:
		_, err := r.readPacked32()
		return err
	case format.T_INT64:
		_, err := r.readPacked64()
		return err
	case format.T_FLOAT32:
		return r.skipBytes(4)
	case format.T_FLOAT64:
		return r.skipBytes(8)
	case format.T_OCTET_STRING, format.T_CHAR_STRING:
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		return r.skipBytes(int(n))
	case format.T_DATE:
		return r.skipPacked(3)
	case format.T_TIME:
		return r.skipTimeBody()
	case format.T_DATETIME:
		if err := r.skipPacked(3); err != nil {
			return err
		}
		return r.skipTimeBody()
	case format.T_YEAR_MONTH_INTERVAL:
		return r.skipPacked(2)
	case format.T_DAY_TIME_INTERVAL:
		return r.skipPacked(5)
	case format.T_REFERENCE:
		_, err := r.readPacked32()
		return err
	case format.T_IDENTITY:
		if _, err := r.readPacked32(); err != nil {
			return err
		}
		innerTag, err := r.readTag()
		if err != nil {
			return err
		}
		return r.skipBody(innerTag)
	case format.T_ARRAY, format.T_COLLECTION:
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case format.T_UNIFORM_ARRAY:
		elemTag, err := r.readTag()
		if err != nil {
			return err
		}
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.skipBody(elemTag); err != nil {
				return err
			}
		}
		return nil
	case format.T_UNIFORM_COLLECTION:
		elemTag, err := r.readTag()
		if err != nil {
			return err
		}
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.skipBody(elemTag); err != nil {
				return err
			}
		}
		return nil
	case format.T_SPARSE_ARRAY:
		for {
			idx, err := r.readPacked32()
			if err != nil {
				return err
			}
			if idx == -1 {
				return nil
			}
			if err := r.Skip(); err != nil {
				return err
			}
		}
	case format.T_UNIFORM_SPARSE_ARRAY:
		elemTag, err := r.readTag()
		if err != nil {
			return err
		}
		for {
			idx, err := r.readPacked32()
			if err != nil {
				return err
			}
			if idx == -1 {
				return nil
			}
			if err := r.skipBody(elemTag); err != nil {
				return err
			}
		}
	case format.T_MAP:
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.Skip(); err != nil {
				return err
			}
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case format.T_UNIFORM_KEYS_MAP:
		keyTag, err := r.readTag()
		if err != nil {
			return err
		}
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.skipBody(keyTag); err != nil {
				return err
			}
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case format.T_UNIFORM_MAP:
		keyTag, err := r.readTag()
		if err != nil {
			return err
		}
		valTag, err := r.readTag()
		if err != nil {
			return err
		}
		n, err := r.readPacked32()
		if err != nil {
			return err
		}
		for range int(n) {
			if err := r.skipBody(keyTag); err != nil {
				return err
			}
			if err := r.skipBody(valTag); err != nil {
				return err
			}
		}
		return nil
	default:
		if tag.IsUserType() {
			return r.skipUserTypeFrame()
		}
		if tag.IsReserved() {
			return errs.ErrUnsupportedType
		}

		return errs.ErrUnknownType
	}
}

// ReadSparseArray reads a (index, value) sequence into a map.
func (r *Reader) ReadSparseArray() (map[int32]any, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_SPARSE_ARRAY {
		return nil, errs.ErrTypeMismatch
	}

	return r.readSparseArrayBody()
}

// readSparseArrayBody decodes a T_SPARSE_ARRAY body ((index, value)
// pairs terminated by -1) whose own tag has already been consumed.
func (r *Reader) readSparseArrayBody() (map[int32]any, error) {
	out := make(map[int32]any)
	for {
		idx, err := r.readPacked32()
		if err != nil {
			return nil, err
		}
		if idx == -1 {
			break
		}

		v, err := r.ReadObject()
		if err != nil {
			return nil, err
		}
		out[idx] = v
	}

	return out, nil
}
