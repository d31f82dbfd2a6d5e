package pofio

import (
	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/identity"
	"github.com/pofkit/pof/rawtime"
	"github.com/pofkit/pof/varint"
)

// UserTypeWriter writes the property frame of one user type:
// {index, value}* terminated by -1. Property indices must strictly
// increase; callers close the frame with WriteRemainder (nil is fine
// when there is none).
type UserTypeWriter struct {
	w            *Writer
	currentIndex int32
	closed       bool
}

func newUserTypeWriter(w *Writer) *UserTypeWriter {
	return &UserTypeWriter{w: w, currentIndex: -1}
}

func (u *UserTypeWriter) checkOrder(index int32) error {
	if u.closed {
		return errs.ErrFrameClosed
	}
	if index < 0 || index <= u.currentIndex {
		return errs.ErrInvalidOrder
	}

	return nil
}

func (u *UserTypeWriter) writeIndex(index int32) {
	u.w.appendPacked32(index)
	u.currentIndex = index
}

func (u *UserTypeWriter) WriteBool(index int32, v bool) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteBool(v)

	return nil
}

func (u *UserTypeWriter) WriteOctet(index int32, v byte) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteOctet(v)

	return nil
}

func (u *UserTypeWriter) WriteChar(index int32, v rune) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteChar(v)

	return nil
}

func (u *UserTypeWriter) WriteInt16(index int32, v int16) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteInt16(v)

	return nil
}

func (u *UserTypeWriter) WriteInt32(index int32, v int32) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteInt32(v)

	return nil
}

func (u *UserTypeWriter) WriteInt64(index int32, v int64) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteInt64(v)

	return nil
}

func (u *UserTypeWriter) WriteFloat32(index int32, v float32) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteFloat32(v)

	return nil
}

func (u *UserTypeWriter) WriteFloat64(index int32, v float64) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteFloat64(v)

	return nil
}

func (u *UserTypeWriter) WriteOctetString(index int32, v []byte) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteOctetString(v)

	return nil
}

func (u *UserTypeWriter) WriteCharString(index int32, v string) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteCharString(v)

	return nil
}

func (u *UserTypeWriter) WriteDate(index int32, v rawtime.RawDate) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteDate(v)

	return nil
}

func (u *UserTypeWriter) WriteTime(index int32, v rawtime.RawTime) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteTime(v)

	return nil
}

func (u *UserTypeWriter) WriteDateTime(index int32, v rawtime.RawDateTime) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteDateTime(v)

	return nil
}

func (u *UserTypeWriter) WriteYearMonthInterval(index int32, v rawtime.RawYearMonthInterval) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteYearMonthInterval(v)

	return nil
}

func (u *UserTypeWriter) WriteDayTimeInterval(index int32, v rawtime.RawDayTimeInterval) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)
	u.w.WriteDayTimeInterval(v)

	return nil
}

// WriteObject writes a property whose value needs WriteObject's
// type-switch dispatch (nested user types, containers).
func (u *UserTypeWriter) WriteObject(index int32, v any) error {
	if err := u.checkOrder(index); err != nil {
		return err
	}
	u.writeIndex(index)

	return u.w.WriteObject(v)
}

// WriteRemainder appends raw bytes representing properties this writer
// does not understand but is round-tripping from a previously-decoded
// remainder, then closes the property frame with the terminal -1 index.
func (u *UserTypeWriter) WriteRemainder(raw []byte) error {
	if u.closed {
		return errs.ErrFrameClosed
	}

	if len(raw) > 0 {
		u.w.buf.MustWrite(raw)
	}

	u.w.appendPacked32(-1)
	u.closed = true

	return nil
}

// UserTypeReader reads the property frame of one user type. Properties
// must be requested in increasing index order; advanceTo skips any
// properties the caller does not ask for, and ReadRemainder captures
// whatever is left, verbatim, for forward-compatible round-tripping.
type UserTypeReader struct {
	r            *Reader
	versionID    int32
	currentIndex int32
	ended        bool
	slot         *identity.Slot
}

func newUserTypeReader(r *Reader, versionID int32, slot *identity.Slot) *UserTypeReader {
	return &UserTypeReader{r: r, versionID: versionID, currentIndex: -1, slot: slot}
}

// VersionID returns the version number the writer used to encode this frame.
func (u *UserTypeReader) VersionID() int32 { return u.versionID }

// BindSelf registers v as the value this frame's own IDENTITY slot
// refers to, if this frame was read directly under a T_IDENTITY tag.
// Serializers call it right after allocating their empty shell and
// before decoding any fields, so a field that refers back to this same
// object (a cycle) resolves to v instead of an unresolved reference
// error. It is a no-op when the frame carries no identity (the common
// case).
func (u *UserTypeReader) BindSelf(v any) {
	if u.slot != nil {
		u.slot.Resolve(v)
	}
}

// peekIndex reads the next property index without committing the
// Reader's position.
func (u *UserTypeReader) peekIndex() (int32, error) {
	v, _, err := varint.ReadInt32(u.r.data[u.r.pos:])
	return v, err
}

// advanceTo positions the Reader just past the index prefix of
// property target, skipping (and discarding) any lower-indexed
// properties the caller never requested. It returns false, without
// error, when target is absent from the stream (either the frame hit
// its terminal -1, or a higher index was found in its place).
func (u *UserTypeReader) advanceTo(target int32) (bool, error) {
	if u.ended {
		return false, nil
	}

	for {
		idx, err := u.peekIndex()
		if err != nil {
			return false, err
		}

		switch {
		case idx == -1:
			return false, nil
		case idx == target:
			u.r.consumeTag() // commits the index varint
			u.currentIndex = idx
			return true, nil
		case idx > target:
			return false, nil
		default: // idx < target: an unrequested property, skip it
			u.r.consumeTag()
			if err := u.r.Skip(); err != nil {
				return false, err
			}
			u.currentIndex = idx
		}
	}
}

func (u *UserTypeReader) ReadBool(index int32) (bool, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return false, err
	}

	return u.r.ReadBool()
}

func (u *UserTypeReader) ReadOctet(index int32) (byte, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadOctet()
}

func (u *UserTypeReader) ReadChar(index int32) (rune, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadChar()
}

func (u *UserTypeReader) ReadInt16(index int32) (int16, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadInt16()
}

func (u *UserTypeReader) ReadInt32(index int32) (int32, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadInt32()
}

func (u *UserTypeReader) ReadInt64(index int32) (int64, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadInt64()
}

func (u *UserTypeReader) ReadFloat32(index int32) (float32, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadFloat32()
}

func (u *UserTypeReader) ReadFloat64(index int32) (float64, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return 0, err
	}

	return u.r.ReadFloat64()
}

func (u *UserTypeReader) ReadOctetString(index int32) ([]byte, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return nil, err
	}

	return u.r.ReadOctetString()
}

func (u *UserTypeReader) ReadCharString(index int32) (string, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return "", err
	}

	return u.r.ReadCharString()
}

func (u *UserTypeReader) ReadDate(index int32) (rawtime.RawDate, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return rawtime.RawDate{}, err
	}

	return u.r.ReadDate()
}

func (u *UserTypeReader) ReadTime(index int32) (rawtime.RawTime, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return rawtime.RawTime{}, err
	}

	return u.r.ReadTime()
}

func (u *UserTypeReader) ReadDateTime(index int32) (rawtime.RawDateTime, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return rawtime.RawDateTime{}, err
	}

	return u.r.ReadDateTime()
}

func (u *UserTypeReader) ReadYearMonthInterval(index int32) (rawtime.RawYearMonthInterval, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return rawtime.RawYearMonthInterval{}, err
	}

	return u.r.ReadYearMonthInterval()
}

func (u *UserTypeReader) ReadDayTimeInterval(index int32) (rawtime.RawDayTimeInterval, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return rawtime.RawDayTimeInterval{}, err
	}

	return u.r.ReadDayTimeInterval()
}

// ReadObject reads a property whose value needs ReadObject's
// peek-tag dispatch (nested user types, containers).
func (u *UserTypeReader) ReadObject(index int32) (any, error) {
	ok, err := u.advanceTo(index)
	if err != nil || !ok {
		return nil, err
	}

	return u.r.ReadObject()
}

// ReadRemainder consumes everything from the current position through
// the frame's terminal -1 index, returning the raw bytes of any
// unrequested trailing properties verbatim (not including the -1
// itself) so a round-tripping caller can hand them back to
// UserTypeWriter.WriteRemainder.
func (u *UserTypeReader) ReadRemainder() ([]byte, error) {
	if u.ended {
		return nil, nil
	}

	start := u.r.pos
	for {
		idx, err := u.peekIndex()
		if err != nil {
			return nil, err
		}
		if idx == -1 {
			raw := u.r.data[start:u.r.pos]
			u.r.consumeTag() // commit the terminal -1
			u.ended = true

			return raw, nil
		}

		u.r.consumeTag()
		if err := u.r.Skip(); err != nil {
			return nil, err
		}
	}
}
