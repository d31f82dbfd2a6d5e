package reflectcodec

import (
	"fmt"
	"reflect"

	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/rawtime"
)

// Codec is a stateless, shared reflection-driven pofio.Serializer for
// one struct type. Unlike a hand-written Serializer, Codec derives its
// Encode/Decode behavior entirely from the type's `pof` struct tags.
type Codec struct {
	version   int32
	typ       reflect.Type
	autoIndex bool
}

// NewCodec builds a Codec for sample's type (a struct, or pointer to
// one) at the given wire version. sample is only used to derive the
// type; its field values are ignored. By default every tagged field
// must carry an explicit index; pass WithAutoIndex to allow tags that
// omit it.
func NewCodec(sample any, version int32, opts ...Option) (*Codec, error) {
	cfg := newConfig(opts...)

	typ := reflect.TypeOf(sample)
	if _, err := metadataFor(typ, cfg.autoIndex); err != nil {
		return nil, err
	}

	structType := typ
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	return &Codec{version: version, typ: structType, autoIndex: cfg.autoIndex}, nil
}

// VersionID implements pofio.Serializer.
func (c *Codec) VersionID() int32 { return c.version }

// Encode implements pofio.Serializer, writing every tagged field of v
// in wire-index order.
func (c *Codec) Encode(w *pofio.UserTypeWriter, v any) error {
	md, err := metadataFor(c.typ, c.autoIndex)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	for _, attr := range md.Attrs {
		fv := rv.FieldByIndex(attr.Field.Index)
		if err := encodeField(w, attr.Index, fv); err != nil {
			return fmt.Errorf("reflectcodec: field %s: %w", attr.Name, err)
		}
	}

	return w.WriteRemainder(nil)
}

// Decode implements pofio.Serializer, allocating a new *T and filling
// in every tagged field present in the stream. Fields absent from an
// older-version stream are left at their zero value.
func (c *Codec) Decode(r *pofio.UserTypeReader) (any, error) {
	md, err := metadataFor(c.typ, c.autoIndex)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(c.typ)
	rv := ptr.Elem()

	r.BindSelf(ptr.Interface())

	for _, attr := range md.Attrs {
		fv := rv.FieldByIndex(attr.Field.Index)
		if err := decodeField(r, attr.Index, fv); err != nil {
			return nil, fmt.Errorf("reflectcodec: field %s: %w", attr.Name, err)
		}
	}

	return ptr.Interface(), nil
}

func encodeField(w *pofio.UserTypeWriter, index int32, fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.Bool:
		return w.WriteBool(index, fv.Bool())
	case reflect.Uint8:
		return w.WriteOctet(index, byte(fv.Uint()))
	case reflect.Int16:
		return w.WriteInt16(index, int16(fv.Int()))
	case reflect.Int32:
		return w.WriteInt32(index, int32(fv.Int()))
	case reflect.Int, reflect.Int64:
		return w.WriteInt64(index, fv.Int())
	case reflect.Float32:
		return w.WriteFloat32(index, float32(fv.Float()))
	case reflect.Float64:
		return w.WriteFloat64(index, fv.Float())
	case reflect.String:
		return w.WriteCharString(index, fv.String())
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			return w.WriteOctetString(index, fv.Bytes())
		}

		return w.WriteObject(index, fv.Interface())
	}

	switch v := fv.Interface().(type) {
	case rawtime.RawDate:
		return w.WriteDate(index, v)
	case rawtime.RawTime:
		return w.WriteTime(index, v)
	case rawtime.RawDateTime:
		return w.WriteDateTime(index, v)
	case rawtime.RawYearMonthInterval:
		return w.WriteYearMonthInterval(index, v)
	case rawtime.RawDayTimeInterval:
		return w.WriteDayTimeInterval(index, v)
	}

	return w.WriteObject(index, fv.Interface())
}

func decodeField(r *pofio.UserTypeReader, index int32, fv reflect.Value) error {
	switch fv.Interface().(type) {
	case rawtime.RawDate:
		v, err := r.ReadDate(index)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case rawtime.RawTime:
		v, err := r.ReadTime(index)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case rawtime.RawDateTime:
		v, err := r.ReadDateTime(index)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case rawtime.RawYearMonthInterval:
		v, err := r.ReadYearMonthInterval(index)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case rawtime.RawDayTimeInterval:
		v, err := r.ReadDayTimeInterval(index)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	}

	switch fv.Kind() {
	case reflect.Bool:
		v, err := r.ReadBool(index)
		if err != nil {
			return err
		}
		fv.SetBool(v)
	case reflect.Uint8:
		v, err := r.ReadOctet(index)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(v))
	case reflect.Int16:
		v, err := r.ReadInt16(index)
		if err != nil {
			return err
		}
		fv.SetInt(int64(v))
	case reflect.Int32:
		v, err := r.ReadInt32(index)
		if err != nil {
			return err
		}
		fv.SetInt(int64(v))
	case reflect.Int, reflect.Int64:
		v, err := r.ReadInt64(index)
		if err != nil {
			return err
		}
		fv.SetInt(v)
	case reflect.Float32:
		v, err := r.ReadFloat32(index)
		if err != nil {
			return err
		}
		fv.SetFloat(float64(v))
	case reflect.Float64:
		v, err := r.ReadFloat64(index)
		if err != nil {
			return err
		}
		fv.SetFloat(v)
	case reflect.String:
		v, err := r.ReadCharString(index)
		if err != nil {
			return err
		}
		fv.SetString(v)
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			v, err := r.ReadOctetString(index)
			if err != nil {
				return err
			}
			fv.SetBytes(v)
			return nil
		}

		v, err := r.ReadObject(index)
		if err != nil {
			return err
		}
		if v != nil {
			fv.Set(reflect.ValueOf(v))
		}
	default:
		v, err := r.ReadObject(index)
		if err != nil {
			return err
		}
		if v != nil {
			fv.Set(reflect.ValueOf(v))
		}
	}

	return nil
}
