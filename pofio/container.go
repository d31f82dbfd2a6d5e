package pofio

import (
	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
)

// MapEntry is one key/value pair of a POF map family.
type MapEntry struct {
	Key   any
	Value any
}

// WriteMap writes a heterogeneous map: every key and value carries its
// own tag.
func (w *Writer) WriteMap(entries []MapEntry) error {
	w.writeTag(format.T_MAP)
	w.appendPacked32(int32(len(entries)))
	for _, e := range entries {
		if err := w.WriteObject(e.Key); err != nil {
			return err
		}
		if err := w.WriteObject(e.Value); err != nil {
			return err
		}
	}

	return nil
}

// WriteUniformKeysMap writes a map whose keys all share keyType; each
// key's body is written by encodeKeyBody (no per-key tag), while values
// keep their own tag.
func (w *Writer) WriteUniformKeysMap(keyType format.TypeID, entries []MapEntry, encodeKeyBody func(key any) error) error {
	w.writeTag(format.T_UNIFORM_KEYS_MAP)
	w.writeTag(keyType)
	w.appendPacked32(int32(len(entries)))
	for _, e := range entries {
		if err := encodeKeyBody(e.Key); err != nil {
			return err
		}
		if err := w.WriteObject(e.Value); err != nil {
			return err
		}
	}

	return nil
}

// WriteUniformMap writes a map whose keys all share keyType and whose
// values all share valueType; neither carries a per-entry tag.
func (w *Writer) WriteUniformMap(keyType, valueType format.TypeID, entries []MapEntry, encodeKeyBody, encodeValueBody func(v any) error) error {
	w.writeTag(format.T_UNIFORM_MAP)
	w.writeTag(keyType)
	w.writeTag(valueType)
	w.appendPacked32(int32(len(entries)))
	for _, e := range entries {
		if err := encodeKeyBody(e.Key); err != nil {
			return err
		}
		if err := encodeValueBody(e.Value); err != nil {
			return err
		}
	}

	return nil
}

// ReadMap reads a heterogeneous T_MAP.
func (r *Reader) ReadMap() ([]MapEntry, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_MAP {
		return nil, errs.ErrTypeMismatch
	}

	return r.readMapBody()
}

// readMapBody decodes a T_MAP body whose tag has already been consumed.
func (r *Reader) readMapBody() ([]MapEntry, error) {
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errs.ErrMalformedStream
	}

	out := make([]MapEntry, n)
	for i := range out {
		k, err := r.ReadObject()
		if err != nil {
			return nil, err
		}
		v, err := r.ReadObject()
		if err != nil {
			return nil, err
		}
		out[i] = MapEntry{Key: k, Value: v}
	}

	return out, nil
}

// ReadUniformKeysMap reads a T_UNIFORM_KEYS_MAP. decodeKeyBody decodes
// one key body (no tag) for the key type the header reports.
func (r *Reader) ReadUniformKeysMap(decodeKeyBody func(keyType format.TypeID) (any, error)) ([]MapEntry, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_UNIFORM_KEYS_MAP {
		return nil, errs.ErrTypeMismatch
	}

	keyType, err := r.readTag()
	if err != nil {
		return nil, err
	}

	return r.readUniformKeysMapBody(keyType, decodeKeyBody)
}

// readUniformKeysMapBody decodes a T_UNIFORM_KEYS_MAP body whose tag and
// key type have already been consumed.
func (r *Reader) readUniformKeysMapBody(keyType format.TypeID, decodeKeyBody func(format.TypeID) (any, error)) ([]MapEntry, error) {
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errs.ErrMalformedStream
	}

	out := make([]MapEntry, n)
	for i := range out {
		k, err := decodeKeyBody(keyType)
		if err != nil {
			return nil, err
		}
		v, err := r.ReadObject()
		if err != nil {
			return nil, err
		}
		out[i] = MapEntry{Key: k, Value: v}
	}

	return out, nil
}

// ReadUniformMap reads a T_UNIFORM_MAP. decodeKeyBody/decodeValueBody
// decode one key/value body (no tag) for the types the header reports.
func (r *Reader) ReadUniformMap(
	decodeKeyBody func(keyType format.TypeID) (any, error),
	decodeValueBody func(valueType format.TypeID) (any, error),
) ([]MapEntry, error) {
	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}
	if tag != format.T_UNIFORM_MAP {
		return nil, errs.ErrTypeMismatch
	}

	keyType, err := r.readTag()
	if err != nil {
		return nil, err
	}
	valueType, err := r.readTag()
	if err != nil {
		return nil, err
	}

	return r.readUniformMapBody(keyType, valueType, decodeKeyBody, decodeValueBody)
}

// readUniformMapBody decodes a T_UNIFORM_MAP body whose tag and key/value
// types have already been consumed.
func (r *Reader) readUniformMapBody(
	keyType, valueType format.TypeID,
	decodeKeyBody func(format.TypeID) (any, error),
	decodeValueBody func(format.TypeID) (any, error),
) ([]MapEntry, error) {
	n, err := r.readPacked32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errs.ErrMalformedStream
	}

	out := make([]MapEntry, n)
	for i := range out {
		k, err := decodeKeyBody(keyType)
		if err != nil {
			return nil, err
		}
		v, err := decodeValueBody(valueType)
		if err != nil {
			return nil, err
		}
		out[i] = MapEntry{Key: k, Value: v}
	}

	return out, nil
}
