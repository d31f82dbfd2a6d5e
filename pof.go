// Package pof implements the Portable Object Format: a self-describing,
// tagged binary serialization format in which every encoded value
// carries its own type information, so a reader can walk, extract from,
// or even patch an encoded blob without first knowing its schema.
//
// # Core features
//
//   - A packed integer codec and a fixed set of intrinsic type tags
//     (varint, format)
//   - A primitive reader/writer for every wire family — booleans,
//     numerics, strings, temporal values, arrays, collections, maps,
//     and their uniform (single-tag-for-all-elements) variants (pofio)
//   - A strict property-index frame for user-defined types, with
//     forward-compatible remainder preservation for trailing properties
//     an older reader doesn't know about (pofio)
//   - A type registry mapping native Go types to user-type ids and
//     serializers, with optional subclass/interface resolution
//     (registry)
//   - A reflection-based serializer driven by `pof:"index,name"` struct
//     tags, for types that don't want a hand-written codec
//     (reflectcodec)
//   - A lazy, zero-copy navigator for reading a single value out of an
//     encoded blob by path, and for patching a blob's values without a
//     full decode/re-encode round trip (navigator)
//
// # Basic usage
//
// Registering a type and round-tripping a value:
//
//	ctx := registry.New()
//	codec, _ := reflectcodec.NewCodec(Account{}, 1)
//	ctx.Register(format.TypeID(100), &Account{}, codec)
//
//	data, _ := pof.Marshal(ctx, &Account{Name: "checking", Balance: 500})
//	v, _ := pof.Unmarshal(ctx, data)
//	acct := v.(*Account)
//
// Reading one field out of a blob without decoding the rest:
//
//	name, _ := navigator.ValueAt[string](data, ctx, 0)
//
// This package provides convenient top-level wrappers around the
// pofio/registry/navigator packages, covering the common single-value
// encode/decode path. For user-type framing, identity/reference control,
// or navigation/patching, use those packages directly.
package pof

import (
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/navigator"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/registry"
)

// Marshal encodes v to its POF wire representation using ctx to
// resolve v's user-type id and serializer, if v is not one of the
// built-in primitive families.
func Marshal(ctx *registry.Context, v any, opts ...pofio.Option) ([]byte, error) {
	buf := pool.GetWriterBuffer()
	defer pool.PutWriterBuffer(buf)

	if ctx != nil && ctx.EnableReferences {
		opts = append(opts, pofio.WithReferences())
	}

	w := pofio.NewWriter(buf, ctx, opts...)
	if err := w.WriteObject(v); err != nil {
		return nil, err
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

// Unmarshal decodes one POF value from data, using ctx to resolve any
// user-type tag encountered. The concrete Go type of the result depends
// on the wire tag: a primitive family decodes to its natural Go type, a
// user-type tag decodes via the registered Serializer.
func Unmarshal(ctx *registry.Context, data []byte, opts ...pofio.Option) (any, error) {
	r := pofio.NewReader(data, ctx, opts...)
	return r.ReadObject()
}

// Open returns a lazy Cursor over data's outer value, for path
// navigation and in-place patching without a full decode. It is a
// direct alias for navigator.Open.
func Open(data []byte, ctx *registry.Context) (*navigator.Cursor, error) {
	return navigator.Open(data, ctx)
}

// ExtractAt decodes the value at path (a sequence of Cursor.Child
// indices from data's root value) without requiring the caller to hold
// onto intermediate cursors. It is a direct alias for
// navigator.ExtractAt.
func ExtractAt(data []byte, ctx *registry.Context, path ...int32) (any, error) {
	return navigator.ExtractAt(data, ctx, path...)
}
