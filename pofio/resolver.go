package pofio

import "github.com/pofkit/pof/format"

// Serializer encodes and decodes one user type's property frame. Encode
// and Decode operate on UserTypeWriter/UserTypeReader, not the raw
// primitive Writer/Reader, since the user-type frame enforces its own
// strictly-increasing property-index discipline on top of the primitive
// wire families.
type Serializer interface {
	// VersionID is the version number this Serializer currently
	// writes; it is also accepted on read for backward compatibility.
	VersionID() int32
	Encode(w *UserTypeWriter, v any) error
	Decode(r *UserTypeReader) (any, error)
}

// Resolver is the subset of registry.Context that WriteObject/ReadObject
// need: mapping a native value to its user-type id on write, and a
// type-id to its serializer on read.
type Resolver interface {
	UserTypeID(v any) (format.TypeID, error)
	Serializer(id format.TypeID) (Serializer, error)
}
