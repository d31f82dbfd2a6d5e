// Package errs defines the sentinel errors returned by every POF
// subsystem. Call sites wrap these with fmt.Errorf("%w: ...") to add
// context; callers compare with errors.Is against the sentinel.
package errs

import "errors"

// Wire format / codec errors.
var (
	// ErrMalformedStream signals a corrupt tag, a truncated body, or a
	// packed-integer continuation run that overflows the target width.
	ErrMalformedStream = errors.New("pof: malformed stream")

	// ErrTypeMismatch signals that the requested read family is
	// incompatible with the leading tag, and no lossless narrowing
	// conversion applies.
	ErrTypeMismatch = errors.New("pof: type mismatch")

	// ErrUnsupportedType signals a reserved-but-unimplemented intrinsic
	// (T_INT128, T_FLOAT128, T_DECIMAL64, T_DECIMAL128).
	ErrUnsupportedType = errors.New("pof: unsupported type")
)

// User-type framing errors.
var (
	// ErrInvalidOrder signals a non-increasing or negative property
	// index in a user-type frame.
	ErrInvalidOrder = errors.New("pof: invalid property order")

	// ErrFrameClosed signals a write attempted after WriteRemainder
	// closed the frame.
	ErrFrameClosed = errors.New("pof: user-type frame already closed")
)

// Registry errors.
var (
	// ErrUnknownType signals a type-id with no registry entry and no
	// resolution policy that can supply one.
	ErrUnknownType = errors.New("pof: unknown type")

	// ErrDuplicateTypeID signals a second registration under a type-id
	// already bound to a different native type.
	ErrDuplicateTypeID = errors.New("pof: duplicate type id")

	// ErrDuplicateNativeType signals a second, incompatible registration
	// of the same native type under a different type-id.
	ErrDuplicateNativeType = errors.New("pof: duplicate native type")

	// ErrNotRegistered signals that a native type has no registry entry.
	ErrNotRegistered = errors.New("pof: type not registered")

	// ErrNoDefaultSerializer signals a lookup miss with no default
	// serializer configured.
	ErrNoDefaultSerializer = errors.New("pof: no default serializer")
)

// Reflection / annotation serializer errors.
var (
	// ErrMissingIndex signals an attribute with no explicit index while
	// auto-indexing is disabled.
	ErrMissingIndex = errors.New("pof: missing attribute index")

	// ErrDuplicateAttribute signals two struct fields that mangle to the
	// same attribute name.
	ErrDuplicateAttribute = errors.New("pof: duplicate attribute name")
)

// Navigator errors.
var (
	// ErrNavigation signals a path that descends past a terminal value,
	// or an out-of-range index into a non-sparse container.
	ErrNavigation = errors.New("pof: navigation error")

	// ErrAmbiguousMutation signals SetValue called on a cursor that
	// resolved through a T_REFERENCE; the caller must mutate the origin.
	ErrAmbiguousMutation = errors.New("pof: ambiguous mutation through reference")
)

// Identity/reference errors.
var (
	// ErrUnresolvedIdentity signals a T_REFERENCE(n) with no preceding
	// T_IDENTITY(n) in the same stream (forward reference).
	ErrUnresolvedIdentity = errors.New("pof: unresolved identity reference")

	// ErrDuplicateIdentity signals two T_IDENTITY control tags declaring
	// the same id within one blob.
	ErrDuplicateIdentity = errors.New("pof: duplicate identity id")
)
