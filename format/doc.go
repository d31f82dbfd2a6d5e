// Package format defines the POF type-id space: the stable numeric
// constants for intrinsic types, control tags, and compact value
// sentinels that every POF-conformant peer must agree on bit-exact.
//
// User types are not enumerated here; they live in the non-negative
// int32 range and are resolved through a registry.Context.
package format
