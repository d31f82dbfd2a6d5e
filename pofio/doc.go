// Package pofio implements the primitive POF reader/writer: one
// Write<Family>/Read<Family> method pair per wire family, tag emission
// and dispatch, identity/reference plumbing, and the strict
// property-index framing a user-type reader/writer imposes on top.
//
// pofio has no dependency on registry: it defines the minimal Resolver
// interface it needs to dispatch WriteObject/ReadObject onto a
// user-type serializer, and registry.Context satisfies that interface.
// This keeps the dependency arrow pointing one way (registry -> pofio)
// even though, conceptually, the registry sits "above" the reader/writer.
package pofio
