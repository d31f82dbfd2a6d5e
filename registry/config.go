package registry

import (
	"fmt"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/pofio"
)

// TypeMappingEntry is one row of a parsed type-mapping configuration
// table: the external config format's abstraction over a Register call.
type TypeMappingEntry struct {
	ID         format.TypeID
	Native     any
	Serializer pofio.Serializer
}

// NewContextFromEntries builds a Context from a parsed configuration
// table, the concrete entry point an external config loader (XML, YAML,
// whatever format a caller's deployment uses) calls into once it has
// turned its own format into TypeMappingEntry rows.
func NewContextFromEntries(entries []TypeMappingEntry, opts ...Option) (*Context, error) {
	c := New(opts...)
	for _, e := range entries {
		if e.Serializer == nil {
			return nil, fmt.Errorf("%w: %s has no serializer", errs.ErrNoDefaultSerializer, e.ID)
		}
		if err := c.Register(e.ID, e.Native, e.Serializer); err != nil {
			return nil, err
		}
	}

	return c, nil
}
