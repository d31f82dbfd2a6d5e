package reflectcodec

import (
	"fmt"
	"reflect"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/internal/rcache"
)

// Metadata is the cached per-type wire layout: typ's tagged fields in
// wire-index order, plus typ itself for reflect.New allocation on decode.
type Metadata struct {
	Type  reflect.Type // struct type, never a pointer
	Attrs []Attribute
}

var cache = rcache.New()

// metadataFor returns the cached Metadata for typ (which must be a
// struct or pointer-to-struct), discovering and caching it on first use.
// The cache key folds in autoIndex, so the same type discovered under
// both modes is cached as two separate entries.
func metadataFor(typ reflect.Type, autoIndex bool) (*Metadata, error) {
	structType := typ
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", errs.ErrUnsupportedType, typ)
	}

	attrs, err := discoverAttributes(structType, autoIndex)
	if err != nil {
		return nil, err
	}

	cacheNames := sortedNames(attrs)
	if autoIndex {
		cacheNames = append(cacheNames, "\x00autoIndex")
	}
	key := rcache.NewKey(structType, cacheNames)

	v := cache.GetOrCompute(key, func() any {
		return &Metadata{Type: structType, Attrs: attrs}
	})

	md, ok := v.(*Metadata)
	if !ok {
		return nil, errs.ErrUnsupportedType
	}

	return md, nil
}
