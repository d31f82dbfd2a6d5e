package navigator

import (
	"fmt"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/registry"
)

// ValueAt decodes the value at path (a sequence of Child indices
// starting from the blob's root value) directly to T, the convenience
// surface a filter/extractor would reach for instead of walking
// Open/Child/Value by hand.
func ValueAt[T any](data []byte, ctx *registry.Context, path ...int32) (T, error) {
	var zero T

	c, err := Open(data, ctx)
	if err != nil {
		return zero, err
	}

	for _, idx := range path {
		c, err = c.Child(idx)
		if err != nil {
			return zero, err
		}
		if c == nil {
			return zero, fmt.Errorf("%w: index %d absent", errs.ErrNavigation, idx)
		}
	}

	v, err := c.Value()
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: value is not %T", errs.ErrTypeMismatch, zero)
	}

	return typed, nil
}

// ExtractAt is the type-mapping facade row from the data model's
// component table: a thin wrapper over Open/Child/Value that returns
// the decoded value at path without requiring the caller to hold onto
// intermediate cursors.
func ExtractAt(data []byte, ctx *registry.Context, path ...int32) (any, error) {
	c, err := Open(data, ctx)
	if err != nil {
		return nil, err
	}

	for _, idx := range path {
		c, err = c.Child(idx)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: index %d absent", errs.ErrNavigation, idx)
		}
	}

	return c.Value()
}
