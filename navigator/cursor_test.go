package navigator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/navigator"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/registry"
)

func encodeArray(t *testing.T, ctx *registry.Context, elems []any) []byte {
	t.Helper()
	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	require.NoError(t, w.WriteArray(elems))

	return w.Bytes()
}

func TestCursor_ChildOverArray(t *testing.T) {
	ctx := registry.New()
	data := encodeArray(t, ctx, []any{"zero", "one", "two"})

	root, err := navigator.Open(data, ctx)
	require.NoError(t, err)
	assert.Equal(t, format.T_ARRAY, root.Tag())

	child, err := root.Child(1)
	require.NoError(t, err)
	require.NotNil(t, child)

	v, err := child.Value()
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}

func TestCursor_ChildOutOfRangeFails(t *testing.T) {
	ctx := registry.New()
	data := encodeArray(t, ctx, []any{"only"})

	root, err := navigator.Open(data, ctx)
	require.NoError(t, err)

	child, err := root.Child(5)
	require.ErrorIs(t, err, errs.ErrNavigation)
	assert.Nil(t, child)
}

func TestCursor_ChildOverSparseArray(t *testing.T) {
	ctx := registry.New()
	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	require.NoError(t, w.WriteSparseArray(map[int32]any{0: "a", 5: "b"}))

	root, err := navigator.Open(w.Bytes(), ctx)
	require.NoError(t, err)

	present, err := root.Child(5)
	require.NoError(t, err)
	require.NotNil(t, present)
	v, err := present.Value()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	absent, err := root.Child(3)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestCursor_SetValueAndApplyChanges(t *testing.T) {
	ctx := registry.New()
	data := encodeArray(t, ctx, []any{"zero", "one", "two"})

	root, err := navigator.Open(data, ctx)
	require.NoError(t, err)

	child, err := root.Child(1)
	require.NoError(t, err)
	require.NoError(t, child.SetValue("ONE"))

	patched, err := root.ApplyChanges()
	require.NoError(t, err)

	newRoot, err := navigator.Open(patched, ctx)
	require.NoError(t, err)

	v0, err := mustChild(t, newRoot, 0)
	assert.Equal(t, "zero", v0)
	v1, err := mustChild(t, newRoot, 1)
	assert.Equal(t, "ONE", v1)
	v2, err := mustChild(t, newRoot, 2)
	_ = err
	assert.Equal(t, "two", v2)
}

func mustChild(t *testing.T, c *navigator.Cursor, idx int32) (any, error) {
	t.Helper()
	child, err := c.Child(idx)
	require.NoError(t, err)
	require.NotNil(t, child)

	return child.Value()
}

func TestCursor_ChildOverUniformArray(t *testing.T) {
	ctx := registry.New()
	vals := []int32{10, -33, 7}
	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	require.NoError(t, w.WriteUniformArray(format.T_INT32, len(vals), func(i int) error {
		w.WriteInt32Body(vals[i])
		return nil
	}))

	root, err := navigator.Open(w.Bytes(), ctx)
	require.NoError(t, err)
	assert.Equal(t, format.T_UNIFORM_ARRAY, root.Tag())

	child, err := root.Child(1)
	require.NoError(t, err)
	require.NotNil(t, child)

	v, err := child.Value()
	require.NoError(t, err)
	assert.Equal(t, int32(-33), v)
}

func TestCursor_ChildOverUniformSparseArray(t *testing.T) {
	ctx := registry.New()
	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	entries := map[int32]any{0: int32(10), 5: int32(-33)}
	require.NoError(t, w.WriteUniformSparseArray(format.T_INT32, entries, func(_ int32, v any) error {
		w.WriteInt32Body(v.(int32))
		return nil
	}))

	root, err := navigator.Open(w.Bytes(), ctx)
	require.NoError(t, err)
	assert.Equal(t, format.T_UNIFORM_SPARSE_ARRAY, root.Tag())

	child, err := root.Child(5)
	require.NoError(t, err)
	require.NotNil(t, child)

	v, err := child.Value()
	require.NoError(t, err)
	assert.Equal(t, int32(-33), v)

	absent, err := root.Child(3)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestValueAt(t *testing.T) {
	ctx := registry.New()
	data := encodeArray(t, ctx, []any{"zero", "one"})

	v, err := navigator.ValueAt[string](data, ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}
