package pofio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
)

func TestWriter_MapRoundTrip(t *testing.T) {
	w := pofio.NewWriter(pool.NewByteBuffer(64), nopResolver{})
	entries := []pofio.MapEntry{
		{Key: "a", Value: int32(101)},
		{Key: "b", Value: int32(202)},
	}
	require.NoError(t, w.WriteMap(entries))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	got, err := r.ReadMap()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriter_UniformKeysMapRoundTrip(t *testing.T) {
	w := pofio.NewWriter(pool.NewByteBuffer(64), nopResolver{})
	entries := []pofio.MapEntry{
		{Key: int32(1), Value: "one"},
		{Key: int32(2), Value: "two"},
	}
	require.NoError(t, w.WriteUniformKeysMap(format.T_INT32, entries, func(key any) error {
		w.WriteInt32Body(key.(int32))
		return nil
	}))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	got, err := r.ReadUniformKeysMap(func(keyType format.TypeID) (any, error) {
		assert.Equal(t, format.T_INT32, keyType)
		return r.ReadInt32Body()
	})
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriter_UniformMapRoundTrip(t *testing.T) {
	w := pofio.NewWriter(pool.NewByteBuffer(64), nopResolver{})
	entries := []pofio.MapEntry{
		{Key: int32(1), Value: int32(100)},
		{Key: int32(2), Value: int32(200)},
	}
	require.NoError(t, w.WriteUniformMap(format.T_INT32, format.T_INT32, entries,
		func(v any) error { w.WriteInt32Body(v.(int32)); return nil },
		func(v any) error { w.WriteInt32Body(v.(int32)); return nil },
	))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	got, err := r.ReadUniformMap(
		func(format.TypeID) (any, error) { return r.ReadInt32Body() },
		func(format.TypeID) (any, error) { return r.ReadInt32Body() },
	)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
