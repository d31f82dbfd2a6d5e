package pof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/reflectcodec"
	"github.com/pofkit/pof/registry"
)

type account struct {
	Name    string `pof:"0,name"`
	Balance int64  `pof:"1,balance"`
}

func TestMarshalUnmarshal_Primitive(t *testing.T) {
	ctx := registry.New()

	data, err := pof.Marshal(ctx, "hello")
	require.NoError(t, err)

	v, err := pof.Unmarshal(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestMarshalUnmarshal_UserType(t *testing.T) {
	ctx := registry.New()
	codec, err := reflectcodec.NewCodec(account{}, 1)
	require.NoError(t, err)
	require.NoError(t, ctx.Register(format.TypeID(100), &account{}, codec))

	data, err := pof.Marshal(ctx, &account{Name: "checking", Balance: 500})
	require.NoError(t, err)

	v, err := pof.Unmarshal(ctx, data)
	require.NoError(t, err)

	got, ok := v.(*account)
	require.True(t, ok)
	assert.Equal(t, "checking", got.Name)
	assert.EqualValues(t, 500, got.Balance)
}

func TestExtractAt(t *testing.T) {
	ctx := registry.New()
	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	require.NoError(t, w.WriteArray([]any{"zero", "one", "two"}))

	v, err := pof.ExtractAt(w.Bytes(), ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "one", v)
}
