package reflectcodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/reflectcodec"
	"github.com/pofkit/pof/registry"
)

type account struct {
	Name    string `pof:"0,name"`
	Balance int64  `pof:"1,balance"`
	Active  bool   `pof:"2"`
}

func TestCodec_RoundTripThroughRegistry(t *testing.T) {
	codec, err := reflectcodec.NewCodec(account{}, 1)
	require.NoError(t, err)

	ctx := registry.New()
	require.NoError(t, ctx.Register(format.TypeID(50), &account{}, codec))

	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	a := &account{Name: "checking", Balance: 5000, Active: true}
	require.NoError(t, w.WriteObject(a))

	r := pofio.NewReader(w.Bytes(), ctx)
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotAcc, ok := got.(*account)
	require.True(t, ok)
	assert.Equal(t, *a, *gotAcc)
}

type node struct {
	Name string `pof:"0,name"`
	Next *node  `pof:"1,next"`
}

func TestCodec_SelfReferentialCycleResolvesToEnclosingValue(t *testing.T) {
	codec, err := reflectcodec.NewCodec(node{}, 1)
	require.NoError(t, err)

	ctx := registry.New()
	require.NoError(t, ctx.Register(format.TypeID(60), &node{}, codec))

	head := &node{Name: "head"}
	head.Next = head // cyclic: head points back to itself

	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx, pofio.WithReferences())
	require.NoError(t, w.WriteObject(head))

	r := pofio.NewReader(w.Bytes(), ctx, pofio.WithReferences())
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotHead, ok := got.(*node)
	require.True(t, ok)
	assert.Equal(t, "head", gotHead.Name)
	require.NotNil(t, gotHead.Next)
	assert.Same(t, gotHead, gotHead.Next)
}

func TestCodec_UnknownFieldSkippedByOlderVersion(t *testing.T) {
	type accountV2 struct {
		Name    string `pof:"0,name"`
		Balance int64  `pof:"1,balance"`
		Active  bool   `pof:"2"`
		Note    string `pof:"3,note"`
	}

	codecV2, err := reflectcodec.NewCodec(accountV2{}, 2)
	require.NoError(t, err)
	codecV1, err := reflectcodec.NewCodec(account{}, 1)
	require.NoError(t, err)

	writeCtx := registry.New()
	require.NoError(t, writeCtx.Register(format.TypeID(51), &accountV2{}, codecV2))

	w := pofio.NewWriter(pool.NewByteBuffer(64), writeCtx)
	a := &accountV2{Name: "savings", Balance: 10, Active: false, Note: "promo"}
	require.NoError(t, w.WriteObject(a))

	readCtx := registry.New()
	require.NoError(t, readCtx.Register(format.TypeID(51), &account{}, codecV1))

	r := pofio.NewReader(w.Bytes(), readCtx)
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotAcc, ok := got.(*account)
	require.True(t, ok)
	assert.Equal(t, "savings", gotAcc.Name)
	assert.EqualValues(t, 10, gotAcc.Balance)
	assert.False(t, gotAcc.Active)
}
