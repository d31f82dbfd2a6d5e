package reflectcodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/reflectcodec"
	"github.com/pofkit/pof/registry"
)

type untaggedIndex struct {
	Balance int64  `pof:"balance"`
	Name    string `pof:"name"`
}

func TestCodec_MissingIndexRejectedByDefault(t *testing.T) {
	_, err := reflectcodec.NewCodec(untaggedIndex{}, 1)
	assert.ErrorIs(t, err, errs.ErrMissingIndex)
}

func TestCodec_AutoIndexAssignsBySortedName(t *testing.T) {
	codec, err := reflectcodec.NewCodec(untaggedIndex{}, 1, reflectcodec.WithAutoIndex())
	require.NoError(t, err)

	ctx := registry.New()
	require.NoError(t, ctx.Register(format.TypeID(70), &untaggedIndex{}, codec))

	w := pofio.NewWriter(pool.NewByteBuffer(64), ctx)
	orig := &untaggedIndex{Balance: 42, Name: "checking"}
	require.NoError(t, w.WriteObject(orig))

	r := pofio.NewReader(w.Bytes(), ctx)
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotVal, ok := got.(*untaggedIndex)
	require.True(t, ok)
	assert.Equal(t, *orig, *gotVal)
}
