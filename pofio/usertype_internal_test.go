package pofio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
)

type stubResolver struct{}

func (stubResolver) UserTypeID(v any) (format.TypeID, error) { return 0, errs.ErrUnknownType }
func (stubResolver) Serializer(id format.TypeID) (Serializer, error) {
	return nil, errs.ErrNotRegistered
}

func TestUserTypeWriter_StrictOrderRejected(t *testing.T) {
	w := NewWriter(pool.NewByteBuffer(64), stubResolver{})
	utw := newUserTypeWriter(w)

	require.NoError(t, utw.WriteInt32(2, 5))
	err := utw.WriteInt32(1, 6)
	assert.ErrorIs(t, err, errs.ErrInvalidOrder)
}

func TestUserTypeWriter_ClosedFrameRejectsWrites(t *testing.T) {
	w := NewWriter(pool.NewByteBuffer(64), stubResolver{})
	utw := newUserTypeWriter(w)

	require.NoError(t, utw.WriteInt32(0, 1))
	require.NoError(t, utw.WriteRemainder(nil))

	err := utw.WriteInt32(1, 2)
	assert.ErrorIs(t, err, errs.ErrFrameClosed)

	err = utw.WriteRemainder(nil)
	assert.ErrorIs(t, err, errs.ErrFrameClosed)
}

func TestUserTypeReader_AdvanceToSkipsUnrequestedLowerProperties(t *testing.T) {
	w := NewWriter(pool.NewByteBuffer(64), stubResolver{})
	utw := newUserTypeWriter(w)
	require.NoError(t, utw.WriteInt32(0, 10))
	require.NoError(t, utw.WriteInt32(1, 20))
	require.NoError(t, utw.WriteInt32(2, 30))
	require.NoError(t, utw.WriteRemainder(nil))

	r := NewReader(w.Bytes(), stubResolver{})
	utr := newUserTypeReader(r, 1, nil)

	v, err := utr.ReadInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(30), v)

	raw, err := utr.ReadRemainder()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestUserTypeReader_MissingPropertyReturnsFalseNotError(t *testing.T) {
	w := NewWriter(pool.NewByteBuffer(64), stubResolver{})
	utw := newUserTypeWriter(w)
	require.NoError(t, utw.WriteInt32(0, 10))
	require.NoError(t, utw.WriteRemainder(nil))

	r := NewReader(w.Bytes(), stubResolver{})
	utr := newUserTypeReader(r, 1, nil)

	_, err := utr.ReadInt32(5)
	require.NoError(t, err)
	assert.True(t, utr.ended == false) // index 5 absent, but frame not yet drained
}
