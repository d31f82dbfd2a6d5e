package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/errs"
)

func TestTable_IDOf_FirstThenRepeat(t *testing.T) {
	tbl := New()
	v := &struct{ X int }{X: 1}

	id1, first1 := tbl.IDOf(v)
	assert.True(t, first1)

	id2, first2 := tbl.IDOf(v)
	assert.False(t, first2)
	assert.Equal(t, id1, id2)
}

func TestTable_IDOf_DistinctHandlesGetDistinctIDs(t *testing.T) {
	tbl := New()
	a := &struct{ X int }{X: 1}
	b := &struct{ X int }{X: 2}

	idA, _ := tbl.IDOf(a)
	idB, _ := tbl.IDOf(b)
	assert.NotEqual(t, idA, idB)
}

func TestTable_IDOf_MonotonicAcrossKinds(t *testing.T) {
	tbl := New()
	p := &struct{}{}
	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}

	idP, _ := tbl.IDOf(p)
	idM, _ := tbl.IDOf(m)
	idS, _ := tbl.IDOf(s)

	assert.Equal(t, int32(0), idP)
	assert.Equal(t, int32(1), idM)
	assert.Equal(t, int32(2), idS)
}

func TestTable_IDOf_PanicsOnValueKind(t *testing.T) {
	tbl := New()
	assert.Panics(t, func() {
		tbl.IDOf(42)
	})
}

func TestTable_ContentIDOf(t *testing.T) {
	tbl := New()
	id1, first1 := tbl.ContentIDOf(0xDEADBEEF)
	assert.True(t, first1)

	id2, first2 := tbl.ContentIDOf(0xDEADBEEF)
	assert.False(t, first2)
	assert.Equal(t, id1, id2)

	id3, first3 := tbl.ContentIDOf(0xC0FFEE)
	assert.True(t, first3)
	assert.NotEqual(t, id1, id3)
}

func TestTable_ReserveResolveCycle(t *testing.T) {
	tbl := New()

	type node struct {
		Next *node
	}

	slot := tbl.Reserve(0)
	n := &node{}
	slot.Resolve(n)

	got, ok := tbl.Get(0)
	require.True(t, ok)
	assert.Same(t, n, got)
}

func TestTable_Resolve_Unreserved(t *testing.T) {
	tbl := New()
	_, err := tbl.Resolve(99)
	assert.ErrorIs(t, err, errs.ErrUnresolvedIdentity)
}

func TestTable_Get_Missing(t *testing.T) {
	tbl := New()
	_, ok := tbl.Get(5)
	assert.False(t, ok)
}
