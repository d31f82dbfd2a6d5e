package pofio_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
	"github.com/pofkit/pof/rawtime"
)

// nopResolver fails any user-type resolution; the primitive round-trip
// tests never reach it.
type nopResolver struct{}

func (nopResolver) UserTypeID(v any) (format.TypeID, error) { panic("unexpected user type") }
func (nopResolver) Serializer(id format.TypeID) (pofio.Serializer, error) {
	panic("unexpected user type")
}

func newWriter() *pofio.Writer {
	return pofio.NewWriter(pool.NewByteBuffer(64), nopResolver{})
}

func TestWriter_BoolRoundTrip(t *testing.T) {
	w := newWriter()
	w.WriteBool(true)
	w.WriteBool(false)

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	v, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, v)

	v, err = r.ReadBool()
	require.NoError(t, err)
	assert.False(t, v)
}

func TestWriter_IntSentinelRange(t *testing.T) {
	w := newWriter()
	w.WriteInt32(-1)
	w.WriteInt32(22)
	w.WriteInt32(23)
	w.WriteInt32(1000)

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	for _, want := range []int32{-1, 22, 23, 1000} {
		got, err := r.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriter_Int64RoundTrip(t *testing.T) {
	w := newWriter()
	vals := []int64{0, -1, 1, math.MaxInt64, math.MinInt64, -64, 64}
	for _, v := range vals {
		w.WriteInt64(v)
	}

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	for _, want := range vals {
		got, err := r.ReadInt64()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriter_FloatSentinels(t *testing.T) {
	w := newWriter()
	w.WriteFloat64(math.NaN())
	w.WriteFloat64(math.Inf(1))
	w.WriteFloat64(math.Inf(-1))
	w.WriteFloat64(3.5)

	r := pofio.NewReader(w.Bytes(), nopResolver{})

	v, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = r.ReadFloat64()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = r.ReadFloat64()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	v, err = r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestWriter_CharStringEmptyUsesSentinel(t *testing.T) {
	w := newWriter()
	w.WriteCharString("")
	w.WriteCharString("hello")

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	s, err := r.ReadCharString()
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = r.ReadCharString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestWriter_OctetStringRoundTrip(t *testing.T) {
	w := newWriter()
	w.WriteOctetString([]byte{1, 2, 3})
	w.WriteOctetString(nil)

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	b, err := r.ReadOctetString()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	b, err = r.ReadOctetString()
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestWriter_DateTimeRoundTrip(t *testing.T) {
	w := newWriter()
	d := rawtime.RawDate{Year: 2026, Month: 7, Day: 31}
	tm := rawtime.RawTime{Hour: 12, Minute: 30, Second: 1, Nanos: 5, HasZone: true, ZoneOffsetMinutes: -420}
	w.WriteDate(d)
	w.WriteTime(tm)
	w.WriteDateTime(rawtime.RawDateTime{Date: d, Time: tm})

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	gotD, err := r.ReadDate()
	require.NoError(t, err)
	assert.Equal(t, d, gotD)

	gotT, err := r.ReadTime()
	require.NoError(t, err)
	assert.Equal(t, tm, gotT)

	gotDT, err := r.ReadDateTime()
	require.NoError(t, err)
	assert.Equal(t, d, gotDT.Date)
	assert.Equal(t, tm, gotDT.Time)
}

func TestWriter_ArrayRoundTrip(t *testing.T) {
	w := newWriter()
	require.NoError(t, w.WriteArray([]any{int32(100), "two", true, nil}))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	got, err := r.ReadArray()
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, int32(100), got[0])
	assert.Equal(t, "two", got[1])
	assert.Equal(t, true, got[2])
	assert.Nil(t, got[3])
}

func TestWriter_UniformArrayRoundTrip(t *testing.T) {
	w := newWriter()
	vals := []int32{10, 20, 30}
	require.NoError(t, w.WriteUniformArray(format.T_INT32, len(vals), func(i int) error {
		w.WriteInt32Body(vals[i])
		return nil
	}))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	elemTag, n, err := r.ReadUniformArrayHeader()
	require.NoError(t, err)
	assert.Equal(t, format.T_INT32, elemTag)
	require.EqualValues(t, len(vals), n)

	for _, want := range vals {
		got, err := r.ReadInt32Body()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriter_SparseArrayRoundTrip(t *testing.T) {
	w := newWriter()
	entries := map[int32]any{5: "five", 1: "one", 3: "three"}
	require.NoError(t, w.WriteSparseArray(entries))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	got, err := r.ReadSparseArray()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriter_ObjectDispatchSkipsCompactIntOnRead(t *testing.T) {
	w := newWriter()
	require.NoError(t, w.WriteObject(int32(5)))
	require.NoError(t, w.WriteObject(int32(500)))

	r := pofio.NewReader(w.Bytes(), nopResolver{})
	v, err := r.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v) // compact sentinel loses original width, decodes as int64

	v, err = r.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, int32(500), v)
}
