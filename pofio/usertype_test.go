package pofio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofkit/pof/errs"
	"github.com/pofkit/pof/format"
	"github.com/pofkit/pof/internal/pool"
	"github.com/pofkit/pof/pofio"
)

const testPersonTypeID format.TypeID = 100

type person struct {
	Name string
	Age  int32
}

type personSerializer struct{ version int32 }

func (s personSerializer) VersionID() int32 { return s.version }

func (s personSerializer) Encode(w *pofio.UserTypeWriter, v any) error {
	p := v.(*person)
	if err := w.WriteCharString(0, p.Name); err != nil {
		return err
	}
	if err := w.WriteInt32(1, p.Age); err != nil {
		return err
	}

	return w.WriteRemainder(nil)
}

func (s personSerializer) Decode(r *pofio.UserTypeReader) (any, error) {
	p := &person{}

	name, err := r.ReadCharString(0)
	if err != nil {
		return nil, err
	}
	p.Name = name

	age, err := r.ReadInt32(1)
	if err != nil {
		return nil, err
	}
	p.Age = age

	return p, nil
}

// personSerializerOldReader knows only index 0; decoding a frame that
// personSerializer wrote leaves its trailing index-1 property unread.
type personSerializerOldReader struct{}

func (personSerializerOldReader) VersionID() int32 { return 1 }

func (personSerializerOldReader) Encode(w *pofio.UserTypeWriter, v any) error {
	p := v.(*person)
	if err := w.WriteCharString(0, p.Name); err != nil {
		return err
	}

	return w.WriteRemainder(nil)
}

func (personSerializerOldReader) Decode(r *pofio.UserTypeReader) (any, error) {
	p := &person{}
	name, err := r.ReadCharString(0)
	if err != nil {
		return nil, err
	}
	p.Name = name

	return p, nil
}

type personResolver struct {
	ser pofio.Serializer
}

func (r personResolver) UserTypeID(v any) (format.TypeID, error) {
	if _, ok := v.(*person); ok {
		return testPersonTypeID, nil
	}

	return 0, errs.ErrUnknownType
}

func (r personResolver) Serializer(id format.TypeID) (pofio.Serializer, error) {
	if id == testPersonTypeID {
		return r.ser, nil
	}

	return nil, errs.ErrNotRegistered
}

func TestUserType_RoundTrip(t *testing.T) {
	resolver := personResolver{ser: personSerializer{version: 1}}
	w := pofio.NewWriter(pool.NewByteBuffer(64), resolver)

	p := &person{Name: "Ada", Age: 36}
	require.NoError(t, w.WriteObject(p))

	r := pofio.NewReader(w.Bytes(), resolver)
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotP, ok := got.(*person)
	require.True(t, ok)
	assert.Equal(t, p, gotP)
}

func TestUserType_UnknownTrailingPropertyDrained(t *testing.T) {
	resolver := personResolver{ser: personSerializer{version: 1}}
	w := pofio.NewWriter(pool.NewByteBuffer(64), resolver)

	p := &person{Name: "Grace", Age: 85}
	require.NoError(t, w.WriteObject(p))

	// Decode with a serializer that only knows about index 0; it must
	// not choke on (and must drain) the unread index-1 age property.
	oldResolver := personResolver{ser: personSerializerOldReader{}}
	r := pofio.NewReader(w.Bytes(), oldResolver)
	got, err := r.ReadObject()
	require.NoError(t, err)

	gotP, ok := got.(*person)
	require.True(t, ok)
	assert.Equal(t, "Grace", gotP.Name)
	assert.Zero(t, gotP.Age)
}
