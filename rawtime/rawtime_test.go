package rawtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRawDate_RoundTrip(t *testing.T) {
	src := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	d := DateFromTime(src)

	assert.Equal(t, int32(2024), d.Year)
	assert.Equal(t, int32(3), d.Month)
	assert.Equal(t, int32(17), d.Day)
	assert.True(t, d.ToTime().Equal(src))
}

func TestRawTime_PreservesFixedOffset(t *testing.T) {
	loc := time.FixedZone("", 5*3600+30*60) // +05:30
	src := time.Date(1, 1, 1, 14, 45, 9, 123000, loc)

	rt := TimeFromTime(src)
	assert.True(t, rt.HasZone)
	assert.Equal(t, int32(330), rt.ZoneOffsetMinutes)
	assert.Equal(t, int32(14), rt.Hour)
	assert.Equal(t, int32(45), rt.Minute)
	assert.Equal(t, int32(9), rt.Second)
	assert.Equal(t, int32(123000), rt.Nanos)

	assert.True(t, rt.ToTime().Equal(src))
}

func TestRawTime_ZoneLess(t *testing.T) {
	rt := RawTime{Hour: 8, Minute: 0, Second: 0}
	assert.False(t, rt.HasZone)
	assert.Equal(t, time.UTC, rt.ToTime().Location())
}

func TestRawDateTime_RoundTrip(t *testing.T) {
	loc := time.FixedZone("", -8*3600)
	src := time.Date(2023, time.December, 1, 23, 59, 59, 999000000, loc)

	dt := DateTimeFromTime(src)
	assert.True(t, dt.ToTime().Equal(src))
}

func TestRawYearMonthInterval_Normalize(t *testing.T) {
	i := RawYearMonthInterval{Years: 1, Months: 15}
	n := i.Normalize()
	assert.Equal(t, int32(2), n.Years)
	assert.Equal(t, int32(3), n.Months)
}

func TestRawYearMonthInterval_NormalizeNegative(t *testing.T) {
	i := RawYearMonthInterval{Years: 0, Months: -13}
	n := i.Normalize()
	assert.Equal(t, int32(-1), n.Years)
	assert.Equal(t, int32(-1), n.Months)
}

func TestRawDayTimeInterval_DurationRoundTrip(t *testing.T) {
	cases := []time.Duration{
		0,
		90 * time.Minute,
		25 * time.Hour,
		-25 * time.Hour,
		time.Second + 500*time.Millisecond,
		-(3*24*time.Hour + 4*time.Hour + 5*time.Minute),
	}

	for _, d := range cases {
		interval := DayTimeIntervalFromDuration(d)
		assert.Equal(t, d, interval.Duration(), "duration %s", d)
	}
}

func TestRawDayTimeInterval_UnnormalizedPreserved(t *testing.T) {
	i := RawDayTimeInterval{Days: 1, Hours: 25}
	assert.Equal(t, 49*time.Hour, i.Duration())
}
