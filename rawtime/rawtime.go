// Package rawtime holds source-preserving representations of POF's
// date/time family (T_DATE, T_TIME, T_DATETIME, T_YEAR_MONTH_INTERVAL,
// T_DAY_TIME_INTERVAL). A decode straight into time.Time loses
// information the wire format carries explicitly: a fixed UTC offset
// with no IANA zone, or a time with date components the reader never
// asked for. Each Raw* type models one wire family as plain int32
// fields plus a ToTime/FromTime convenience pair for the common case.
package rawtime

import "time"

// RawDate is a calendar date with no time-of-day component.
type RawDate struct {
	Year  int32
	Month int32 // 1-12
	Day   int32 // 1-31
}

// RawTime is a time-of-day, optionally anchored to a fixed UTC offset.
// HasZone distinguishes a floating (zone-less) time from one carrying
// an explicit offset; a decoder must not invent a zone where the wire
// value had none.
type RawTime struct {
	Hour              int32
	Minute            int32
	Second            int32
	Nanos             int32
	HasZone           bool
	ZoneOffsetMinutes int32
}

// RawDateTime composes RawDate and RawTime, the wire layout of T_DATETIME.
type RawDateTime struct {
	Date RawDate
	Time RawTime
}

// RawYearMonthInterval is a calendar-relative interval with no fixed
// duration in seconds (months vary in length).
type RawYearMonthInterval struct {
	Years  int32
	Months int32
}

// RawDayTimeInterval is a fixed-duration interval expressed in days,
// hours, minutes, seconds, and nanoseconds, kept unnormalized (a caller
// that wrote {Days: 1, Hours: 25} round-trips exactly that, not {Days: 2,
// Hours: 1}).
type RawDayTimeInterval struct {
	Days    int32
	Hours   int32
	Minutes int32
	Seconds int32
	Nanos   int32
}

// ToTime converts d to a time.Time at midnight UTC.
func (d RawDate) ToTime() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
}

// DateFromTime extracts the calendar date of t, discarding time-of-day.
func DateFromTime(t time.Time) RawDate {
	y, m, d := t.Date()
	return RawDate{Year: int32(y), Month: int32(m), Day: int32(d)}
}

// ToTime returns the wall-clock time on the zero date (year 1, month 1,
// day 1), anchored to a fixed UTC offset if HasZone is set, or to UTC
// otherwise. Callers that need the zone-less distinction preserved
// should inspect HasZone directly rather than relying on the returned
// time.Time's location.
func (t RawTime) ToTime() time.Time {
	loc := time.UTC
	if t.HasZone && t.ZoneOffsetMinutes != 0 {
		loc = time.FixedZone("", int(t.ZoneOffsetMinutes)*60)
	}

	return time.Date(1, 1, 1, int(t.Hour), int(t.Minute), int(t.Second), int(t.Nanos), loc)
}

// TimeFromTime extracts the time-of-day portion of src. The zone is
// recorded as a fixed offset; src.Location() itself (e.g. an IANA name)
// is not preserved, matching the wire format's "offset, not zone name"
// model.
func TimeFromTime(src time.Time) RawTime {
	_, offsetSec := src.Zone()

	return RawTime{
		Hour:              int32(src.Hour()),
		Minute:            int32(src.Minute()),
		Second:            int32(src.Second()),
		Nanos:             int32(src.Nanosecond()),
		HasZone:           offsetSec != 0,
		ZoneOffsetMinutes: int32(offsetSec / 60),
	}
}

// ToTime composes the date and time-of-day components of dt.
func (dt RawDateTime) ToTime() time.Time {
	d := dt.Date.ToTime()
	t := dt.Time.ToTime()

	loc := t.Location()

	return time.Date(int(d.Year()), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// DateTimeFromTime splits src into its date and time-of-day components.
func DateTimeFromTime(src time.Time) RawDateTime {
	return RawDateTime{
		Date: DateFromTime(src),
		Time: TimeFromTime(src),
	}
}

// Normalize folds Months >= 12 or <= -12 into whole Years, matching the
// result a T_YEAR_MONTH_INTERVAL reader would present after arithmetic
// on the wire fields.
func (i RawYearMonthInterval) Normalize() RawYearMonthInterval {
	total := i.Years*12 + i.Months

	return RawYearMonthInterval{Years: total / 12, Months: total % 12}
}

// Duration converts i to the fixed-duration time.Duration it encodes.
// Days are treated as exactly 24 hours; leap seconds are not modeled.
func (i RawDayTimeInterval) Duration() time.Duration {
	d := time.Duration(i.Days) * 24 * time.Hour
	d += time.Duration(i.Hours) * time.Hour
	d += time.Duration(i.Minutes) * time.Minute
	d += time.Duration(i.Seconds) * time.Second
	d += time.Duration(i.Nanos)

	return d
}

// DayTimeIntervalFromDuration splits d into day/hour/minute/second/nanos
// components. Every component carries the sign of d (-25h gives
// {Days: -1, Hours: -1}), so round-tripping through Duration
// reproduces d exactly.
func DayTimeIntervalFromDuration(d time.Duration) RawDayTimeInterval {
	neg := d < 0
	if neg {
		d = -d
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	nanos := d

	sign := int32(1)
	if neg {
		sign = -1
	}

	return RawDayTimeInterval{
		Days:    sign * int32(days),
		Hours:   sign * int32(hours),
		Minutes: sign * int32(minutes),
		Seconds: sign * int32(seconds),
		Nanos:   sign * int32(nanos),
	}
}
