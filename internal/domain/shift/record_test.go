package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"1:00 AM", 60},
		{"11:59 AM", 11*60 + 59},
		{"12:00 PM", 12 * 60},
		{"1:15 PM", 13*60 + 15},
		{"11:30 PM", 23*60 + 30},
		{"9:35 am", 9*60 + 35},
	}
	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"", "8:05", "13:00 PM", "0:30 AM", "8:60 AM", "noon", "8:05  AM PM"} {
		_, err := ParseClockTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestHoursBetween(t *testing.T) {
	cases := []struct {
		in, out string
		want    float64
	}{
		{"9:00 AM", "5:00 PM", 8.00},
		{"11:30 PM", "1:15 AM", 1.75}, // midnight wrap
		{"12:00 PM", "12:00 AM", 12.00},
		{"8:45 AM", "5:00 PM", 8.25},
		{"8:00 AM", "8:00 AM", 0},
		{"10:00 PM", "2:00 AM", 4.00},
		{"9:35 AM", "9:36 AM", 0.02},
	}
	for _, c := range cases {
		got, err := HoursBetween(c.in, c.out)
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-9, "%s -> %s", c.in, c.out)
	}
}

func TestHoursBetween_AlwaysInRange(t *testing.T) {
	times := []string{"12:00 AM", "3:17 AM", "9:00 AM", "11:59 AM", "12:00 PM", "4:44 PM", "11:59 PM"}
	for _, a := range times {
		for _, b := range times {
			h, err := HoursBetween(a, b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, h, 0.0, "%s -> %s", a, b)
			assert.LessOrEqual(t, h, 24.0, "%s -> %s", a, b)
		}
	}
}

func TestRecordOpenClosed(t *testing.T) {
	assert.True(t, Record{CheckIn: "8:00 AM"}.Open())
	assert.False(t, Record{CheckIn: "8:00 AM", CheckOut: "4:00 PM"}.Open())
	assert.False(t, Record{}.Open())
	assert.True(t, Record{CheckIn: "8:00 AM", CheckOut: "4:00 PM"}.Closed())
	assert.False(t, Record{CheckIn: "8:00 AM", CheckOut: "  "}.Closed())
}

func TestRecordRecompute(t *testing.T) {
	r := Record{CheckIn: "9:00 AM", CheckOut: "5:00 PM"}
	require.NoError(t, r.Recompute())
	require.NotNil(t, r.WorkedHours)
	assert.Equal(t, 8.00, *r.WorkedHours)

	// Clearing a time clears the derived hours too.
	r.CheckOut = ""
	require.NoError(t, r.Recompute())
	assert.Nil(t, r.WorkedHours)

	bad := Record{CheckIn: "9:00 AM", CheckOut: "garbage"}
	assert.Error(t, bad.Recompute())
}

func TestRecordHours_MalformedIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Record{CheckIn: "bad", CheckOut: "worse"}.Hours())
	assert.Equal(t, 0.0, Record{CheckIn: "8:00 AM"}.Hours())

	stored := 7.5
	assert.Equal(t, 7.5, Record{WorkedHours: &stored}.Hours())
}
