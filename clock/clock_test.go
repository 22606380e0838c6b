package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philtim/offsetclock/clock"
	"github.com/philtim/offsetclock/offset"
)

// 09:00 UTC, i.e. 10:00 at GMT+1
var reference = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestFormat_HomeAndTokyo(t *testing.T) {
	hosts := []*time.Location{
		time.UTC,
		time.FixedZone("host-5", -5*3600),
		time.FixedZone("host+9", 9*3600),
		time.FixedZone("host+5:30", 5*3600+1800),
	}

	for _, host := range hosts {
		t.Run(host.String(), func(t *testing.T) {
			at := reference.In(host)
			assert.Equal(t, "10:00:00 AM", clock.Format(at, 1))
			assert.Equal(t, "6:00:00 PM", clock.Format(at, 9))
		})
	}
}

func TestFormat_Boundaries(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 5, 9, 0, time.UTC)
	assert.Equal(t, "12:05:09 PM", clock.Format(at, 0))
	assert.Equal(t, "12:05:09 AM", clock.Format(at, 12))
	assert.Equal(t, "12:05:09 AM", clock.Format(at, -12))
	assert.Equal(t, "7:05:09 AM", clock.Format(at, -5))
}

func TestClock_New(t *testing.T) {
	c, err := clock.New("Tokyo", "utc + 9")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", c.Name)
	assert.Equal(t, offset.Offset(9), c.Offset)
	assert.Equal(t, "UTC+9", c.Label.String())

	_, err = clock.New("Mars", "MST+2")
	assert.ErrorIs(t, err, offset.ErrFormat)

	_, err = clock.New("Nowhere", "UTC+14")
	assert.ErrorIs(t, err, offset.ErrRange)
}

func TestClock_FormatDateWithOffset(t *testing.T) {
	c, err := clock.New("Auckland", "GMT+12")
	require.NoError(t, err)

	late := time.Date(2025, 12, 31, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "1:00:00 AM", c.FormatAt(late))
	assert.Equal(t, "2026-01-01", c.FormatDateAt(late))
	assert.Equal(t, "2026-01-01 - GMT+12", c.FormatDateWithOffset(late))
}

func TestClock_TimeAt(t *testing.T) {
	c := clock.FromOffset("Lima", -5)
	got := c.TimeAt(reference.In(time.FixedZone("host+9", 9*3600)))

	assert.True(t, got.Equal(reference))
	name, secs := got.Zone()
	assert.Equal(t, "UTC-5", name)
	assert.Equal(t, -5*3600, secs)
	assert.Equal(t, "4:00:00 AM", got.Format(clock.TimeLayout))
}

func TestFromOffset(t *testing.T) {
	c := clock.FromOffset("HOME", -3)
	assert.Equal(t, "UTC-3", c.Label.String())
	assert.Equal(t, offset.Offset(-3), c.Offset)
}

func TestLead(t *testing.T) {
	assert.Equal(t, "+8h", clock.Lead(1, 9))
	assert.Equal(t, "-6h", clock.Lead(1, -5))
	assert.Equal(t, "+0h", clock.Lead(3, 3))
}

func TestSortByOffset(t *testing.T) {
	clocks := []*clock.Clock{
		clock.FromOffset("Tokyo", 9),
		clock.FromOffset("New York", -5),
		clock.FromOffset("London", 0),
		clock.FromOffset("Lisbon", 0),
	}
	clock.SortByOffset(clocks)

	var names []string
	for _, c := range clocks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"New York", "London", "Lisbon", "Tokyo"}, names)
}

func TestSources(t *testing.T) {
	fixed := clock.Fixed{Time: reference}
	assert.Equal(t, reference, fixed.Now())
	assert.WithinDuration(t, time.Now(), clock.System{}.Now(), time.Minute)
}
