package timespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	day := time.Date(2024, time.March, 14, 15, 42, 7, 0, time.UTC)

	start, end := DayBounds(day, day)
	assert.Equal(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)

	// The same calendar day spans exactly 24h minus one millisecond
	assert.Equal(t, 24*time.Hour-time.Millisecond, end.Sub(start))
}

func TestRFC3339MilliKeepsEndBoundMillisecond(t *testing.T) {
	day := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	start, end := DayBounds(day, day)
	assert.Equal(t, "2024-03-10T00:00:00Z", start.Format(RFC3339Milli))
	assert.Equal(t, "2024-03-10T23:59:59.999Z", end.Format(RFC3339Milli))

	// The server parses the bound back without losing the fraction
	parsed, err := time.Parse(time.RFC3339, end.Format(RFC3339Milli))
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(end))
}

func TestDayBoundsIgnoresTimezoneOffset(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+13", 13*60*60),
		time.FixedZone("UTC-11", -11*60*60),
	}

	for _, zone := range zones {
		local := time.Date(2024, time.March, 14, 18, 30, 0, 0, zone)
		start, end := DayBounds(local, local)

		assert.Equal(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), start, zone.String())
		assert.Equal(t, 24*time.Hour-time.Millisecond, end.Sub(start), zone.String())
	}
}

func TestDayBoundsSeparateDays(t *testing.T) {
	start, end := DayBounds(
		time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 1, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
}
