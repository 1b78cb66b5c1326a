package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	key, err := ParseDateKey("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-03-09"), key)

	for _, bad := range []string{"", "2024-3-9", "09/03/2024", "2024-02-30", "yesterday"} {
		_, err := ParseDateKey(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestNewDateKey_KeepsCallerCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	lateEvening := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, DateKey("2024-06-01"), NewDateKey(lateEvening))
}

func TestDateKey_AddDays(t *testing.T) {
	assert.Equal(t, DateKey("2024-03-01"), DateKey("2024-02-28").AddDays(2))
	assert.Equal(t, DateKey("2023-12-31"), DateKey("2024-01-01").AddDays(-1))
	assert.Equal(t, DateKey("garbage"), DateKey("garbage").AddDays(3))
}

func TestDateKey_Scan(t *testing.T) {
	var d DateKey

	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, DateKey("2024-05-06"), d)

	require.NoError(t, d.Scan("2024-05-07T00:00:00Z"))
	assert.Equal(t, DateKey("2024-05-07"), d)

	require.NoError(t, d.Scan([]byte("2024-05-08")))
	assert.Equal(t, DateKey("2024-05-08"), d)

	assert.ErrorIs(t, d.Scan(42), ErrInvalidDate)

	_, err := DateKey("nope").Value()
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, DaysBetween(from, to))
	assert.Equal(t, -14, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))
}

func TestISOWeek(t *testing.T) {
	t.Run("Thursday anchored year boundaries", func(t *testing.T) {
		assert.Equal(t, ISOWeek{Year: 2020, Week: 53}, ISOWeekOf(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, ISOWeek{Year: 2020, Week: 53}, ISOWeekOf(time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, ISOWeek{Year: 2021, Week: 1}, ISOWeekOf(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, ISOWeek{Year: 2025, Week: 1}, ISOWeekOf(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("Next and Prev cross the year", func(t *testing.T) {
		assert.Equal(t, ISOWeek{Year: 2021, Week: 1}, ISOWeek{Year: 2020, Week: 53}.Next())
		assert.Equal(t, ISOWeek{Year: 2022, Week: 1}, ISOWeek{Year: 2021, Week: 52}.Next())
		assert.Equal(t, ISOWeek{Year: 2020, Week: 53}, ISOWeek{Year: 2021, Week: 1}.Prev())
		assert.Equal(t, ISOWeek{Year: 2024, Week: 9}, ISOWeek{Year: 2024, Week: 10}.Prev())
	})

	t.Run("Ordering and format", func(t *testing.T) {
		assert.True(t, ISOWeek{Year: 2023, Week: 52}.Before(ISOWeek{Year: 2024, Week: 1}))
		assert.False(t, ISOWeek{Year: 2024, Week: 2}.Before(ISOWeek{Year: 2024, Week: 2}))
		assert.Equal(t, "2024-W05", ISOWeek{Year: 2024, Week: 5}.String())
	})
}
