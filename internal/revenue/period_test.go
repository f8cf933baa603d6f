package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestParsePeriodType(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly", "annual"} {
		pt, err := ParsePeriodType(valid)
		require.NoError(t, err)
		assert.Equal(t, PeriodType(valid), pt)
	}

	_, err := ParsePeriodType("hourly")
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
	_, err = ParsePeriodType("")
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}

func TestPeriodKeys(t *testing.T) {
	ts := date(2023, time.March, 15)

	assert.Equal(t, "2023-03-15", PeriodDaily.Key(ts))
	assert.Equal(t, "2023-W11", PeriodWeekly.Key(ts))
	assert.Equal(t, "2023-03", PeriodMonthly.Key(ts))
	assert.Equal(t, "2023", PeriodAnnual.Key(ts))
}

func TestWeeklyKeyConvention(t *testing.T) {
	// 2023-01-01 is a Sunday, so it opens W01 of 2023.
	assert.Equal(t, "2023-W01", PeriodWeekly.Key(date(2023, time.January, 1)))
	assert.Equal(t, "2023-W01", PeriodWeekly.Key(date(2023, time.January, 7)))
	assert.Equal(t, "2023-W02", PeriodWeekly.Key(date(2023, time.January, 8)))

	// 2022-12-31 is a Saturday; its week started Sunday 2022-12-25.
	assert.Equal(t, "2022-W52", PeriodWeekly.Key(date(2022, time.December, 31)))

	// 2024-01-01..06 precede 2024's first Sunday, so they inherit the last
	// week of 2023, whose Sunday is 2023-12-31.
	assert.Equal(t, "2023-W53", PeriodWeekly.Key(date(2024, time.January, 3)))
	assert.Equal(t, "2024-W01", PeriodWeekly.Key(date(2024, time.January, 7)))
}

func TestWeeklyKeysSortChronologically(t *testing.T) {
	prev := ""
	for d := date(2022, time.January, 1); d.Year() < 2025; d = d.AddDate(0, 0, 1) {
		key := PeriodWeekly.Key(d)
		assert.GreaterOrEqual(t, key, prev, "key for %s out of order", d.Format("2006-01-02"))
		prev = key
	}
}
