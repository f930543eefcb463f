package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laPaz(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/La_Paz")
	require.NoError(t, err)
	return loc
}

func ts(s string) *string { return &s }

func line(order, at, subtotal, qty string) Line {
	return Line{
		OrderID:   order,
		OrderedAt: ts(at),
		Subtotal:  decimal.RequireFromString(subtotal),
		Quantity:  decimal.RequireFromString(qty),
	}
}

func TestComputeRanges(t *testing.T) {
	loc := laPaz(t)
	// Thursday 2026-10-15 09:30 local
	now := time.Date(2026, 10, 15, 13, 30, 0, 0, time.UTC)

	rg := ComputeRanges(now, loc)

	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), rg.Today.Start)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, loc), rg.Today.End)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, loc), rg.Week.Start)
	assert.Equal(t, time.Monday, rg.Week.Start.Weekday())
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), rg.Week.End)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, loc), rg.Month.Start)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, loc), rg.Month.End)
}

func TestComputeRanges_Sunday(t *testing.T) {
	loc := laPaz(t)
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, loc)

	rg := ComputeRanges(now, loc)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, loc), rg.Week.Start)
}

func TestComputeRanges_WeekClippedToMonth(t *testing.T) {
	loc := laPaz(t)
	// Friday 2026-05-01; the Monday is 2026-04-27
	rg := ComputeRanges(time.Date(2026, 5, 1, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, rg.Month.Start, rg.Week.Start)

	// Thursday 2026-04-30; the week runs into May
	rg = ComputeRanges(time.Date(2026, 4, 30, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, rg.Month.End, rg.Week.End)
	assert.True(t, rg.Week.Contains(time.Date(2026, 4, 30, 23, 59, 0, 0, loc)))
}

func TestComputeRanges_LocalMidnightBoundary(t *testing.T) {
	loc := laPaz(t)
	// 02:00 UTC on the 16th is still the 15th in La Paz
	rg := ComputeRanges(time.Date(2026, 10, 16, 2, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, 15, rg.Today.Start.Day())
}

func TestRollup_RangeConsistency(t *testing.T) {
	loc := laPaz(t)
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, loc)
	rg := ComputeRanges(now, loc)

	lines := []Line{
		// today, two lines of the same order
		line("o1", "2026-10-15T10:00:00-04:00", "100", "2"),
		line("o1", "2026-10-15T10:00:00-04:00", "50", "1"),
		line("o2", "2026-10-15T23:59:59-04:00", "10", "1"),
		// earlier this week
		line("o3", "2026-10-13T08:00:00-04:00", "200", "4"),
		// Monday 00:00 local, stored in UTC
		line("o4", "2026-10-12T04:00:00Z", "5", "1"),
		// earlier this month
		line("o5", "2026-10-02T12:00:00-04:00", "300", "3"),
		// excluded everywhere
		{OrderID: "o6", OrderedAt: nil, Subtotal: decimal.NewFromInt(999), Quantity: decimal.NewFromInt(9)},
		line("o7", "not a date", "999", "9"),
		// next month
		line("o8", "2026-11-01T00:00:00-04:00", "999", "9"),
	}

	today, week, month := Rollup(lines, rg)

	assert.True(t, today.Revenue.Equal(decimal.NewFromInt(160)), "today revenue %s", today.Revenue)
	assert.True(t, today.Units.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 2, today.Tickets)

	assert.True(t, week.Revenue.Equal(decimal.NewFromInt(365)), "week revenue %s", week.Revenue)
	assert.Equal(t, 4, week.Tickets)

	assert.True(t, month.Revenue.Equal(decimal.NewFromInt(665)), "month revenue %s", month.Revenue)
	assert.Equal(t, 5, month.Tickets)

	// today plus the rest of the week equals the week
	var restOfWeek []Line
	for _, l := range lines {
		at, ok := ParseTimestamp(derefOr(l.OrderedAt))
		if ok && rg.Week.Contains(at) && !rg.Today.Contains(at) {
			restOfWeek = append(restOfWeek, l)
		}
	}
	_, rest, _ := Rollup(restOfWeek, rg)
	assert.True(t, today.Revenue.Add(rest.Revenue).Equal(week.Revenue))
	assert.True(t, week.Revenue.LessThanOrEqual(month.Revenue))
	assert.LessOrEqual(t, week.Tickets, month.Tickets)
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestRollup_NoRoundingApplied(t *testing.T) {
	loc := laPaz(t)
	rg := ComputeRanges(time.Date(2026, 10, 15, 12, 0, 0, 0, loc), loc)

	today, _, _ := Rollup([]Line{
		line("a", "2026-10-15T10:00:00-04:00", "0.105", "1"),
		line("b", "2026-10-15T10:00:00-04:00", "0.105", "1"),
	}, rg)
	assert.Equal(t, "0.21", today.Revenue.String())
}

func TestParseTimestamp(t *testing.T) {
	valid := []string{
		"2026-10-15T10:00:00Z",
		"2026-10-15T10:00:00.123456-04:00",
		"2026-10-15 10:00:00-04",
		"2026-10-15 10:00:00.5+00:00",
		"2026-10-15 10:00:00",
	}
	for _, v := range valid {
		_, ok := ParseTimestamp(v)
		assert.True(t, ok, v)
	}

	for _, v := range []string{"", "yesterday", "2026-13-40T00:00:00Z"} {
		_, ok := ParseTimestamp(v)
		assert.False(t, ok, v)
	}
}

func TestBuildOverview(t *testing.T) {
	loc := laPaz(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, loc)
	rg := ComputeRanges(now, loc)

	ov := BuildOverview(now, loc, rg,
		[]Line{line("a", "2026-10-15T10:00:00-04:00", "10", "1")},
		[]decimal.Decimal{decimal.RequireFromString("4.5"), decimal.RequireFromString("0.5")},
		[]string{"p1", "p2", "p1", ""},
	)

	assert.Equal(t, "America/La_Paz", ov.Timezone)
	assert.Equal(t, 1, ov.Today.Tickets)
	assert.Equal(t, 2, ov.ReturnsToday.Count)
	assert.True(t, ov.ReturnsToday.Amount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, ov.AttendanceToday)
}
