package metrics

import "time"

// Range is the half-open interval [Start, End)
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Ranges are the three reporting windows of the overview
type Ranges struct {
	Today Range `json:"today"`
	Week  Range `json:"week"`
	Month Range `json:"month"`
}

// ComputeRanges derives today, the Monday-starting week and the calendar
// month from now as seen in loc. The week is clipped to the month because
// the overview only ever reads month-bounded data, so week is always a
// subset of month and today a subset of week.
func ComputeRanges(now time.Time, loc *time.Location) Ranges {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	y, m, d := local.Date()

	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	today := Range{Start: dayStart, End: time.Date(y, m, d+1, 0, 0, 0, 0, loc)}

	month := Range{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		End:   time.Date(y, m+1, 1, 0, 0, 0, 0, loc),
	}

	// time.Weekday has Sunday = 0; shift so Monday = 0
	sinceMonday := (int(local.Weekday()) + 6) % 7
	week := Range{
		Start: time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, d-sinceMonday+7, 0, 0, 0, 0, loc),
	}
	if week.Start.Before(month.Start) {
		week.Start = month.Start
	}
	if week.End.After(month.End) {
		week.End = month.End
	}

	return Ranges{Today: today, Week: week, Month: month}
}
