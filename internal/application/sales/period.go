package sales

import (
	"time"

	"github.com/atlas/backend/internal/domain/shared"
)

// Period is a half-open reporting window
type Period struct {
	From time.Time
	To   time.Time
}

// ResolvePeriod fills a missing bound from the calendar month of now in
// loc. An explicit window must be non-empty.
func ResolvePeriod(from, to *time.Time, now time.Time, loc *time.Location) (Period, error) {
	local := now.In(loc)
	y, m, _ := local.Date()
	p := Period{
		From: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		To:   time.Date(y, m+1, 1, 0, 0, 0, 0, loc),
	}
	if from != nil {
		p.From = *from
	}
	if to != nil {
		p.To = *to
	}
	if !p.To.After(p.From) {
		return Period{}, shared.NewValidationError("to must be after from")
	}
	return p, nil
}
