package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one order line joined to its parent order timestamp. OrderedAt
// is kept as the raw stored text; nil or unparseable values drop the line.
type Line struct {
	OrderID   string
	OrderedAt *string
	Subtotal  decimal.Decimal
	Quantity  decimal.Decimal
}

// Bucket is the rollup of one range
type Bucket struct {
	Revenue decimal.Decimal `json:"revenue"`
	Units   decimal.Decimal `json:"units"`
	Tickets int             `json:"tickets"`
}

// ReturnsRollup is the same-day returns summary
type ReturnsRollup struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// Overview is the dashboard payload
type Overview struct {
	Timezone        string        `json:"timezone"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Ranges          Ranges        `json:"ranges"`
	Today           Bucket        `json:"today"`
	Week            Bucket        `json:"week"`
	Month           Bucket        `json:"month"`
	ReturnsToday    ReturnsRollup `json:"returns_today"`
	AttendanceToday int           `json:"attendance_today"`
}

// Source supplies the raw rows for an overview
type Source interface {
	// OrderLines returns lines whose parent order falls inside r
	OrderLines(ctx context.Context, tenantID uuid.UUID, r Range) ([]Line, error)
	ReturnAmounts(ctx context.Context, tenantID uuid.UUID, r Range) ([]decimal.Decimal, error)
	// AttendancePeople returns one person id per check-in inside r
	AttendancePeople(ctx context.Context, tenantID uuid.UUID, r Range) ([]string, error)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads the textual timestamp forms a Postgres or SQLite
// driver can hand back. Values without an offset are taken as UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type stampedLine struct {
	Line
	at time.Time
}

// stamp parses each timestamp once and drops the lines that have none
func stamp(lines []Line) []stampedLine {
	out := make([]stampedLine, 0, len(lines))
	for _, l := range lines {
		if l.OrderedAt == nil {
			continue
		}
		at, ok := ParseTimestamp(*l.OrderedAt)
		if !ok {
			continue
		}
		out = append(out, stampedLine{Line: l, at: at})
	}
	return out
}

// accumulate is one linear pass over lines for range r. Tickets count
// distinct order ids, not rows.
func accumulate(lines []stampedLine, r Range) Bucket {
	b := Bucket{Revenue: decimal.Zero, Units: decimal.Zero}
	orders := make(map[string]struct{})
	for _, l := range lines {
		if !r.Contains(l.at) {
			continue
		}
		b.Revenue = b.Revenue.Add(l.Subtotal)
		b.Units = b.Units.Add(l.Quantity)
		orders[l.OrderID] = struct{}{}
	}
	b.Tickets = len(orders)
	return b
}

// Rollup aggregates lines over the three ranges
func Rollup(lines []Line, rg Ranges) (today, week, month Bucket) {
	stamped := stamp(lines)
	return accumulate(stamped, rg.Today), accumulate(stamped, rg.Week), accumulate(stamped, rg.Month)
}

// SumReturns totals return amounts as received
func SumReturns(amounts []decimal.Decimal) ReturnsRollup {
	r := ReturnsRollup{Amount: decimal.Zero, Count: len(amounts)}
	for _, a := range amounts {
		r.Amount = r.Amount.Add(a)
	}
	return r
}

// DistinctCount counts distinct non-empty ids
func DistinctCount(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// BuildOverview assembles the overview from already-fetched rows
func BuildOverview(now time.Time, loc *time.Location, rg Ranges, lines []Line, returns []decimal.Decimal, attendance []string) Overview {
	today, week, month := Rollup(lines, rg)
	return Overview{
		Timezone:        loc.String(),
		GeneratedAt:     now.In(loc),
		Ranges:          rg,
		Today:           today,
		Week:            week,
		Month:           month,
		ReturnsToday:    SumReturns(returns),
		AttendanceToday: DistinctCount(attendance),
	}
}
