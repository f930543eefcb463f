package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecentReturnsLimit caps the return rows echoed in a returns report
const RecentReturnsLimit = 20

// OrderRow is the slice of an order a sales report needs
type OrderRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
}

// ProductSales aggregates the lines sold for one product or description
type ProductSales struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Units       decimal.Decimal `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// MethodSales is the revenue taken through one payment method
type MethodSales struct {
	Method  PaymentMethod   `json:"method"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DaySales is the revenue of one business day
type DaySales struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReport summarizes orders over [From, To)
type SalesReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Orders        int             `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	ByMethod      []MethodSales   `json:"by_method"`
	Daily         []DaySales      `json:"daily"`
	TopProducts   []ProductSales  `json:"top_products"`
}

// ReturnsReport summarizes product returns over [From, To)
type ReturnsReport struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Units  decimal.Decimal `json:"units"`
	Recent []ReturnLine    `json:"recent"`
}

// ReturnLine is one return as echoed in a report
type ReturnLine struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReportReader reads the rows behind the sales report
type ReportReader interface {
	OrdersInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]OrderRow, error)
	TopProducts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ProductSales, error)
}

// BuildSalesReport groups orders by payment method and by day in loc.
// Days without orders are omitted.
func BuildSalesReport(from, to time.Time, loc *time.Location, orders []OrderRow, top []ProductSales) SalesReport {
	rep := SalesReport{
		From:        from,
		To:          to,
		Revenue:     decimal.Zero,
		ByMethod:    []MethodSales{},
		Daily:       []DaySales{},
		TopProducts: top,
	}
	if rep.TopProducts == nil {
		rep.TopProducts = []ProductSales{}
	}

	methods := map[PaymentMethod]*MethodSales{}
	days := map[string]*DaySales{}
	for _, o := range orders {
		rep.Orders++
		rep.Revenue = rep.Revenue.Add(o.Total)

		m, ok := methods[o.PaymentMethod]
		if !ok {
			m = &MethodSales{Method: o.PaymentMethod, Revenue: decimal.Zero}
			methods[o.PaymentMethod] = m
		}
		m.Orders++
		m.Revenue = m.Revenue.Add(o.Total)

		key := o.CreatedAt.In(loc).Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &DaySales{Day: key, Revenue: decimal.Zero}
			days[key] = d
		}
		d.Orders++
		d.Revenue = d.Revenue.Add(o.Total)
	}

	for _, m := range methods {
		rep.ByMethod = append(rep.ByMethod, *m)
	}
	sort.Slice(rep.ByMethod, func(i, j int) bool {
		return rep.ByMethod[i].Revenue.GreaterThan(rep.ByMethod[j].Revenue) ||
			(rep.ByMethod[i].Revenue.Equal(rep.ByMethod[j].Revenue) && rep.ByMethod[i].Method < rep.ByMethod[j].Method)
	})
	for _, d := range days {
		rep.Daily = append(rep.Daily, *d)
	}
	sort.Slice(rep.Daily, func(i, j int) bool { return rep.Daily[i].Day < rep.Daily[j].Day })

	rep.AverageTicket = decimal.Zero
	if rep.Orders > 0 {
		rep.AverageTicket = rep.Revenue.DivRound(decimal.NewFromInt(int64(rep.Orders)), 2)
	}
	return rep
}

// BuildReturnsReport totals returns; Recent keeps the newest rows first
func BuildReturnsReport(from, to time.Time, returns []ProductReturn) ReturnsReport {
	rep := ReturnsReport{
		From:   from,
		To:     to,
		Amount: decimal.Zero,
		Units:  decimal.Zero,
		Recent: []ReturnLine{},
	}
	for _, r := range returns {
		rep.Count++
		rep.Amount = rep.Amount.Add(r.Amount)
		rep.Units = rep.Units.Add(r.Quantity)
	}

	recent := append([]ProductReturn(nil), returns...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > RecentReturnsLimit {
		recent = recent[:RecentReturnsLimit]
	}
	for _, r := range recent {
		rep.Recent = append(rep.Recent, ReturnLine{
			ID:        r.ID,
			OrderID:   r.OrderID,
			Quantity:  r.Quantity,
			Amount:    r.Amount,
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}
	return rep
}
