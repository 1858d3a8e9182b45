package reports

import (
	"time"

	"estate-backoffice/internal/models"

	"github.com/shopspring/decimal"
)

// Meta describes the view a report was taken from
type Meta struct {
	GeneratedAt  time.Time
	GeneratedBy  string
	SearchTerm   string
	StatusFilter string
}

// Totals are the money columns summed over a report
type Totals struct {
	Count         int
	Area          decimal.Decimal
	AgreementCost decimal.Decimal
	Amount        decimal.Decimal
	TaxGST        decimal.Decimal
	Refunds       decimal.Decimal
}

// Summarize adds up the report columns without float drift
func Summarize(bookings []models.Booking) Totals {
	t := Totals{Count: len(bookings)}
	for i := range bookings {
		b := &bookings[i]
		t.Area = t.Area.Add(decimal.NewFromFloat(b.Area))
		t.AgreementCost = t.AgreementCost.Add(decimal.NewFromFloat(b.AgreementCost))
		t.Amount = t.Amount.Add(decimal.NewFromFloat(b.Amount))
		t.TaxGST = t.TaxGST.Add(decimal.NewFromFloat(b.TaxGST))
		t.Refunds = t.Refunds.Add(decimal.NewFromFloat(b.NetRefund()))
	}
	return t
}

func filterLabel(m Meta) string {
	switch {
	case m.SearchTerm != "" && m.StatusFilter != "":
		return "Search: " + m.SearchTerm + ", Status: " + m.StatusFilter
	case m.SearchTerm != "":
		return "Search: " + m.SearchTerm
	case m.StatusFilter != "":
		return "Status: " + m.StatusFilter
	default:
		return "All bookings"
	}
}
