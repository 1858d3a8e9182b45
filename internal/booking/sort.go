package booking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"estate-backoffice/internal/models"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

var ErrUnknownColumn = errors.New("unknown sort column")

type comparer func(a, b *models.Booking) int

func byText(field func(*models.Booking) string) comparer {
	return func(a, b *models.Booking) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func byNumber(field func(*models.Booking) float64) comparer {
	return func(a, b *models.Booking) int {
		return cmp.Compare(field(a), field(b))
	}
}

// byID orders numeric ids by value and anything else as text
func byID(a, b *models.Booking) int {
	x, errX := strconv.ParseInt(string(a.ID), 10, 64)
	y, errY := strconv.ParseInt(string(b.ID), 10, 64)
	if errX == nil && errY == nil {
		return cmp.Compare(x, y)
	}
	return strings.Compare(strings.ToLower(string(a.ID)), strings.ToLower(string(b.ID)))
}

var columns = map[string]comparer{
	"id":              byID,
	"customer_name":   byText(func(b *models.Booking) string { return b.CustomerName }),
	"contact_number":  byText(func(b *models.Booking) string { return b.ContactNumber }),
	"project_name":    byText(func(b *models.Booking) string { return b.ProjectName }),
	"type":            byText(func(b *models.Booking) string { return b.Type }),
	"invoice_status":  byText(func(b *models.Booking) string { return b.InvoiceStatus }),
	"loan_req":        byText(func(b *models.Booking) string { return b.LoanReq }),
	"status":          byText(func(b *models.Booking) string { return b.Status }),
	"area":            byNumber(func(b *models.Booking) float64 { return b.Area }),
	"agreement_cost":  byNumber(func(b *models.Booking) float64 { return b.AgreementCost }),
	"amount":          byNumber(func(b *models.Booking) float64 { return b.Amount }),
	"tax_gst":         byNumber(func(b *models.Booking) float64 { return b.TaxGST }),
	"refund_buyer":    byNumber(func(b *models.Booking) float64 { return b.RefundBuyer }),
	"refund_referral": byNumber(func(b *models.Booking) float64 { return b.RefundReferral }),
	"onc_trust_fund":  byNumber(func(b *models.Booking) float64 { return b.ONCTrustFund }),
	"oncct_funded":    byNumber(func(b *models.Booking) float64 { return b.ONCCTFunded }),
	"timeline": func(a, b *models.Booking) int {
		return a.Timeline.Compare(b.Timeline.Time)
	},
}

// SortTable orders the view by column. Repeating the column flips the
// direction; a new column starts ascending. Ties keep their order.
func (c *Controller) SortTable(column string) error {
	if _, ok := columns[column]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sortColumn == column {
		if c.sortDir == Ascending {
			c.sortDir = Descending
		} else {
			c.sortDir = Ascending
		}
	} else {
		c.sortColumn = column
		c.sortDir = Ascending
	}

	c.sortLocked()
	c.table = c.renderLocked()
	return nil
}

func (c *Controller) sortLocked() {
	compare, ok := columns[c.sortColumn]
	if !ok {
		return
	}
	desc := c.sortDir == Descending
	slices.SortStableFunc(c.filtered, func(a, b models.Booking) int {
		if desc {
			return compare(&b, &a)
		}
		return compare(&a, &b)
	})
}
