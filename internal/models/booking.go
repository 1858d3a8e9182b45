package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"estate-backoffice/internal/timeutil"
)

// Booking statuses
const (
	StatusActive    = "active"
	StatusComplete  = "complete"
	StatusCancelled = "cancelled"
)

// Invoice statuses
const (
	InvoicePending = "pending"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// PropertyTypes lists the unit types offered in the booking form
var PropertyTypes = []string{"1BHK", "2BHK", "3BHK", "4BHK", "Villa", "Plot"}

// BookingStatuses lists booking statuses in lifecycle order
var BookingStatuses = []string{StatusActive, StatusComplete, StatusCancelled}

// InvoiceStatuses lists invoice statuses in billing order
var InvoiceStatuses = []string{InvoicePending, InvoiceSent, InvoicePaid, InvoiceOverdue}

// BookingID is opaque; the API sends it as a number but it is only ever compared and echoed
type BookingID string

func (id *BookingID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BookingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = BookingID(n.String())
	return nil
}

func (id BookingID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Timestamp reads the timestamp shapes the API emits and writes the wire format
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := timeutil.ParseFlexible(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(timeutil.ToWire(t.Time))
}

// Booking is a customer's reservation of a property unit as returned by the API
type Booking struct {
	ID             BookingID  `json:"id"`
	CustomerName   string     `json:"customer_name"`
	ContactNumber  string     `json:"contact_number"`
	ProjectName    string     `json:"project_name"`
	Type           string     `json:"type"`
	Area           float64    `json:"area"`
	AgreementCost  float64    `json:"agreement_cost"`
	Amount         float64    `json:"amount"`
	TaxGST         float64    `json:"tax_gst"`
	RefundBuyer    float64    `json:"refund_buyer"`
	RefundReferral float64    `json:"refund_referral"`
	ONCTrustFund   float64    `json:"onc_trust_fund"`
	ONCCTFunded    float64    `json:"oncct_funded"`
	Timeline       Timestamp  `json:"timeline"`
	InvoiceStatus  string     `json:"invoice_status"`
	LoanReq        string     `json:"loan_req"`
	Status         string     `json:"status"`
	CreatedAt      *Timestamp `json:"created_at,omitempty"`
	UpdatedAt      *Timestamp `json:"updated_at,omitempty"`
}

// TotalAmount is the amount including tax
func (b *Booking) TotalAmount() float64 {
	return b.Amount + b.TaxGST
}

// NetRefund is the sum of buyer and referral refunds
func (b *Booking) NetRefund() float64 {
	return b.RefundBuyer + b.RefundReferral
}

// BookingInput is the create/update payload. Absent fields are omitted on the wire.
type BookingInput struct {
	CustomerName   string     `json:"customer_name,omitempty"`
	ContactNumber  string     `json:"contact_number,omitempty"`
	ProjectName    string     `json:"project_name,omitempty"`
	Type           string     `json:"type,omitempty"`
	Area           *float64   `json:"area,omitempty"`
	AgreementCost  *float64   `json:"agreement_cost,omitempty"`
	Amount         *float64   `json:"amount,omitempty"`
	TaxGST         *float64   `json:"tax_gst,omitempty"`
	RefundBuyer    *float64   `json:"refund_buyer,omitempty"`
	RefundReferral *float64   `json:"refund_referral,omitempty"`
	ONCTrustFund   *float64   `json:"onc_trust_fund,omitempty"`
	ONCCTFunded    *float64   `json:"oncct_funded,omitempty"`
	Timeline       *Timestamp `json:"timeline,omitempty"`
	InvoiceStatus  string     `json:"invoice_status,omitempty"`
	LoanReq        string     `json:"loan_req,omitempty"`
	Status         string     `json:"status,omitempty"`
}

// BookingListResponse is the body of GET /bookings
type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
}

// MessageResponse is the body of successful mutations
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body the API sends on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
