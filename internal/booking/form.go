package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"
	"strconv"
	"strings"
	"time"

	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/metrics"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/internal/ui"

	"github.com/shopspring/decimal"
)

// Modal is the create/edit dialog as the page should show it
type Modal struct {
	Open      bool              `json:"open"`
	Title     string            `json:"title,omitempty"`
	EditingID models.BookingID  `json:"editing_id,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
}

func (m Modal) clone() Modal {
	m.Values = maps.Clone(m.Values)
	return m
}

var numericFields = map[string]func(*models.BookingInput, *float64){
	"area":            func(in *models.BookingInput, v *float64) { in.Area = v },
	"agreement_cost":  func(in *models.BookingInput, v *float64) { in.AgreementCost = v },
	"amount":          func(in *models.BookingInput, v *float64) { in.Amount = v },
	"tax_gst":         func(in *models.BookingInput, v *float64) { in.TaxGST = v },
	"refund_buyer":    func(in *models.BookingInput, v *float64) { in.RefundBuyer = v },
	"refund_referral": func(in *models.BookingInput, v *float64) { in.RefundReferral = v },
	"onc_trust_fund":  func(in *models.BookingInput, v *float64) { in.ONCTrustFund = v },
	"oncct_funded":    func(in *models.BookingInput, v *float64) { in.ONCCTFunded = v },
}

var textFields = map[string]func(*models.BookingInput, string){
	"customer_name":  func(in *models.BookingInput, v string) { in.CustomerName = v },
	"contact_number": func(in *models.BookingInput, v string) { in.ContactNumber = v },
	"project_name":   func(in *models.BookingInput, v string) { in.ProjectName = v },
	"type":           func(in *models.BookingInput, v string) { in.Type = v },
	"invoice_status": func(in *models.BookingInput, v string) { in.InvoiceStatus = v },
	"loan_req":       func(in *models.BookingInput, v string) { in.LoanReq = v },
	"status":         func(in *models.BookingInput, v string) { in.Status = v },
}

// NormalizeForm turns raw form values into an API payload. Blank fields are
// left out, numeric fields that fail to parse become 0 and the datetime-local
// timeline (read in IST) becomes a UTC wire timestamp. An unreadable timeline
// is reported as a *ValidationError alongside the partial payload.
func NormalizeForm(values map[string]string) (*models.BookingInput, error) {
	in, timelineInvalid := normalize(values)
	if timelineInvalid {
		return in, &ValidationError{Problems: []string{"Timeline is invalid"}}
	}
	return in, nil
}

func normalize(values map[string]string) (*models.BookingInput, bool) {
	in := &models.BookingInput{}
	timelineInvalid := false

	for key, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		if set, ok := numericFields[key]; ok {
			set(in, parseNumber(value))
			continue
		}
		if set, ok := textFields[key]; ok {
			set(in, value)
			continue
		}
		if key == "timeline" {
			t, err := parseDateInput(value)
			if err != nil {
				timelineInvalid = true
				continue
			}
			in.Timeline = &models.Timestamp{Time: t}
		}
	}
	return in, timelineInvalid
}

func parseNumber(value string) *float64 {
	f := 0.0
	if d, err := decimal.NewFromString(value); err == nil {
		f = d.InexactFloat64()
	}
	return &f
}

func parseDateInput(value string) (time.Time, error) {
	for _, layout := range []string{timeutil.DateInputLayout, "2006-01-02T15:04:05"} {
		if t, err := timeutil.ParseInIST(layout, value); err == nil {
			return t, nil
		}
	}
	return timeutil.ParseFlexible(value)
}

// formValues renders a booking into the values the form inputs show
func formValues(b *models.Booking) map[string]string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	values := map[string]string{
		"customer_name":   b.CustomerName,
		"contact_number":  b.ContactNumber,
		"project_name":    b.ProjectName,
		"type":            b.Type,
		"area":            num(b.Area),
		"agreement_cost":  num(b.AgreementCost),
		"amount":          num(b.Amount),
		"tax_gst":         num(b.TaxGST),
		"refund_buyer":    num(b.RefundBuyer),
		"refund_referral": num(b.RefundReferral),
		"onc_trust_fund":  num(b.ONCTrustFund),
		"oncct_funded":    num(b.ONCCTFunded),
		"invoice_status":  b.InvoiceStatus,
		"loan_req":        b.LoanReq,
		"status":          b.Status,
	}
	if !b.Timeline.IsZero() {
		values["timeline"] = timeutil.FormatIST(b.Timeline.Time, timeutil.DateInputLayout)
	}
	return values
}

func (c *Controller) newFormValues() map[string]string {
	return map[string]string{
		"tax_gst":         "0",
		"refund_buyer":    "0",
		"refund_referral": "0",
		"onc_trust_fund":  "0",
		"oncct_funded":    "0",
		"invoice_status":  models.InvoicePending,
		"loan_req":        "no",
		"status":          models.StatusActive,
		"timeline":        timeutil.FormatIST(c.clock().Add(24*time.Hour), timeutil.DateInputLayout),
	}
}

// ShowBookingForm opens the modal, blank for nil or filled from b for editing
func (c *Controller) ShowBookingForm(b *models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showFormLocked(b)
}

func (c *Controller) showFormLocked(b *models.Booking) {
	if b != nil {
		copied := *b
		c.editing = &copied
		c.modal = Modal{Open: true, Title: "Edit Booking", EditingID: b.ID, Values: formValues(b)}
	} else {
		c.editing = nil
		c.modal = Modal{Open: true, Title: "Add New Booking", Values: c.newFormValues()}
	}
	c.ui.HideError(ui.SlotModalError)
}

// EditBooking opens the form for id if the role allows editing it
func (c *Controller) EditBooking(id models.BookingID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.findLocked(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	if !auth.CanEdit(c.role, b) {
		c.ui.ShowError(msgEditForbidden, ui.SlotToast)
		return nil
	}
	c.showFormLocked(b)
	return nil
}

// CloseModal hides the form and forgets the editing target
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	c.modal = Modal{}
	c.editing = nil
	c.ui.HideError(ui.SlotModalError)
}

// SubmitForm validates the form and creates or updates the booking.
// Problems are shown inside the modal, which stays open.
func (c *Controller) SubmitForm(ctx context.Context, values map[string]string) {
	input, timelineInvalid := normalize(values)

	c.mu.Lock()
	var editing *models.Booking
	if c.editing != nil {
		copied := *c.editing
		editing = &copied
	}
	role := c.role
	c.modal.Values = maps.Clone(values)
	c.mu.Unlock()

	if err := validate(input, c.clock(), timelineInvalid); err != nil {
		metrics.ValidationFailures.Inc()
		log.Printf("[Bookings] Rejected submission: %v", err)
		c.ui.ShowError(err.Error(), ui.SlotModalError)
		return
	}

	if editing != nil && !auth.CanEdit(role, editing) {
		c.ui.ShowError(msgEditForbidden, ui.SlotModalError)
		return
	}

	c.ui.HideError(ui.SlotModalError)
	c.ui.SetLoading(LoadingSubmit, true)
	defer c.ui.SetLoading(LoadingSubmit, false)

	var (
		msg string
		err error
	)
	if editing != nil {
		msg, err = c.api.UpdateBooking(ctx, editing.ID, input)
	} else {
		msg, err = c.api.CreateBooking(ctx, input)
	}

	if err != nil {
		log.Printf("[Bookings] Error saving booking: %v", err)
		c.ui.ShowError(failureMessage(err, msgSaveFailed), ui.SlotModalError)
		return
	}

	if msg == "" {
		msg = msgSaved
	}
	c.ui.ShowSuccess(msg)
	c.CloseModal()
	c.LoadBookings(ctx)
}

// failureMessage maps a failed mutation to the text shown to the user
func failureMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiclient.ServerMessage(err, fallback)
	}
	return msgNetwork
}
