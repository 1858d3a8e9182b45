package reports

import (
	"bytes"
	"fmt"
	"strings"

	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/internal/ui"

	"github.com/jung-kurt/gofpdf/v2"
)

// core PDF fonts have no rupee glyph
func rupees(v float64) string {
	return strings.Replace(ui.FormatCurrency(v), "₹", "Rs. ", 1)
}

// BookingsPDF renders the bookings as a landscape A4 table
func BookingsPDF(bookings []models.Booking, meta Meta) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Real Estate Bookings Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s by %s", timeutil.FormatIST(meta.GeneratedAt, "02-Jan-2006 03:04 PM"), tr(meta.GeneratedBy)), "", 1, "C", false, 0, "")
	pdf.CellFormat(277, 6, tr(filterLabel(meta)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{45, 45, 30, 20, 22, 37, 33, 25, 20}
	headers := []string{"Customer", "Project", "Contact", "Type", "Area", "Amount", "Timeline", "Invoice", "Status"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range bookings {
		b := &bookings[i]
		cells := []string{
			tr(b.CustomerName), tr(b.ProjectName), b.ContactNumber, b.Type,
			fmt.Sprintf("%.0f", b.Area), rupees(b.Amount), ui.FormatDate(b.Timeline.Time),
			b.InvoiceStatus, b.Status,
		}
		for j, text := range cells {
			align := "L"
			if j == 4 || j == 5 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 6, text, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(bookings) == 0 {
		pdf.CellFormat(277, 8, "No bookings found", "1", 1, "C", false, 0, "")
	}

	totals := Summarize(bookings)
	pdf.Ln(4)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(138, 7, fmt.Sprintf("Bookings: %d", totals.Count), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(139, 7, "Total amount: "+rupees(totals.Amount.InexactFloat64()), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(138, 7, "Agreement value: "+rupees(totals.AgreementCost.InexactFloat64()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(139, 7, "Tax/GST: "+rupees(totals.TaxGST.InexactFloat64()), "RB", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
