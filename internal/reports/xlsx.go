package reports

import (
	"fmt"

	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var xlsxHeaders = []string{
	"ID", "Customer", "Contact", "Project", "Type", "Area (sq ft)", "Agreement Cost",
	"Amount", "Tax/GST", "Refund Buyer", "Refund Referral", "ONC Trust Fund",
	"ONCCT Funded", "Timeline", "Invoice Status", "Loan Required", "Status",
}

// BookingsXLSX renders the bookings as a spreadsheet with a totals row
func BookingsXLSX(bookings []models.Booking, meta Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	lastCol, _ := excelize.ColumnNumberToName(len(xlsxHeaders))

	f.SetCellValue(bookingsSheet, "A1", fmt.Sprintf("Bookings report - %s - generated %s by %s",
		filterLabel(meta), timeutil.FormatIST(meta.GeneratedAt, "02 Jan 2006 03:04 PM"), meta.GeneratedBy))
	f.MergeCell(bookingsSheet, "A1", lastCol+"1")
	if style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err == nil {
		f.SetCellStyle(bookingsSheet, "A1", "A1", style)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(bookingsSheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err == nil {
		f.SetCellStyle(bookingsSheet, "A2", lastCol+"2", style)
	}

	row := 3
	for i := range bookings {
		b := &bookings[i]
		timeline := ""
		if !b.Timeline.IsZero() {
			timeline = timeutil.FormatIST(b.Timeline.Time, timeutil.DateTimeLayout)
		}
		values := []any{
			string(b.ID), b.CustomerName, b.ContactNumber, b.ProjectName, b.Type, b.Area,
			b.AgreementCost, b.Amount, b.TaxGST, b.RefundBuyer, b.RefundReferral,
			b.ONCTrustFund, b.ONCCTFunded, timeline, b.InvoiceStatus, b.LoanReq, b.Status,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(bookingsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", row, err)
		}
		row++
	}

	totals := Summarize(bookings)
	totalRow := []any{
		"Total", fmt.Sprintf("%d bookings", totals.Count), "", "", "",
		totals.Area.InexactFloat64(), totals.AgreementCost.InexactFloat64(),
		totals.Amount.InexactFloat64(), totals.TaxGST.InexactFloat64(),
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(bookingsSheet, cell, &totalRow); err != nil {
		return nil, fmt.Errorf("error writing totals: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	}); err == nil {
		f.SetCellStyle(bookingsSheet, cell, fmt.Sprintf("%s%d", lastCol, row), style)
	}

	f.SetColWidth(bookingsSheet, "A", "A", 8)
	f.SetColWidth(bookingsSheet, "B", "D", 22)
	f.SetColWidth(bookingsSheet, "E", lastCol, 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error saving workbook: %w", err)
	}
	return buf.Bytes(), nil
}
