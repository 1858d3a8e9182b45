package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"estate-backoffice/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xuri/excelize/v2"
)

func reportBookings() []models.Booking {
	return []models.Booking{
		{ID: "1", CustomerName: "Asha Rao", ProjectName: "Lake View", ContactNumber: "9876543210", Type: "2BHK",
			Area: 1100.5, AgreementCost: 5000000, Amount: 0.1, TaxGST: 0.2, Status: models.StatusActive,
			Timeline: models.Timestamp{Time: time.Date(2030, 1, 2, 4, 30, 0, 0, time.UTC)}},
		{ID: "2", CustomerName: "Ravi", ProjectName: "Palm Grove", ContactNumber: "9123456780", Type: "Villa",
			Area: 2400, AgreementCost: 9000000, Amount: 0.2, TaxGST: 0.1, RefundBuyer: 500, Status: models.StatusComplete},
	}
}

func TestSummarize(t *testing.T) {
	totals := Summarize(reportBookings())
	if totals.Count != 2 {
		t.Fatalf("expected 2, got %d", totals.Count)
	}
	if totals.Amount.String() != "0.3" {
		t.Fatalf("expected exact 0.3, got %s", totals.Amount)
	}
	if totals.Area.String() != "3500.5" || totals.Refunds.String() != "500" {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestBookingsXLSX(t *testing.T) {
	meta := Meta{GeneratedAt: time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC), GeneratedBy: "admin", StatusFilter: "active"}
	data, err := BookingsXLSX(reportBookings(), meta)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook should open: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(bookingsSheet, "B2"); got != "Customer" {
		t.Fatalf("unexpected header %q", got)
	}
	if got, _ := f.GetCellValue(bookingsSheet, "B3"); got != "Asha Rao" {
		t.Fatalf("unexpected first row %q", got)
	}
	if got, _ := f.GetCellValue(bookingsSheet, "N3"); got != "2030-01-02 10:00:00" {
		t.Fatalf("timeline should be in IST, got %q", got)
	}
	if got, _ := f.GetCellValue(bookingsSheet, "A5"); got != "Total" {
		t.Fatalf("expected totals row, got %q", got)
	}
	if got, _ := f.GetCellValue(bookingsSheet, "B5"); got != "2 bookings" {
		t.Fatalf("unexpected count %q", got)
	}
}

func TestBookingsPDF(t *testing.T) {
	data, err := BookingsPDF(reportBookings(), Meta{GeneratedAt: time.Now(), GeneratedBy: "admin"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}

	empty, err := BookingsPDF(nil, Meta{GeneratedAt: time.Now()})
	if err != nil || len(empty) == 0 {
		t.Fatalf("empty report should still render: %v", err)
	}
}

func TestRupees(t *testing.T) {
	if got := rupees(1234567); got != "Rs. 12,34,567" {
		t.Fatalf("unexpected %q", got)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archiver(t *testing.T) {
	t.Run("uploads under prefix", func(t *testing.T) {
		put := &fakePutter{}
		a := newS3Archiver(put, "backoffice", "/exports/")

		if err := a.Archive(context.Background(), "analytics_export_2024-03-15.json", []byte(`{}`)); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if aws.ToString(put.input.Key) != "exports/analytics_export_2024-03-15.json" {
			t.Fatalf("unexpected key %q", aws.ToString(put.input.Key))
		}
		if aws.ToString(put.input.Bucket) != "backoffice" || aws.ToString(put.input.ContentType) != "application/json" {
			t.Fatalf("unexpected input %+v", put.input)
		}
		if string(put.body) != `{}` {
			t.Fatalf("unexpected body %q", put.body)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		a := newS3Archiver(&fakePutter{err: errors.New("denied")}, "b", "")
		if err := a.Archive(context.Background(), "x.json", nil); err == nil {
			t.Fatal("expected error")
		}
	})
}
