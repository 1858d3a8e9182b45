package ui

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:          "₹0",
		999:        "₹999",
		1000:       "₹1,000",
		123456:     "₹1,23,456",
		1234567.5:  "₹12,34,567.5",
		98765432.1: "₹9,87,65,432.1",
		2500.456:   "₹2,500.46",
		-45000:     "-₹45,000",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		0:      "0.0%",
		66.666: "66.7%",
		100:    "100.0%",
	}
	for in, want := range cases {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	// 20:00 UTC is already the next day in IST
	ts := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "15 Mar 2024" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("zero time should render empty, got %q", got)
	}
}

func TestNotifier(t *testing.T) {
	n := NewNotifier()

	n.SetLoading("bookings-tab", true)
	if !n.IsLoading("bookings-tab") {
		t.Fatal("expected loading")
	}
	n.SetLoading("bookings-tab", false)
	if n.IsLoading("bookings-tab") {
		t.Fatal("loading should be cleared")
	}

	n.ShowError("Failed to load bookings", SlotToast)
	n.ShowError("Customer name is required", SlotModalError)
	n.ShowSuccess("Booking saved successfully")

	st := n.Drain()
	if len(st.Notices) != 2 || st.Notices[0].Kind != "error" || st.Notices[1].Kind != "success" {
		t.Fatalf("unexpected notices %+v", st.Notices)
	}
	if st.Errors[SlotModalError] != "Customer name is required" {
		t.Fatalf("unexpected inline errors %+v", st.Errors)
	}

	if again := n.Drain(); len(again.Notices) != 0 {
		t.Fatalf("notices should be drained, got %+v", again.Notices)
	}
	if n.InlineError(SlotModalError) == "" {
		t.Fatal("inline errors persist until hidden")
	}
	n.HideError(SlotModalError)
	if n.InlineError(SlotModalError) != "" {
		t.Fatal("inline error should be hidden")
	}
}
