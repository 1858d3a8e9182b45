package ui

import (
	"strings"
	"time"

	"estate-backoffice/internal/timeutil"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders v as rupees with Indian digit grouping, e.g. ₹12,34,567.5
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	text := d.String()
	whole, frac, _ := strings.Cut(text, ".")
	frac = strings.TrimRight(frac, "0")

	out := "₹" + groupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian separates the last three digits, then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatPercent renders v with one decimal place
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// FormatCount renders a whole-number KPI
func FormatCount(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String()
}

// FormatDate renders t as a display date in IST; zero renders empty
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeutil.FormatIST(t, timeutil.DisplayLayout)
}
