package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"estate-backoffice/internal/models"
)

const minContactLength = 10

// ValidationError lists every rule a submission broke
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// Validate checks a normalized submission against the booking rules at now.
// All violations are reported together.
func Validate(in *models.BookingInput, now time.Time) error {
	return validate(in, now, false)
}

func validate(in *models.BookingInput, now time.Time, timelineInvalid bool) error {
	var problems []string
	add := func(msg string) { problems = append(problems, msg) }

	if in.CustomerName == "" {
		add("Customer name is required")
	}
	if in.ContactNumber == "" {
		add("Contact number is required")
	}
	if in.ProjectName == "" {
		add("Project name is required")
	}
	if in.Type == "" {
		add("Property type is required")
	}
	if in.Area == nil || *in.Area <= 0 {
		add("Area must be greater than 0")
	}
	switch {
	case in.AgreementCost == nil:
		add("Agreement cost is required")
	case *in.AgreementCost < 0:
		add("Agreement cost cannot be negative")
	}
	switch {
	case in.Amount == nil:
		add("Amount is required")
	case *in.Amount < 0:
		add("Amount cannot be negative")
	}
	switch {
	case timelineInvalid:
		add("Timeline is invalid")
	case in.Timeline == nil || in.Timeline.IsZero():
		add("Timeline is required")
	}

	if in.ContactNumber != "" && utf8.RuneCountInString(in.ContactNumber) < minContactLength {
		add("Contact number must be at least 10 digits")
	}

	if in.Timeline != nil && !in.Timeline.IsZero() && in.Timeline.Before(now) {
		add("Timeline cannot be in the past")
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
