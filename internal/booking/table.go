package booking

import (
	"bytes"
	"html/template"
	"log"

	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/ui"
	"estate-backoffice/templates"
)

var rowsTemplate = template.Must(template.ParseFS(templates.FS, "booking_rows.html"))

type rowView struct {
	ID          models.BookingID
	Customer    string
	Project     string
	Contact     string
	Type        string
	Amount      string
	Status      string
	Timeline    string
	CanEdit     bool
	CanDelete   bool
	DeleteLabel string
	ViewOnly    bool
}

type tableView struct {
	Error string
	Rows  []rowView
}

func (c *Controller) renderLocked() template.HTML {
	view := tableView{Rows: make([]rowView, 0, len(c.filtered))}
	for i := range c.filtered {
		b := &c.filtered[i]
		canEdit := auth.CanEdit(c.role, b)
		canDelete := auth.CanDelete(c.role, b)
		view.Rows = append(view.Rows, rowView{
			ID:          b.ID,
			Customer:    b.CustomerName,
			Project:     b.ProjectName,
			Contact:     b.ContactNumber,
			Type:        b.Type,
			Amount:      ui.FormatCurrency(b.Amount),
			Status:      b.Status,
			Timeline:    ui.FormatDate(b.Timeline.Time),
			CanEdit:     canEdit,
			CanDelete:   canDelete,
			DeleteLabel: auth.DeleteLabel(c.role),
			ViewOnly:    !canEdit && !canDelete,
		})
	}
	return execute(view)
}

func renderMessage(msg string) template.HTML {
	return execute(tableView{Error: msg})
}

func execute(view tableView) template.HTML {
	var buf bytes.Buffer
	if err := rowsTemplate.ExecuteTemplate(&buf, "booking_rows", view); err != nil {
		log.Printf("[Bookings] Error rendering table: %v", err)
		return ""
	}
	// html/template has already escaped every field
	return template.HTML(buf.String())
}
