package booking

import (
	"strings"

	"estate-backoffice/internal/models"
)

// Search narrows the view to bookings whose customer, project, contact,
// type or invoice status contains term, ignoring case. An empty term resets.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchTerm = strings.TrimSpace(term)
	if !c.compose {
		c.statusFilter = ""
	}
	c.refilterLocked()
}

// FilterStatus narrows the view to one booking status. An empty status resets.
func (c *Controller) FilterStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.statusFilter = strings.TrimSpace(status)
	if !c.compose {
		c.searchTerm = ""
	}
	c.refilterLocked()
}

func (c *Controller) refilterLocked() {
	term := strings.ToLower(c.searchTerm)
	filtered := make([]models.Booking, 0, len(c.bookings))
	for i := range c.bookings {
		b := &c.bookings[i]
		if term != "" && !matchesTerm(b, term) {
			continue
		}
		if c.statusFilter != "" && b.Status != c.statusFilter {
			continue
		}
		filtered = append(filtered, *b)
	}
	c.filtered = filtered
	c.sortLocked()
	c.table = c.renderLocked()
}

// matchesTerm expects term already lowercased
func matchesTerm(b *models.Booking, term string) bool {
	for _, field := range []string{b.CustomerName, b.ProjectName, b.ContactNumber, b.Type, b.InvoiceStatus} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
