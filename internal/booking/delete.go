package booking

import (
	"context"
	"fmt"
	"log"

	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/ui"
)

// ConfirmFunc asks the user to confirm message and reports the answer
type ConfirmFunc func(message string) bool

// RequestDelete deletes (admin) or cancels (sales) booking id after confirmation.
// It issues a single delete call either way; the API decides what it means for the role.
func (c *Controller) RequestDelete(ctx context.Context, id models.BookingID, confirm ConfirmFunc) error {
	c.mu.Lock()
	b, ok := c.findLocked(id)
	role := c.role
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	if !auth.CanDelete(role, b) {
		c.ui.ShowError(msgDeleteForbidden, ui.SlotToast)
		return nil
	}
	if !confirm(auth.ConfirmDeleteMessage(role, b)) {
		return nil
	}

	msg, err := c.api.DeleteBooking(ctx, id)
	if err != nil {
		log.Printf("[Bookings] Error deleting booking %s: %v", id, err)
		c.ui.ShowError(failureMessage(err, msgDeleteFailed), ui.SlotToast)
		return nil
	}

	if msg == "" {
		msg = msgDeleted
	}
	c.ui.ShowSuccess(msg)
	c.LoadBookings(ctx)
	return nil
}
