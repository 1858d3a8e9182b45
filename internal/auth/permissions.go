package auth

import (
	"fmt"

	"estate-backoffice/internal/models"
)

// CanEdit reports whether role may open the edit form for b.
// Admins always may; sales staff only while the booking is active.
func CanEdit(role models.Role, b *models.Booking) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleSalesPerson:
		return b != nil && b.Status == models.StatusActive
	default:
		return false
	}
}

// CanDelete reports whether role may delete (or, for sales staff, cancel) b.
func CanDelete(role models.Role, b *models.Booking) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleSalesPerson:
		return b != nil && b.Status != models.StatusComplete
	default:
		return false
	}
}

// CanCreate reports whether role gets the "Add New Booking" affordance
func CanCreate(role models.Role) bool {
	return role.Valid()
}

// DeleteAction is the verb shown for the destructive row action.
// The API turns a sales person's delete into a cancellation.
func DeleteAction(role models.Role) string {
	if role == models.RoleAdmin {
		return "delete"
	}
	return "cancel"
}

// DeleteLabel is the button text for the destructive row action
func DeleteLabel(role models.Role) string {
	if role == models.RoleAdmin {
		return "Delete"
	}
	return "Cancel"
}

// ConfirmDeleteMessage is the prompt shown before the delete call is issued
func ConfirmDeleteMessage(role models.Role, b *models.Booking) string {
	consequence := "This will mark the booking as cancelled."
	if role == models.RoleAdmin {
		consequence = "This action cannot be undone."
	}
	return fmt.Sprintf("Are you sure you want to %s the booking for %s - %s?\n\n%s",
		DeleteAction(role), b.CustomerName, b.ProjectName, consequence)
}
