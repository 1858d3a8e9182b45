package auth

import (
	"strings"
	"testing"

	"estate-backoffice/internal/models"
)

func TestCanEdit(t *testing.T) {
	for _, status := range []string{models.StatusActive, models.StatusComplete, models.StatusCancelled, "", "unknown"} {
		b := &models.Booking{Status: status}

		t.Run("admin/"+status, func(t *testing.T) {
			if !CanEdit(models.RoleAdmin, b) {
				t.Fatalf("admin should always be able to edit, status %q", status)
			}
		})

		t.Run("sales_person/"+status, func(t *testing.T) {
			want := status == models.StatusActive
			if got := CanEdit(models.RoleSalesPerson, b); got != want {
				t.Fatalf("expected %v for status %q, got %v", want, status, got)
			}
		})

		t.Run("unknown role/"+status, func(t *testing.T) {
			if CanEdit(models.Role("viewer"), b) {
				t.Fatal("unknown role must not edit")
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	for _, status := range []string{models.StatusActive, models.StatusComplete, models.StatusCancelled, "", "unknown"} {
		b := &models.Booking{Status: status}

		t.Run("admin/"+status, func(t *testing.T) {
			if !CanDelete(models.RoleAdmin, b) {
				t.Fatalf("admin should always be able to delete, status %q", status)
			}
		})

		t.Run("sales_person/"+status, func(t *testing.T) {
			want := status != models.StatusComplete
			if got := CanDelete(models.RoleSalesPerson, b); got != want {
				t.Fatalf("expected %v for status %q, got %v", want, status, got)
			}
		})

		t.Run("unknown role/"+status, func(t *testing.T) {
			if CanDelete(models.Role(""), b) {
				t.Fatal("unknown role must not delete")
			}
		})
	}
}

func TestConfirmDeleteMessage(t *testing.T) {
	b := &models.Booking{CustomerName: "Asha", ProjectName: "Lake View"}

	t.Run("admin deletes", func(t *testing.T) {
		msg := ConfirmDeleteMessage(models.RoleAdmin, b)
		want := "Are you sure you want to delete the booking for Asha - Lake View?\n\nThis action cannot be undone."
		if msg != want {
			t.Fatalf("unexpected message %q", msg)
		}
		if DeleteLabel(models.RoleAdmin) != "Delete" {
			t.Fatalf("expected Delete label, got %q", DeleteLabel(models.RoleAdmin))
		}
	})

	t.Run("sales person cancels", func(t *testing.T) {
		msg := ConfirmDeleteMessage(models.RoleSalesPerson, b)
		if !strings.HasPrefix(msg, "Are you sure you want to cancel the booking for Asha - Lake View?") {
			t.Fatalf("unexpected message %q", msg)
		}
		if !strings.HasSuffix(msg, "This will mark the booking as cancelled.") {
			t.Fatalf("unexpected consequence in %q", msg)
		}
		if DeleteLabel(models.RoleSalesPerson) != "Cancel" {
			t.Fatalf("expected Cancel label, got %q", DeleteLabel(models.RoleSalesPerson))
		}
	})
}
