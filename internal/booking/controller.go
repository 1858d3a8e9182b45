package booking

import (
	"context"
	"errors"
	"html/template"
	"log"
	"sync"
	"time"

	"estate-backoffice/internal/auth"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/internal/ui"
)

// Loading targets and messages shown by the bookings tab
const (
	LoadingTab    = "bookings-tab"
	LoadingSubmit = "submit-booking"

	msgLoadFailed      = "Failed to load bookings"
	msgLoadFailedRow   = "Failed to load bookings. Please try again."
	msgSaved           = "Booking saved successfully"
	msgSaveFailed      = "Failed to save booking"
	msgNetwork         = "Network error. Please try again."
	msgDeleted         = "Booking deleted successfully"
	msgDeleteFailed    = "Failed to delete booking"
	msgEditForbidden   = "You do not have permission to edit this booking."
	msgDeleteForbidden = "You do not have permission to delete this booking."
)

var ErrBookingNotFound = errors.New("booking not found")

// API is the part of the booking REST API the controller drives
type API interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, input *models.BookingInput) (string, error)
	UpdateBooking(ctx context.Context, id models.BookingID, input *models.BookingInput) (string, error)
	DeleteBooking(ctx context.Context, id models.BookingID) (string, error)
}

type Options struct {
	// ComposeFilters ANDs search and status filter instead of letting the last one win
	ComposeFilters bool
	Clock          timeutil.Clock
}

// Controller owns the bookings tab of one session: the cached list, its
// filtered and sorted view, the modal form and the caller's role.
type Controller struct {
	api     API
	ui      ui.Feedback
	compose bool
	now     timeutil.Clock

	mu           sync.Mutex
	bookings     []models.Booking
	filtered     []models.Booking
	sortColumn   string
	sortDir      Direction
	editing      *models.Booking
	role         models.Role
	modal        Modal
	table        template.HTML
	searchTerm   string
	statusFilter string
	latest       uint64
}

func NewController(api API, feedback ui.Feedback, opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.Now
	}
	c := &Controller{
		api:     api,
		ui:      feedback,
		compose: opts.ComposeFilters,
		now:     clock,
	}
	c.table = c.renderLocked()
	return c
}

// LoadBookings fetches the full list and replaces the cache and the view.
// Failures are shown to the user, never returned.
func (c *Controller) LoadBookings(ctx context.Context) {
	c.ui.SetLoading(LoadingTab, true)
	defer c.ui.SetLoading(LoadingTab, false)

	c.mu.Lock()
	c.latest++
	token := c.latest
	c.mu.Unlock()

	list, err := c.api.ListBookings(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.latest {
		log.Printf("[Bookings] Discarding stale load (request %d, latest %d)", token, c.latest)
		return
	}

	if err != nil {
		log.Printf("[Bookings] Error loading bookings: %v", err)
		c.ui.ShowError(msgLoadFailed, ui.SlotToast)
		c.table = renderMessage(msgLoadFailedRow)
		return
	}

	if list == nil {
		list = []models.Booking{}
	}
	c.bookings = list
	c.searchTerm = ""
	c.statusFilter = ""
	c.filtered = append([]models.Booking(nil), list...)
	c.sortLocked()
	c.table = c.renderLocked()
}

// SetUserRole applies role-derived affordances and re-evaluates row actions
func (c *Controller) SetUserRole(role models.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.role = role
	c.table = c.renderLocked()
}

// Role is the role the table is currently gated by
func (c *Controller) Role() models.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

// RenderBookingsTable projects the filtered view and role into table rows
func (c *Controller) RenderBookingsTable() template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = c.renderLocked()
	return c.table
}

// FilteredBookings returns a copy of the rows currently shown
func (c *Controller) FilteredBookings() []models.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Booking(nil), c.filtered...)
}

func (c *Controller) findLocked(id models.BookingID) (*models.Booking, bool) {
	for i := range c.bookings {
		if c.bookings[i].ID == id {
			b := c.bookings[i]
			return &b, true
		}
	}
	return nil, false
}

// View is the state the bookings tab renders from
type View struct {
	Role          models.Role   `json:"role"`
	CanCreate     bool          `json:"can_create"`
	AddLabel      string        `json:"add_label"`
	Rows          template.HTML `json:"rows"`
	Shown         int           `json:"shown"`
	Total         int           `json:"total"`
	SearchTerm    string        `json:"search_term"`
	StatusFilter  string        `json:"status_filter"`
	SortColumn    string        `json:"sort_column,omitempty"`
	SortDirection Direction     `json:"sort_direction,omitempty"`
	Modal         Modal         `json:"modal"`
}

// Snapshot returns the current view state
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Role:          c.role,
		CanCreate:     auth.CanCreate(c.role),
		Rows:          c.table,
		Shown:         len(c.filtered),
		Total:         len(c.bookings),
		SearchTerm:    c.searchTerm,
		StatusFilter:  c.statusFilter,
		SortColumn:    c.sortColumn,
		SortDirection: c.sortDir,
		Modal:         c.modal.clone(),
	}
	if v.CanCreate {
		v.AddLabel = "Add New Booking"
	}
	return v
}

func (c *Controller) clock() time.Time {
	return c.now()
}
