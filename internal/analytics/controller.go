package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"estate-backoffice/internal/apiclient"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"
	"estate-backoffice/internal/ui"
)

var errStaleDashboard = errors.New("superseded by a newer dashboard request")

// Loading targets and messages of the analytics tab
const (
	LoadingTab    = "analytics-tab"
	LoadingApply  = "apply-filter-btn"
	LoadingExport = "export-btn"

	msgLoadFailed    = "Failed to load analytics data"
	msgAccessDenied  = "Access denied: You do not have permission to view analytics."
	msgApplied       = "Filters applied successfully"
	msgApplyFailed   = "Failed to apply filters"
	msgExported      = "Data exported successfully"
	msgExportFailed  = "Failed to export data"
	defaultRangeDays = 30
)

// KPI display slots
const (
	SlotTotalBookings  = "total-bookings"
	SlotTotalRevenue   = "total-revenue"
	SlotCompletionRate = "completion-rate"
	SlotActiveBookings = "active-bookings"
)

// API is the part of the booking REST API the dashboard reads
type API interface {
	Dashboard(ctx context.Context, query url.Values) (*models.DashboardData, error)
	Export(ctx context.Context, query url.Values) (json.RawMessage, error)
}

// Archiver keeps a copy of exported files; optional
type Archiver interface {
	Archive(ctx context.Context, name string, content []byte) error
}

type Options struct {
	DefaultRangeDays int
	Clock            timeutil.Clock
	Archiver         Archiver
}

// DateRange holds inclusive YYYY-MM-DD bounds; empty means unbounded
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// Controller owns the analytics tab of one session: chart widgets,
// the date range, free-form filters and the KPI tiles.
type Controller struct {
	api       API
	ui        ui.Feedback
	charts    Renderer
	now       timeutil.Clock
	rangeDays int
	archiver  Archiver

	mu        sync.Mutex
	widgets   map[string]Widget
	dateRange DateRange
	filters   map[string]string
	kpis      map[string]string
	latest    uint64
}

func NewController(api API, feedback ui.Feedback, charts Renderer, opts Options) *Controller {
	c := &Controller{
		api:       api,
		ui:        feedback,
		charts:    charts,
		now:       opts.Clock,
		rangeDays: opts.DefaultRangeDays,
		archiver:  opts.Archiver,
		widgets:   make(map[string]Widget),
		filters:   make(map[string]string),
	}
	if c.now == nil {
		c.now = timeutil.Now
	}
	if c.rangeDays <= 0 {
		c.rangeDays = defaultRangeDays
	}
	c.kpis = kpiSlots(models.KPIs{})
	c.InitializeDateFilters()
	return c
}

// InitializeDateFilters resets the range to the last rangeDays days
func (c *Controller) InitializeDateFilters() {
	today := c.now().In(timeutil.IST)
	from := today.Add(-time.Duration(c.rangeDays) * 24 * time.Hour)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dateRange = DateRange{
		Start: from.Format(timeutil.DateLayout),
		End:   today.Format(timeutil.DateLayout),
	}
}

// SetDateRange replaces the range; each bound is YYYY-MM-DD or empty
func (c *Controller) SetDateRange(start, end string) error {
	for _, d := range []string{start, end} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(timeutil.DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: %w", d, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dateRange = DateRange{Start: start, End: end}
	return nil
}

// SetFilter sets a dashboard filter such as status or project_name; an empty value clears it
func (c *Controller) SetFilter(key, value string) error {
	if key == "" || key == "start_date" || key == "end_date" {
		return fmt.Errorf("invalid filter key %q", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.filters, key)
		return nil
	}
	c.filters[key] = value
	return nil
}

// query builds day-inclusive date params plus every non-empty filter
func (c *Controller) query(base url.Values) url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := url.Values{}
	for k, vs := range base {
		q[k] = append([]string(nil), vs...)
	}
	if c.dateRange.Start != "" {
		q.Set("start_date", timeutil.DayStartParam(c.dateRange.Start))
	}
	if c.dateRange.End != "" {
		q.Set("end_date", timeutil.DayEndParam(c.dateRange.End))
	}
	keys := make([]string, 0, len(c.filters))
	for k := range c.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := c.filters[k]; v != "" {
			q.Add(k, v)
		}
	}
	return q
}

// Load fetches the dashboard for the current range and filters.
// On failure the previous KPIs and charts stay as they were.
func (c *Controller) Load(ctx context.Context) {
	c.ui.SetLoading(LoadingTab, true)
	defer c.ui.SetLoading(LoadingTab, false)

	err := c.loadDashboard(ctx)
	if err == nil || errors.Is(err, errStaleDashboard) {
		return
	}
	log.Printf("[Analytics] Error loading analytics: %v", err)
	if apiclient.StatusOf(err) == http.StatusForbidden {
		c.ui.ShowError(msgAccessDenied, ui.SlotToast)
		return
	}
	c.ui.ShowError(msgLoadFailed, ui.SlotToast)
}

// ApplyFilters reloads the dashboard and reports the outcome as a toast
func (c *Controller) ApplyFilters(ctx context.Context) {
	c.ui.SetLoading(LoadingApply, true)
	defer c.ui.SetLoading(LoadingApply, false)

	err := c.loadDashboard(ctx)
	switch {
	case errors.Is(err, errStaleDashboard):
		return
	case err != nil:
		log.Printf("[Analytics] Error applying filters: %v", err)
		c.ui.ShowError(msgApplyFailed, ui.SlotToast)
		return
	}
	c.ui.ShowSuccess(msgApplied)
}

// loadDashboard returns errStaleDashboard when a newer request was issued
// while this one was in flight, whatever this one's outcome.
func (c *Controller) loadDashboard(ctx context.Context) error {
	q := c.query(nil)

	c.mu.Lock()
	c.latest++
	token := c.latest
	c.mu.Unlock()

	data, err := c.api.Dashboard(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.latest {
		log.Printf("[Analytics] Discarding stale dashboard (request %d, latest %d)", token, c.latest)
		return errStaleDashboard
	}
	if err != nil {
		return err
	}
	c.updateKPIsLocked(data.KPIs)
	c.updateChartsLocked(data.Charts)
	return nil
}

// UpdateKPIs writes the four KPI tiles; absent values show as zero
func (c *Controller) UpdateKPIs(kpis models.KPIs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateKPIsLocked(kpis)
}

func (c *Controller) updateKPIsLocked(kpis models.KPIs) {
	c.kpis = kpiSlots(kpis)
}

func kpiSlots(k models.KPIs) map[string]string {
	return map[string]string{
		SlotTotalBookings:  ui.FormatCount(k.TotalBookings),
		SlotTotalRevenue:   ui.FormatCurrency(k.TotalRevenue),
		SlotCompletionRate: ui.FormatPercent(k.CompletionRate),
		SlotActiveBookings: ui.FormatCount(k.ActiveBookings),
	}
}

// UpdateCharts rebuilds the three charts, releasing each previous widget first
func (c *Controller) UpdateCharts(charts models.DashboardCharts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateChartsLocked(charts)
}

func (c *Controller) updateChartsLocked(charts models.DashboardCharts) {
	c.replaceLocked(ChartTrends, trendsConfig(charts.MonthlyTrends))
	c.replaceLocked(ChartProjects, projectsConfig(charts.ProjectDistribution))
	c.replaceLocked(ChartRevenue, revenueConfig(charts.PropertyTypes))
}

func (c *Controller) replaceLocked(key string, cfg ChartConfig) {
	if w, ok := c.widgets[key]; ok {
		w.Destroy()
		delete(c.widgets, key)
	}
	w, err := c.charts.Render(chartCanvases[key], cfg)
	if err != nil {
		log.Printf("[Analytics] Error rendering %s chart: %v", key, err)
		return
	}
	c.widgets[key] = w
}

// Cleanup releases every chart widget; safe to call repeatedly
func (c *Controller) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, w := range c.widgets {
		w.Destroy()
		delete(c.widgets, key)
	}
}

// View is the state the analytics tab renders from
type View struct {
	DateRange DateRange         `json:"date_range"`
	Filters   map[string]string `json:"filters"`
	KPIs      map[string]string `json:"kpis"`
	Charts    []string          `json:"charts"`
}

// Snapshot returns the current view state
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		DateRange: c.dateRange,
		Filters:   maps.Clone(c.filters),
		KPIs:      maps.Clone(c.kpis),
		Charts:    make([]string, 0, len(c.widgets)),
	}
	for key := range c.widgets {
		v.Charts = append(v.Charts, key)
	}
	sort.Strings(v.Charts)
	return v
}
