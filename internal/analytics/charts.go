package analytics

import (
	"strings"

	"estate-backoffice/internal/models"
)

// Widget is a rendered chart holding canvas resources until destroyed
type Widget interface {
	Destroy()
}

// Renderer draws a chart config onto a named canvas
type Renderer interface {
	Render(canvas string, cfg ChartConfig) (Widget, error)
}

// ChartConfig is a Chart.js configuration
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartSeries    `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartSeries struct {
	Labels   []string        `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	YAxisID         string    `json:"yAxisID,omitempty"`
}

// Chart keys and the canvases they are drawn on
const (
	ChartTrends   = "trends"
	ChartProjects = "projects"
	ChartRevenue  = "revenue"

	CanvasTrends   = "trends-chart"
	CanvasProjects = "project-chart"
	CanvasRevenue  = "revenue-chart"
)

var chartCanvases = map[string]string{
	ChartTrends:   CanvasTrends,
	ChartProjects: CanvasProjects,
	ChartRevenue:  CanvasRevenue,
}

var palette = [...]string{
	"rgba(102, 126, 234, 0.8)",
	"rgba(118, 75, 162, 0.8)",
	"rgba(255, 99, 132, 0.8)",
	"rgba(54, 162, 235, 0.8)",
	"rgba(255, 205, 86, 0.8)",
	"rgba(75, 192, 192, 0.8)",
	"rgba(153, 102, 255, 0.8)",
	"rgba(255, 159, 64, 0.8)",
}

// GenerateColors assigns n series colors by cycling the fixed palette
func GenerateColors(n int) []string {
	colors := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		colors = append(colors, palette[i%len(palette)])
	}
	return colors
}

func title(text string) map[string]any {
	return map[string]any{"display": true, "text": text}
}

func seriesOf(ds *models.Dataset) []float64 {
	if ds == nil || ds.Data == nil {
		return []float64{}
	}
	return ds.Data
}

func labelsOf(cd *models.ChartData) []string {
	if cd == nil || cd.Labels == nil {
		return []string{}
	}
	return cd.Labels
}

func firstDataset(cd *models.ChartData) *models.Dataset {
	if cd == nil || len(cd.Datasets) == 0 {
		return nil
	}
	return &cd.Datasets[0]
}

func colorsFor(ds *models.Dataset, n int) []string {
	if ds != nil && len(ds.BackgroundColor) > 0 {
		return ds.BackgroundColor
	}
	return GenerateColors(n)
}

// trendsConfig is a dual-axis line chart: bookings on the left, revenue on the right
func trendsConfig(cd *models.ChartData) ChartConfig {
	return ChartConfig{
		Type: "line",
		Data: ChartSeries{
			Labels: labelsOf(cd),
			Datasets: []ChartDataset{
				{
					Label:           "Bookings",
					Data:            seriesOf(cd.FindDataset("Bookings")),
					BorderColor:     "#667eea",
					BackgroundColor: "rgba(102, 126, 234, 0.1)",
					Tension:         0.4,
					YAxisID:         "y",
				},
				{
					Label:           "Revenue (₹)",
					Data:            seriesOf(cd.FindDataset("Revenue")),
					BorderColor:     "#764ba2",
					BackgroundColor: "rgba(118, 75, 162, 0.1)",
					Tension:         0.4,
					YAxisID:         "y1",
				},
			},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"interaction":         map[string]any{"mode": "index", "intersect": false},
			"scales": map[string]any{
				"x": map[string]any{"display": true, "title": title("Time Period")},
				"y": map[string]any{
					"type": "linear", "display": true, "position": "left",
					"title": title("Number of Bookings"),
				},
				"y1": map[string]any{
					"type": "linear", "display": true, "position": "right",
					"title": title("Revenue (₹)"),
					"grid":  map[string]any{"drawOnChartArea": false},
				},
			},
			"plugins": map[string]any{
				"title":  title("Booking Trends Over Time"),
				"legend": map[string]any{"display": true, "position": "top"},
			},
		},
	}
}

// projectsConfig is a doughnut of booking share per project
func projectsConfig(cd *models.ChartData) ChartConfig {
	labels := labelsOf(cd)
	ds := firstDataset(cd)
	return ChartConfig{
		Type: "doughnut",
		Data: ChartSeries{
			Labels: labels,
			Datasets: []ChartDataset{{
				Data:            seriesOf(ds),
				BackgroundColor: colorsFor(ds, len(labels)),
				BorderWidth:     2,
				BorderColor:     "#fff",
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"title":  title("Bookings by Project"),
				"legend": map[string]any{"display": true, "position": "bottom"},
			},
		},
	}
}

// revenueConfig is a bar chart of revenue per property type with rupee ticks
func revenueConfig(cd *models.ChartData) ChartConfig {
	labels := labelsOf(cd)
	ds := firstDataset(cd)
	fill := colorsFor(ds, len(labels))
	border := make([]string, len(fill))
	for i, c := range fill {
		border[i] = strings.Replace(c, "0.8", "1", 1)
	}
	return ChartConfig{
		Type: "bar",
		Data: ChartSeries{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           "Revenue (₹)",
				Data:            seriesOf(ds),
				BackgroundColor: fill,
				BorderColor:     border,
				BorderWidth:     1,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"scales": map[string]any{
				"y": map[string]any{
					"beginAtZero": true,
					"title":       title("Revenue (₹)"),
					// the page formats ticks with the same en-IN rupee format as the KPIs
					"ticks": map[string]any{"format": "inr"},
				},
				"x": map[string]any{"title": title("Property Type")},
			},
			"plugins": map[string]any{
				"title":  title("Revenue by Property Type"),
				"legend": map[string]any{"display": false},
			},
		},
	}
}
