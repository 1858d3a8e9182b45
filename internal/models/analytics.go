package models

import (
	"bytes"
	"encoding/json"
)

// KPIs are the dashboard's scalar summary metrics. Missing fields decode to 0.
type KPIs struct {
	TotalBookings  float64 `json:"total_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	CompletionRate float64 `json:"completion_rate"`
	ActiveBookings float64 `json:"active_bookings"`
}

// Colors accepts either a single CSS color or a list of them
type Colors []string

func (c *Colors) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Colors{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

// Dataset is one series of a chart as prepared by the API
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor Colors    `json:"backgroundColor,omitempty"`
}

// ChartData is the {labels, datasets} shape every dashboard chart consumes
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// FindDataset returns the dataset with the given label, if any
func (c *ChartData) FindDataset(label string) *Dataset {
	if c == nil {
		return nil
	}
	for i := range c.Datasets {
		if c.Datasets[i].Label == label {
			return &c.Datasets[i]
		}
	}
	return nil
}

// DashboardCharts groups the three chart payloads of the dashboard endpoint
type DashboardCharts struct {
	MonthlyTrends       *ChartData `json:"monthly_trends"`
	ProjectDistribution *ChartData `json:"project_distribution"`
	PropertyTypes       *ChartData `json:"property_types"`
}

// DashboardData is the body of GET /analytics/dashboard
type DashboardData struct {
	KPIs   KPIs            `json:"kpis"`
	Charts DashboardCharts `json:"charts"`
}
