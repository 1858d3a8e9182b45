package models

import "time"

// Console actions recorded in the action log
const (
	ActionBookingCreate   = "booking_create"
	ActionBookingUpdate   = "booking_update"
	ActionBookingDelete   = "booking_delete"
	ActionAnalyticsExport = "analytics_export"
	ActionReportDownload  = "report_download"
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionOther           = "other"
)

type ActionLog struct {
	ID          int       `json:"id" db:"id"`
	RequestID   string    `json:"request_id" db:"request_id"`
	SessionID   *string   `json:"session_id,omitempty" db:"session_id"`
	Username    *string   `json:"username,omitempty" db:"username"`
	Role        *string   `json:"role,omitempty" db:"role"`
	ActionType  string    `json:"action_type" db:"action_type"`
	Method      string    `json:"method" db:"method"`
	Path        string    `json:"path" db:"path"`
	StatusCode  int       `json:"status_code" db:"status_code"`
	DurationMs  float64   `json:"duration_ms" db:"duration_ms"`
	IPAddress   string    `json:"ip_address" db:"ip_address"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
