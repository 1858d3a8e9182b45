package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is a dependency that can report whether it answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthChecker struct {
	upstream Pinger
	optional map[string]Pinger
}

type HealthStatus struct {
	Status       string                     `json:"status"`
	API          ComponentHealth            `json:"api"`
	Dependencies map[string]ComponentHealth `json:"dependencies,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type HostHealth struct {
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      uint64  `json:"disk_used_bytes"`
	DiskTotal     uint64  `json:"disk_total_bytes"`
}

type DetailedStatus struct {
	HealthStatus
	Host      *HostHealth `json:"host,omitempty"`
	Sessions  int         `json:"active_sessions"`
	CheckedAt time.Time   `json:"checked_at"`
}

// NewHealthChecker checks the booking API. Optional dependencies (redis,
// database) are reported but never make the console unready.
func NewHealthChecker(upstream Pinger, optional map[string]Pinger) *HealthChecker {
	return &HealthChecker{upstream: upstream, optional: optional}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	api := check(ctx, h.upstream)

	status := HealthStatus{
		Status:       "healthy",
		API:          api,
		Dependencies: make(map[string]ComponentHealth, len(h.optional)),
	}
	if api.Status != "healthy" {
		status.Status = "unhealthy"
	}
	for name, p := range h.optional {
		dep := check(ctx, p)
		if dep.Status != "healthy" && status.Status == "healthy" {
			status.Status = "degraded"
		}
		status.Dependencies[name] = dep
	}
	return status
}

// CheckDetailed adds host memory and disk usage
func (h *HealthChecker) CheckDetailed(ctx context.Context, sessions int) DetailedStatus {
	out := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		Sessions:     sessions,
		CheckedAt:    time.Now().UTC(),
	}

	memStats, memErr := mem.VirtualMemory()
	diskStats, diskErr := disk.Usage("/")
	if memErr == nil || diskErr == nil {
		out.Host = &HostHealth{}
		if memErr == nil {
			out.Host.MemoryPercent = memStats.UsedPercent
			out.Host.MemoryUsed = memStats.Used
			out.Host.MemoryTotal = memStats.Total
		}
		if diskErr == nil {
			out.Host.DiskPercent = diskStats.UsedPercent
			out.Host.DiskUsed = diskStats.Used
			out.Host.DiskTotal = diskStats.Total
		}
	}
	return out
}

func check(ctx context.Context, p Pinger) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
