package scheduler

import (
	"sync"
	"time"
)

// RunMetrics holds metrics for a single budget alert evaluation
type RunMetrics struct {
	StartedAt    time.Time `json:"startedAt"`
	CompletedAt  time.Time `json:"completedAt"`
	DurationMs   int64     `json:"durationMs"`
	AlertsSent   int       `json:"alertsSent"`
	AlertsFailed int       `json:"alertsFailed"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// MetricsCollector aggregates alert run metrics. It is safe for concurrent use.
type MetricsCollector struct {
	mu             sync.RWMutex
	lastRun        *RunMetrics
	totalRuns      int
	successfulRuns int
	failedRuns     int
}

// NewMetricsCollector creates a new MetricsCollector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Record stores a completed run.
func (mc *MetricsCollector) Record(run RunMetrics) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if run.Success {
		mc.successfulRuns++
	} else {
		mc.failedRuns++
	}
	mc.totalRuns++
	mc.lastRun = &run
}

// LastRun returns a copy of the most recent run, or nil before the first one.
func (mc *MetricsCollector) LastRun() *RunMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if mc.lastRun == nil {
		return nil
	}
	run := *mc.lastRun
	return &run
}

// HealthStatus represents the health of the budget alert job
type HealthStatus struct {
	Healthy         bool        `json:"healthy"`
	Running         bool        `json:"running"`
	Schedule        string      `json:"schedule"`
	NextRunTime     time.Time   `json:"nextRunTime"`
	TotalRuns       int         `json:"totalRuns"`
	TotalSuccessful int         `json:"totalSuccessful"`
	TotalFailed     int         `json:"totalFailed"`
	LastRun         *RunMetrics `json:"lastRun,omitempty"`
	Message         string      `json:"message"`
}

// HealthStatus summarizes the collected runs. A job that has not run yet is healthy.
func (mc *MetricsCollector) HealthStatus(schedule string, nextRunTime time.Time, running bool) HealthStatus {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	status := HealthStatus{
		Running:         running,
		Schedule:        schedule,
		NextRunTime:     nextRunTime,
		TotalRuns:       mc.totalRuns,
		TotalSuccessful: mc.successfulRuns,
		TotalFailed:     mc.failedRuns,
	}

	switch {
	case mc.lastRun == nil:
		status.Healthy = true
		status.Message = "No alert runs recorded yet"
	case !mc.lastRun.Success:
		status.Message = "Last run failed: " + mc.lastRun.ErrorMessage
	case mc.lastRun.AlertsFailed > 0:
		status.Message = "Some alerts could not be delivered"
	default:
		status.Healthy = true
		status.Message = "Budget alerts are operating normally"
	}

	if mc.lastRun != nil {
		run := *mc.lastRun
		status.LastRun = &run
	}
	return status
}
