package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"ratepulse/internal/config"
)

// HealthService reports liveness and readiness. Readiness checks that the
// snapshot hand-off directory is reachable.
type HealthService struct {
	version   string
	paths     config.PathsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth is one dependency's health entry.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates the health service.
func NewHealthService(version string, paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// LivenessCheck reports that the process is up.
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck verifies the data directories the comparison depends on.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	services := map[string]interface{}{
		"snapshots": hs.checkDirectory(hs.paths.SnapshotsDir),
		"reports":   hs.checkDirectory(hs.paths.ReportsDir),
	}

	status := "healthy"
	for _, svc := range services {
		if health, ok := svc.(ServiceHealth); ok && health.Status != "healthy" {
			status = "degraded"
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Services: services,
	}
}

func (hs *HealthService) checkDirectory(dir string) ServiceHealth {
	info, err := os.Stat(dir)
	if err != nil {
		return ServiceHealth{Status: "unavailable", Message: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "unavailable", Message: "not a directory"}
	}
	return ServiceHealth{Status: "healthy"}
}
