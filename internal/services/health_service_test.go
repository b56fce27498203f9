package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Liveness(t *testing.T) {
	cfg := testConfig(t)
	hs := NewHealthService("1.0.0", cfg.Paths, discardLogger())

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
}

func TestHealthService_ReadinessDegradedWithoutReportsDir(t *testing.T) {
	cfg := testConfig(t)
	// Snapshots dir exists, reports dir does not.
	hs := NewHealthService("1.0.0", cfg.Paths, discardLogger())

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "degraded", status.Status)

	require.NoError(t, os.MkdirAll(cfg.Paths.ReportsDir, 0755))
	status = hs.ReadinessCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
}
