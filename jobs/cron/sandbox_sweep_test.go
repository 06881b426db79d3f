package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/tradedesk/services/mock_service"
)

func TestSandboxSweepJob(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	backend := mock_service.NewWithClock(func() time.Time { return now })

	_, err := backend.Portfolios(context.Background(), "demo-1")
	require.NoError(t, err)

	job := &SandboxSweepJob{Sandboxes: backend, Idle: time.Hour}
	assert.Equal(t, "sandbox_sweep", job.Name())

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, 1, backend.Sandboxes())

	now = now.Add(2 * time.Hour)
	require.NoError(t, job.Process(context.Background()))
	assert.Zero(t, backend.Sandboxes())
}
