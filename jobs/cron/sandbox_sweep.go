package cron

import (
	"context"
	"time"

	"github.com/zsmartex/tradedesk/config"
)

type SandboxSweeper interface {
	Sweep(idle time.Duration) int
}

// SandboxSweepJob evicts demo sandboxes whose owner has been idle for longer
// than Idle.
type SandboxSweepJob struct {
	Sandboxes SandboxSweeper
	Idle      time.Duration
}

func (j *SandboxSweepJob) Name() string {
	return "sandbox_sweep"
}

func (j *SandboxSweepJob) Process(ctx context.Context) error {
	if removed := j.Sandboxes.Sweep(j.Idle); removed > 0 {
		config.Logger.WithField("job", j.Name()).Infof("evicted %d idle sandboxes", removed)
	}

	return nil
}
