package daemons

import (
	"context"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/jobs"
)

type CronJob struct {
	Interval time.Duration
	Jobs     []jobs.Job

	logger *logrus.Entry
}

func NewCronJob(interval time.Duration, list ...jobs.Job) *CronJob {
	if interval < time.Second {
		interval = time.Second
	}

	return &CronJob{
		Interval: interval,
		Jobs:     list,
		logger:   config.Logger.WithField("worker", "cron_job"),
	}
}

func (c *CronJob) Start(ctx context.Context) error {
	s := gocron.NewScheduler()
	every := uint64(c.Interval / time.Second)

	for _, job := range c.Jobs {
		job := job
		s.Every(every).Seconds().Do(func() { c.Process(ctx, job) })
	}

	stopped := s.Start()
	c.logger.WithField("jobs", len(c.Jobs)).Info("cron jobs scheduled")

	<-ctx.Done()
	s.Clear()
	stopped <- true

	return nil
}

// Process runs job once and logs its failure.
func (c *CronJob) Process(ctx context.Context, job jobs.Job) {
	if ctx.Err() != nil {
		return
	}

	if err := job.Process(ctx); err != nil {
		c.logger.WithError(err).WithField("job", job.Name()).Error("job failed")
	}
}
