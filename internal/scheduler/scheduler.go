package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/atomic"
)

type JobFunc func(ctx context.Context)

type job struct {
	name    string
	spec    string
	fn      JobFunc
	running *atomic.Bool
}

type Scheduler struct {
	s      *gocron.Scheduler
	logger *slog.Logger
	jobs   []*job
}

func New(logger *slog.Logger, loc *time.Location) *Scheduler {
	return &Scheduler{s: gocron.NewScheduler(loc), logger: logger.With("component", "scheduler")}
}

// Add registers fn under a cron spec. A run is skipped while the previous one is still in flight.
func (sch *Scheduler) Add(name string, spec string, fn JobFunc) {
	sch.jobs = append(sch.jobs, &job{name: name, spec: spec, fn: fn, running: atomic.NewBool(false)})
}

// Start runs the jobs until ctx is canceled.
func (sch *Scheduler) Start(ctx context.Context) error {
	for _, j := range sch.jobs {
		if _, err := sch.s.Cron(j.spec).Do(sch.run, ctx, j); err != nil {
			return fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}
	sch.s.StartAsync()

	<-ctx.Done()
	sch.s.Stop()
	return nil
}

func (sch *Scheduler) run(ctx context.Context, j *job) {
	log := sch.logger.With("job", j.name)

	if !j.running.CompareAndSwap(false, true) {
		log.Warn("previous run still in progress, skipping")
		return
	}
	defer j.running.Store(false)

	select {
	case <-ctx.Done():
		return
	default:
	}

	start := time.Now()
	j.fn(ctx)
	log.Info("job finished", "duration", time.Since(start))
}
