// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"fieldpulse/internal/application/location/dto"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/logger"
)

// RetentionJob is the sweep executed by the location retention schedule.
type RetentionJob interface {
	Execute(ctx context.Context) (*dto.CleanupResult, error)
}

// SchedulerManager owns the recurring jobs of the service through a single
// gocron v2 scheduler instance.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// Retention job state, kept so the job can be restarted with a new
	// interval at runtime.
	retentionJob  gocron.Job
	retentionTask RetentionJob
	intervalHours int
	retentionMu   sync.Mutex

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterLocationRetentionJob schedules the retention sweep. The job fires
// immediately on start and then every intervalHours.
func (m *SchedulerManager) RegisterLocationRetentionJob(job RetentionJob, intervalHours int) error {
	if intervalHours <= 0 {
		intervalHours = 1
	}

	m.retentionMu.Lock()
	defer m.retentionMu.Unlock()

	m.retentionTask = job
	m.intervalHours = intervalHours

	scheduled, err := m.newRetentionJob(job, intervalHours)
	if err != nil {
		return err
	}
	m.retentionJob = scheduled

	m.logger.Infow("registered location retention job", "interval_hours", intervalHours)
	return nil
}

// RestartLocationRetentionJob replaces the retention schedule with a new
// interval, firing once immediately. Used when retention settings change at
// runtime.
func (m *SchedulerManager) RestartLocationRetentionJob(intervalHours int) error {
	if intervalHours <= 0 {
		intervalHours = 1
	}

	m.retentionMu.Lock()
	defer m.retentionMu.Unlock()

	if m.retentionJob != nil {
		if err := m.scheduler.RemoveJob(m.retentionJob.ID()); err != nil {
			m.logger.Warnw("failed to remove retention job", "error", err)
		}
		m.retentionJob = nil
	}

	m.intervalHours = intervalHours

	scheduled, err := m.newRetentionJob(m.retentionTask, intervalHours)
	if err != nil {
		return err
	}
	m.retentionJob = scheduled

	m.logger.Infow("restarted location retention job", "interval_hours", intervalHours)
	return nil
}

// IntervalHours returns the current retention sweep interval.
func (m *SchedulerManager) IntervalHours() int {
	m.retentionMu.Lock()
	defer m.retentionMu.Unlock()
	return m.intervalHours
}

func (m *SchedulerManager) newRetentionJob(job RetentionJob, intervalHours int) (gocron.Job, error) {
	return m.scheduler.NewJob(
		gocron.DurationJob(time.Duration(intervalHours)*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.runRetentionSweep(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("location", "retention"),
		gocron.WithName("location-retention"),
	)
}

// runRetentionSweep executes one sweep. Errors are logged and swallowed so a
// failing sweep never kills the schedule.
func (m *SchedulerManager) runRetentionSweep(ctx context.Context, job RetentionJob) {
	startTime := biztime.NowUTC()

	result, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("location retention sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.DeletedEvents > 0 || result.DeletedLocations > 0 {
		m.logger.Infow("location retention sweep deleted rows",
			"deleted_events", result.DeletedEvents,
			"deleted_locations", result.DeletedLocations,
			"duration", time.Since(startTime),
		)
	}
}

// Start begins executing all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		m.logger.Warnw("scheduler already started")
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started")
}

// Stop gracefully shuts down the scheduler, waiting for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("failed to shutdown scheduler", "error", err)
		return err
	}

	m.started = false
	m.logger.Infow("scheduler stopped")
	return nil
}

// IsStarted reports whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
