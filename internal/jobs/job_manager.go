package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

// NewJobManager creates a job manager that starts jobs in the given order.
func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger}
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs already started are
// stopped again and the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %T: %w", job, err)
		}
	}
	jm.logger.Info("Scheduled jobs started", zap.Int("jobs", len(jm.jobs)))
	return nil
}

// StopAll stops all scheduled jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
