package jobs

import "fmt"

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates an empty job manager. Jobs are added with Add and
// started in the order they were added.
func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers job under name.
func (jm *JobManager) Add(name string, job Job) *JobManager {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}

// Len returns the number of registered jobs.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
