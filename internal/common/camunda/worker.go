// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"
)

// JobHandler is implemented by every worker package. Handlers complete or
// fail the job themselves.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions configures one job worker.
type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

// Worker is an open job subscription.
type Worker struct {
	jobWorker worker.JobWorker
	taskType  string
	logger    logger.Logger
}

// StartWorker opens a job worker for opts.TaskType whose handler is
// instrumented with the active gauge, duration histogram and otel meter.
func StartWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, obs *observability.Observability, log logger.Logger) *Worker {
	log = log.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	builder := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(Instrument(opts.TaskType, handler, obs)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		builder = builder.Timeout(opts.Timeout)
	}

	w := &Worker{
		jobWorker: builder.Open(),
		taskType:  opts.TaskType,
		logger:    log,
	}
	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
	})
	return w
}

// Instrument wraps handler with job metrics.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			active.Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJob(context.Background(), taskType, elapsed)
		}()

		handler.Handle(client, job)
	}
}

// Stop closes the subscription and waits for in-flight jobs.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.jobWorker.Close()
	w.jobWorker.AwaitClose()
}
