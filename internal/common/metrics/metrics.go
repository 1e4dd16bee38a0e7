package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CareerMatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_matches_total",
			Help: "Total number of student-to-career comparisons",
		},
	)

	CareerMatchesDegenerate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_matches_degenerate_total",
			Help: "Comparisons against careers missing profile data",
		},
	)

	QuizResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_results_total",
			Help: "Completed reality quizzes by result tier",
		},
		[]string{"tier"},
	)

	QuizReadiness = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_readiness_percentage",
			Help:    "Distribution of readiness percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	QuizResultSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_result_save_failures_total",
			Help: "Quiz results that were computed but not persisted",
		},
	)
)

func RecordJobCompleted(taskType string) {
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
}

func RecordJobFailed(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// RecordMatches counts a ranking run over catalogSize careers.
func RecordMatches(catalogSize, degenerate int) {
	CareerMatchesTotal.Add(float64(catalogSize))
	CareerMatchesDegenerate.Add(float64(degenerate))
}

func RecordQuizResult(tier string, readiness int) {
	QuizResultsTotal.WithLabelValues(tier).Inc()
	QuizReadiness.Observe(float64(readiness))
}
