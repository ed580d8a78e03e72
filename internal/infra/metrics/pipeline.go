package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(pipelineJobsTotal, pipelineStageSeconds, questionsGeneratedTotal)
}

var pipelineJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_jobs_total",
		Help: "Total number of pipeline runs, labeled by terminal status.",
	},
	[]string{"status"}, // 'completed', 'error'
)

var pipelineStageSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pipeline_stage_seconds",
		Help:    "Wall-clock duration of pipeline stages.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
	},
	[]string{"stage", "success"}, // 'transcribing', 'generating'
)

var questionsGeneratedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "questions_generated_total",
		Help: "Total number of multiple-choice questions persisted.",
	},
)

func IncPipelineJob(status string) {
	pipelineJobsTotal.WithLabelValues(norm(status)).Inc()
}

func ObserveStage(stage string, seconds float64, success bool) {
	s := "false"
	if success {
		s = "true"
	}
	pipelineStageSeconds.WithLabelValues(norm(stage), s).Observe(seconds)
}

func AddQuestionsGenerated(n int) {
	if n > 0 {
		questionsGeneratedTotal.Add(float64(n))
	}
}
