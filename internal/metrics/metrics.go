package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AnswersTotal counts recorded quiz answers by outcome (correct, incorrect).
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_total",
			Help: "Total number of quiz answers recorded by outcome",
		},
		[]string{"outcome"},
	)

	// QuestionsGeneratedTotal counts generated questions by result (ok, error).
	QuestionsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_questions_generated_total",
			Help: "Total number of question generation attempts by result",
		},
		[]string{"result"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AnswersTotal, QuestionsGeneratedTotal)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /questions/123 -> /questions/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAnswer increments the answers counter for the given outcome.
func RecordAnswer(correct bool) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	AnswersTotal.WithLabelValues(outcome).Inc()
}

// RecordGeneration increments the generation counter with result "ok" or "error".
func RecordGeneration(ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	QuestionsGeneratedTotal.WithLabelValues(result).Inc()
}
