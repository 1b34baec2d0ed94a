package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 5000000, 11000000},
		},
		[]string{"method", "endpoint"},
	)

	// Business metrics
	submissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total number of persisted intake form submissions",
		},
	)

	submissionValidationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_validation_failures_total",
			Help: "Total number of submissions rejected by server-side validation",
		},
	)

	photoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_uploads_total",
			Help: "Total number of processed car photo uploads",
		},
		[]string{"strategy", "status"}, // status: stored, failed
	)

	notificationEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Total number of submission notification emails attempted",
		},
		[]string{"status"}, // sent, failed, skipped
	)

	adminAuthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_auth_total",
			Help: "Total number of admin session checks and logins",
		},
		[]string{"operation", "status"}, // operation: check, login; status: success, failure
	)
)

// PrometheusMiddleware creates a middleware that records Prometheus metrics
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip metrics endpoint itself
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(r.ContentLength))
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, statusCode).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordSubmission records a persisted submission
func RecordSubmission() {
	submissionsTotal.Inc()
}

// RecordValidationFailure records a submission rejected at the API boundary
func RecordValidationFailure() {
	submissionValidationFailuresTotal.Inc()
}

// RecordPhotoUpload records a photo processing attempt
func RecordPhotoUpload(strategy string, stored bool) {
	status := "failed"
	if stored {
		status = "stored"
	}
	photoUploadsTotal.WithLabelValues(strategy, status).Inc()
}

// RecordNotificationEmail records a notification attempt outcome
func RecordNotificationEmail(status string) {
	notificationEmailsTotal.WithLabelValues(status).Inc()
}

// RecordAdminAuth records an admin session check or login attempt
func RecordAdminAuth(operation string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	adminAuthTotal.WithLabelValues(operation, status).Inc()
}
