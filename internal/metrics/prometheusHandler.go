package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Time spent serving a request.",
	Buckets: []float64{.01, .05, .1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"path"})

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "document_uploads_total",
	Help: "Stored documents labelled by type",
}, []string{"type"})

var uploadBytes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "document_upload_bytes_total",
	Help: "Bytes written to the upload directory",
})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30, 60},
}, []string{"service", "outcome"})

// HttpStatusRecorder remembers the status written by the wrapped handler.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status      int
	wroteHeader bool
}

func NewHttpStatusRecorder(w http.ResponseWriter) *HttpStatusRecorder {
	return &HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.Status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *HttpStatusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}

func (r *HttpStatusRecorder) WroteHeader() bool {
	return r.wroteHeader
}

func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func CaptureRequestMetrics(path string, status string, timeElapsed time.Duration) {
	HttpRequestsTotal.WithLabelValues(path, status).Inc()
	requestDuration.WithLabelValues(path).Observe(timeElapsed.Seconds())
}

func RecordUpload(docType string, size int64) {
	uploadsTotal.WithLabelValues(docType).Inc()
	uploadBytes.Add(float64(size))
}

func CaptureExecutionMetrics(label string, outcome string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label, outcome).Observe(timeElapsed.Seconds())
}
