// Package metrics provides Prometheus metrics for the careerlens service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the service records to.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Assessment pipeline
	assessments      *prometheus.CounterVec
	predictions      *prometheus.CounterVec
	confidence       prometheus.Histogram
	stageLatency     *prometheus.HistogramVec
	stageErrors      *prometheus.CounterVec
	modelAccuracy    prometheus.Gauge
	skillMatch       prometheus.Histogram
	interviewAnswers *prometheus.CounterVec
	dominantTraits   *prometheus.CounterVec

	// Persistence
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec

	// Async submissions
	duplicates         prometheus.Counter
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec
	workerActive       prometheus.Gauge
	workerProcessed    prometheus.Counter
	workerErrors       prometheus.Counter
	workerLatency      prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Runtime
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
	gcPause        prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry keeps default Go collectors out of the exposition.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careerlens",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	percent := prometheus.LinearBuckets(10, 10, 10)

	m.assessments = m.counterVec("assessments_total", "Assessments by outcome (ok, degraded, rejected)", "outcome")
	m.predictions = m.counterVec("predictions_total", "Predicted careers", "career")
	m.confidence = m.histogram("prediction_confidence_percent", "Confidence of the predicted career", percent)
	m.stageLatency = m.histogramVec("stage_latency_milliseconds", "Latency of each pipeline stage", m.histogramBuckets, "stage")
	m.stageErrors = m.counterVec("stage_errors_total", "Pipeline stage failures", "stage", "kind")
	m.modelAccuracy = m.gauge("model_accuracy_ratio", "Held-out accuracy of the loaded career model")
	m.skillMatch = m.histogram("skill_match_percent", "Resume skill match scores", percent)
	m.interviewAnswers = m.counterVec("interview_answers_total", "Scored interview answers by score bucket", "bucket")
	m.dominantTraits = m.counterVec("personality_dominant_total", "Dominant personality traits", "trait")

	m.storeOps = m.counterVec("store_operations_total", "Record store operations", "op", "status")
	m.storeLatency = m.histogramVec("store_latency_milliseconds", "Record store latency", m.histogramBuckets, "op")

	m.duplicates = m.counter("submissions_duplicate_total", "Async submissions rejected as duplicates")
	m.queueSize = m.gauge("queue_size", "Pending async assessments")
	m.queueCapacity = m.gauge("queue_capacity", "Async queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Jobs accepted by the queue")
	m.queueDequeued = m.counter("queue_dequeued_total", "Jobs handed to workers")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Jobs refused by the queue", "reason")
	m.workerActive = m.gauge("worker_active", "Running workers")
	m.workerProcessed = m.counter("worker_processed_total", "Jobs completed by workers")
	m.workerErrors = m.counter("worker_errors_total", "Jobs that failed in a worker")
	m.workerLatency = m.histogram("worker_processing_milliseconds", "Time spent per job", m.histogramBuckets)

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration",
		m.histogramBuckets, "endpoint", "method", "status_code")

	m.memoryUsage = m.gauge("system_memory_bytes", "Heap bytes in use")
	m.goroutineCount = m.gauge("system_goroutines", "Live goroutines")
	m.gcPause = m.histogram("system_gc_pause_milliseconds", "Most recent GC pause", m.histogramBuckets)
}

// RecordAssessment counts one assessment by outcome.
func RecordAssessment(outcome string) { globalManager.assessments.WithLabelValues(outcome).Inc() }

// RecordPrediction counts a predicted career and observes its confidence.
func RecordPrediction(career string, confidence float64) {
	globalManager.predictions.WithLabelValues(career).Inc()
	globalManager.confidence.Observe(confidence)
}

// RecordStageLatency observes how long a pipeline stage took.
func RecordStageLatency(stage string, latencyMs float64) {
	globalManager.stageLatency.WithLabelValues(stage).Observe(latencyMs)
}

// RecordStageError counts a failed stage.
func RecordStageError(stage, kind string) { globalManager.stageErrors.WithLabelValues(stage, kind).Inc() }

// UpdateModelAccuracy publishes the loaded model's accuracy.
func UpdateModelAccuracy(acc float64) { globalManager.modelAccuracy.Set(acc) }

// RecordSkillMatch observes a resume match score.
func RecordSkillMatch(score float64) { globalManager.skillMatch.Observe(score) }

// RecordInterviewAnswer counts a scored answer.
func RecordInterviewAnswer(bucket string) { globalManager.interviewAnswers.WithLabelValues(bucket).Inc() }

// RecordDominantTrait counts a personality reading.
func RecordDominantTrait(trait string) { globalManager.dominantTraits.WithLabelValues(trait).Inc() }

// RecordStoreOperation counts a store call and observes its latency.
func RecordStoreOperation(op, status string, latencyMs float64) {
	globalManager.storeOps.WithLabelValues(op, status).Inc()
	globalManager.storeLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordDuplicateSubmission counts a rejected duplicate.
func RecordDuplicateSubmission() { globalManager.duplicates.Inc() }

// UpdateQueueCapacity publishes the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueDepth publishes queue size and utilization.
func UpdateQueueDepth(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue counts an accepted job.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue counts a job handed to a worker.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a refused job.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerActive publishes the running worker count.
func UpdateWorkerActive(n int) { globalManager.workerActive.Set(float64(n)) }

// RecordWorkerJob counts a finished job and observes its duration.
func RecordWorkerJob(latencyMs float64, failed bool) {
	globalManager.workerLatency.Observe(latencyMs)
	if failed {
		globalManager.workerErrors.Inc()
		return
	}
	globalManager.workerProcessed.Inc()
}

// RecordHTTPRequest counts a request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage publishes heap usage.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.memoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount publishes the goroutine count.
func UpdateSystemGoroutineCount(count int) { globalManager.goroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime observes a GC pause.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.gcPause.Observe(pauseMs) }

// GetRegistry returns the registry the global collectors live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
