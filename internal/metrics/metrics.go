package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invoicepack"

// Recorder owns a private registry so a run can be flushed to a node_exporter
// textfile without touching the global default registry.
type Recorder struct {
	registry        *prometheus.Registry
	documents       *prometheus.CounterVec
	jobs            *prometheus.CounterVec
	pairingAttempts *prometheus.CounterVec
	prints          *prometheus.CounterVec
	batchDuration   prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Source documents by result (read, skipped)",
			},
			[]string{"result"},
		),
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_total",
				Help:      "Output jobs by kind and result (written, failed)",
			},
			[]string{"kind", "result"},
		),
		pairingAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pairing_attempts_total",
				Help:      "Scale searches by result (fit, no_fit)",
			},
			[]string{"result"},
		),
		prints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "prints_total",
				Help:      "Print submissions by result (sent, failed)",
			},
			[]string{"result"},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Wall time of a batch run",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	r.registry.MustRegister(r.documents, r.jobs, r.pairingAttempts, r.prints, r.batchDuration)
	return r
}

func (r *Recorder) DocumentRead() {
	r.documents.WithLabelValues("read").Inc()
}

func (r *Recorder) DocumentSkipped() {
	r.documents.WithLabelValues("skipped").Inc()
}

func (r *Recorder) JobWritten(kind string) {
	r.jobs.WithLabelValues(kind, "written").Inc()
}

func (r *Recorder) JobFailed(kind string) {
	r.jobs.WithLabelValues(kind, "failed").Inc()
}

func (r *Recorder) PairingAttempt(fit bool) {
	if fit {
		r.pairingAttempts.WithLabelValues("fit").Inc()
		return
	}
	r.pairingAttempts.WithLabelValues("no_fit").Inc()
}

func (r *Recorder) PrintSent() {
	r.prints.WithLabelValues("sent").Inc()
}

func (r *Recorder) PrintFailed() {
	r.prints.WithLabelValues("failed").Inc()
}

func (r *Recorder) ObserveBatch(d time.Duration) {
	r.batchDuration.Observe(d.Seconds())
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
