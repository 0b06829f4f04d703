// Package metrics records one run's figures in a private Prometheus
// registry and writes them in the node_exporter textfile format, for
// cron-driven runs where nothing stays up to be scraped.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"urllistsync/internal/domain"
)

const namespace = "urllistsync"

// Run holds the gauges and counters for a single invocation.
type Run struct {
	reg   *prometheus.Registry
	start time.Time

	domains       prometheus.Gauge
	chunksPlanned prometheus.Gauge
	chunksSent    prometheus.Gauge
	countBefore   prometheus.Gauge
	countAfter    prometheus.Gauge
	success       prometheus.Gauge
	lastRun       prometheus.Gauge
	duration      prometheus.Gauge
	requests      *prometheus.CounterVec
}

// New registers the run metrics, labelled with the target list.
func New(list string, start time.Time) *Run {
	labels := prometheus.Labels{"list": list}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: name, Help: help, ConstLabels: labels,
		})
	}
	r := &Run{
		reg:           prometheus.NewRegistry(),
		start:         start,
		domains:       gauge("domains", "Unique domains in the source set."),
		chunksPlanned: gauge("chunks_planned", "Chunks planned for the transfer."),
		chunksSent:    gauge("chunks_sent", "Chunks committed to the remote list."),
		countBefore:   gauge("count_before", "Remote entry count before the transfer."),
		countAfter:    gauge("count_after", "Remote entry count after the transfer."),
		success:       gauge("last_run_success", "1 if the last run completed, 0 otherwise."),
		lastRun:       gauge("last_run_timestamp_seconds", "Unix time the last run finished."),
		duration:      gauge("last_run_duration_seconds", "Wall time of the last run."),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "api_requests_total",
			Help: "HTTP attempts by method and status class.", ConstLabels: labels,
		}, []string{"method", "code"}),
	}
	r.reg.MustRegister(r.domains, r.chunksPlanned, r.chunksSent, r.countBefore,
		r.countAfter, r.success, r.lastRun, r.duration, r.requests)
	return r
}

// ObserveRequest counts one HTTP attempt. status 0 means no response.
func (r *Run) ObserveRequest(method string, status int) {
	r.requests.WithLabelValues(method, statusClass(status)).Inc()
}

// ObservePlan records the planned set and chunk count.
func (r *Run) ObservePlan(domains, chunks int) {
	r.domains.Set(float64(domains))
	r.chunksPlanned.Set(float64(chunks))
}

// ObserveOutcome records the transfer figures, partial or not.
func (r *Run) ObserveOutcome(o domain.Outcome) {
	r.chunksSent.Set(float64(o.ChunksSent))
	r.countBefore.Set(float64(o.CountBefore))
	r.countAfter.Set(float64(o.CountAfter))
}

// Finish stamps success, time and duration.
func (r *Run) Finish(err error, now time.Time) {
	if err == nil {
		r.success.Set(1)
	} else {
		r.success.Set(0)
	}
	r.lastRun.Set(float64(now.Unix()))
	r.duration.Set(now.Sub(r.start).Seconds())
}

// Gatherer exposes the registry.
func (r *Run) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the metrics to path atomically.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
