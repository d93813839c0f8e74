package qemviz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts parser and assembler outcomes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	RegionsAccepted      prometheus.Counter
	RecordsSkipped       prometheus.Counter
	ResourceUnavailable  prometheus.Counter
	FragmentsAttached    *prometheus.CounterVec
	FragmentLoadFailures *prometheus.CounterVec
	DirectoryUnready     *prometheus.CounterVec
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "qemviz_regions_accepted_total",
			Help: "Bounding regions accepted from metadata files",
		}),
		RecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "qemviz_records_skipped_total",
			Help: "Malformed metadata lines skipped",
		}),
		ResourceUnavailable: factory.NewCounter(prometheus.CounterOpts{
			Name: "qemviz_resource_unavailable_total",
			Help: "Metadata lookups that found no resource",
		}),
		FragmentsAttached: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qemviz_fragments_attached_total",
			Help: "Fragments attached to a container",
		}, []string{"object"}),
		FragmentLoadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qemviz_fragment_load_failures_total",
			Help: "Matched fragment files that failed to load",
		}, []string{"object"}),
		DirectoryUnready: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qemviz_directory_unready_total",
			Help: "Assembly ticks where the fragment directory did not exist yet",
		}, []string{"object"}),
	}
}

func (m *Metrics) observeParse(r ParseReport) {
	if m == nil {
		return
	}
	m.RegionsAccepted.Add(float64(r.Accepted))
	m.RecordsSkipped.Add(float64(r.Skipped))
}

func (m *Metrics) resourceUnavailable() {
	if m == nil {
		return
	}
	m.ResourceUnavailable.Inc()
}

func (m *Metrics) attached(object string) {
	if m == nil {
		return
	}
	m.FragmentsAttached.WithLabelValues(object).Inc()
}

func (m *Metrics) loadFailed(object string) {
	if m == nil {
		return
	}
	m.FragmentLoadFailures.WithLabelValues(object).Inc()
}

func (m *Metrics) directoryUnready(object string) {
	if m == nil {
		return
	}
	m.DirectoryUnready.WithLabelValues(object).Inc()
}
