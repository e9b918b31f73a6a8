// Package metrics records generation activity as Prometheus collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/VantageDataChat/slidegen"
)

const namespace = "slidegen"

// Metrics exposes Prometheus collectors that report deck generation.
type Metrics struct {
	registry *prometheus.Registry

	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	slides   *prometheus.CounterVec
	shapes   prometheus.Counter
	images   *prometheus.CounterVec
	removed  *prometheus.CounterVec
	tokens   prometheus.Counter
}

// New constructs Metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Deck generations by mode and outcome.",
			},
			[]string{"mode", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Time spent producing one deck.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		slides: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slides_total",
				Help:      "Slides written to output decks.",
			},
			[]string{"mode"},
		),
		shapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shapes_total",
			Help:      "Shapes placed by the layout engine.",
		}),
		images: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "images_total",
				Help:      "Images by outcome: embedded, skipped or fallback.",
			},
			[]string{"outcome"},
		),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "template_removed_total",
				Help:      "Template elements removed during a rewrite.",
			},
			[]string{"kind"},
		),
		tokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_tokens_replaced_total",
			Help:      "Placeholder tokens substituted in template text.",
		}),
	}
	m.registry.MustRegister(m.runs, m.duration, m.slides, m.shapes, m.images, m.removed, m.tokens)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one run. st may be nil when the run failed early.
func (m *Metrics) Observe(mode string, st *slidegen.Stats, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runs.WithLabelValues(mode, status).Inc()
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if st == nil {
		return
	}
	m.slides.WithLabelValues(mode).Add(float64(st.Slides))
	m.shapes.Add(float64(st.Shapes))
	m.images.WithLabelValues("embedded").Add(float64(st.ImagesEmbedded))
	m.images.WithLabelValues("skipped").Add(float64(st.ImagesSkipped))
	m.images.WithLabelValues("fallback").Add(float64(st.ImagesFallback))
	m.removed.WithLabelValues("slide").Add(float64(st.SlidesRemoved))
	m.removed.WithLabelValues("picture").Add(float64(st.PicturesRemoved))
	m.removed.WithLabelValues("unresolved_blip").Add(float64(st.BlipsUnresolved))
	m.tokens.Add(float64(st.TokensReplaced))
}

// WriteFile writes the collectors in the node exporter textfile format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
