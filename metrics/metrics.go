// Package metrics holds the prometheus collectors shared across the
// planner. Everything registers on the default registry; the server exposes
// it on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CompletionAttempts counts model tries by outcome: ok, empty, error.
	CompletionAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_completion_attempts_total",
		Help: "Chat completion attempts by model and outcome.",
	}, []string{"model", "outcome"})

	ItinerariesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_itineraries_generated_total",
		Help: "Itineraries generated successfully.",
	})

	// PDFRenders counts document renders by outcome: ok, error.
	PDFRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_pdf_renders_total",
		Help: "PDF renders by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(CompletionAttempts, ItinerariesGenerated, PDFRenders)
}
