// Package metrics exposes Prometheus instrumentation for the proving
// service surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the proving and verification instruments.
type Metrics struct {
	ProofsGenerated *prometheus.CounterVec
	ProofFailures   *prometheus.CounterVec
	ProvingSeconds  *prometheus.HistogramVec
	Verifications   *prometheus.CounterVec
	VerifySeconds   prometheus.Histogram
}

// New creates and registers the instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		ProofsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civium_zk_proofs_generated_total",
			Help: "Proofs generated, by circuit.",
		}, []string{"circuit"}),
		ProofFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civium_zk_proof_failures_total",
			Help: "Failed proof attempts, by circuit and reason.",
		}, []string{"circuit", "reason"}),
		ProvingSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civium_zk_proving_seconds",
			Help:    "Wall-clock proving latency, by circuit.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"circuit"}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civium_zk_verifications_total",
			Help: "Verification attempts, by circuit and outcome.",
		}, []string{"circuit", "outcome"}),
		VerifySeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "civium_zk_verification_seconds",
			Help:    "Wall-clock verification latency.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
	}
}
