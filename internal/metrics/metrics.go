// Package metrics records Reed-Solomon decode outcomes in a prometheus registry.
package metrics

import (
	"errors"

	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Decode outcomes used as the "outcome" label value.
const (
	OutcomeClean         = "clean"
	OutcomeCorrected     = "corrected"
	OutcomeUncorrectable = "uncorrectable"
	OutcomeInvalid       = "invalid"
	// OutcomeMiscorrected is only known to callers that hold the original
	// codeword, such as the stress command.
	OutcomeMiscorrected = "miscorrected"
)

var outcomes = []string{OutcomeClean, OutcomeCorrected, OutcomeUncorrectable, OutcomeInvalid, OutcomeMiscorrected}

// Recorder owns a private registry so that several recorders can coexist
// in one process (and in tests).
type Recorder struct {
	registry  *prometheus.Registry
	decodes   *prometheus.CounterVec
	corrected prometheus.Histogram
}

// NewRecorder registers the decode metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qrecc_decode_total",
			Help: "Reed-Solomon decode calls by outcome.",
		}, []string{"outcome"}),
		corrected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qrecc_corrected_codewords",
			Help:    "Codewords corrected per successful decode.",
			Buckets: prometheus.LinearBuckets(0, 1, 16),
		}),
	}
	r.registry.MustRegister(r.decodes, r.corrected)

	// expose every outcome even before it happens
	for _, outcome := range outcomes {
		r.decodes.WithLabelValues(outcome)
	}
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Observe classifies the result of one Decoder.Decode call.
func (r *Recorder) Observe(corrected int, err error) string {
	outcome := Classify(corrected, err)
	r.decodes.WithLabelValues(outcome).Inc()
	if err == nil {
		r.corrected.Observe(float64(corrected))
	}
	return outcome
}

// ObserveMiscorrection records a decode that reported success but produced a
// codeword other than the one that was sent.
func (r *Recorder) ObserveMiscorrection() {
	r.decodes.WithLabelValues(OutcomeMiscorrected).Inc()
}

// Classify maps a decode result to its outcome label.
func Classify(corrected int, err error) string {
	switch {
	case err == nil && corrected == 0:
		return OutcomeClean
	case err == nil:
		return OutcomeCorrected
	case errors.Is(err, reedsolomon.ErrUncorrectable):
		return OutcomeUncorrectable
	default:
		return OutcomeInvalid
	}
}

// Snapshot holds counter values read back from the registry.
type Snapshot struct {
	Outcomes       map[string]uint64
	CorrectedTotal uint64
	CorrectedSum   float64
}

// Total is the number of decode calls across all outcomes.
func (s Snapshot) Total() uint64 {
	var total uint64
	for _, n := range s.Outcomes {
		total += n
	}
	return total
}

// Snapshot gathers the current metric values.
func (r *Recorder) Snapshot() (Snapshot, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Outcomes: make(map[string]uint64, len(outcomes))}
	for _, family := range families {
		switch family.GetName() {
		case "qrecc_decode_total":
			for _, m := range family.GetMetric() {
				snap.Outcomes[labelValue(m, "outcome")] = uint64(m.GetCounter().GetValue())
			}
		case "qrecc_corrected_codewords":
			for _, m := range family.GetMetric() {
				snap.CorrectedTotal = m.GetHistogram().GetSampleCount()
				snap.CorrectedSum = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return snap, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}
