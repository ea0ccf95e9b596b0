package adapter

import "latentd/internal/binding"

// Probe inspects which optional operations m exposes and returns its
// capability set. Probing is pure and idempotent; callers cache the result
// per instance because capabilities are fixed at construction.
func Probe(m Model) CapabilitySet {
	caps := CapabilitySet{}
	if _, ok := m.(LogLiker); ok {
		caps[CapLogLik] = true
	}
	if _, ok := m.(Predictor); ok {
		caps[CapPredict] = true
	}
	if _, ok := m.(PriorSampler); ok {
		caps[CapSamplePrior] = true
	}
	if _, ok := m.(LikelihoodSampler); ok {
		caps[CapSampleLikelihood] = true
	}
	if d, ok := m.(Declarer); ok {
		declared := d.DeclaredCapabilities()
		for c := range caps {
			if !declared.Has(c) {
				delete(caps, c)
			}
		}
	}
	return caps
}

// SupportsSubsampling reports the variant's subsampling support, defaulting
// to full-batch only when the variant does not say.
func SupportsSubsampling(m Model) bool {
	if s, ok := m.(Subsampler); ok {
		return s.SupportsSubsampling()
	}
	return false
}

// LogLik dispatches the LOG_LIK operation, failing with
// UnsupportedOperation when the adapter lacks it.
func LogLik(m Model, xs, zs binding.Binding) (float64, error) {
	if l, ok := m.(LogLiker); ok && Probe(m).Has(CapLogLik) {
		return l.LogLik(xs, zs)
	}
	return 0, ErrUnsupportedOperation(CapLogLik)
}

// Predict dispatches the PREDICT operation.
func Predict(m Model, xs, zs binding.Binding) (binding.Binding, error) {
	if p, ok := m.(Predictor); ok && Probe(m).Has(CapPredict) {
		return p.Predict(xs, zs)
	}
	return binding.Binding{}, ErrUnsupportedOperation(CapPredict)
}

// SamplePrior dispatches the SAMPLE_PRIOR operation.
func SamplePrior(m Model) (binding.Binding, error) {
	if s, ok := m.(PriorSampler); ok && Probe(m).Has(CapSamplePrior) {
		return s.SamplePrior()
	}
	return binding.Binding{}, ErrUnsupportedOperation(CapSamplePrior)
}

// SampleLikelihood dispatches the SAMPLE_LIKELIHOOD operation.
func SampleLikelihood(m Model, zs binding.Binding) (binding.Binding, error) {
	if s, ok := m.(LikelihoodSampler); ok && Probe(m).Has(CapSampleLikelihood) {
		return s.SampleLikelihood(zs)
	}
	return binding.Binding{}, ErrUnsupportedOperation(CapSampleLikelihood)
}
