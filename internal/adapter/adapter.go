package adapter

import (
	"sort"

	"latentd/internal/binding"
)

// Capability names one optional ModelAdapter operation.
type Capability string

const (
	CapLogLik           Capability = "LOG_LIK"
	CapPredict          Capability = "PREDICT"
	CapSamplePrior      Capability = "SAMPLE_PRIOR"
	CapSampleLikelihood Capability = "SAMPLE_LIKELIHOOD"
)

// Model is the required contract every adapter variant satisfies. LogProb
// returns log p(xs, zs), the joint density of the observed-data binding and
// the latent binding. Implementations must be deterministic for fixed
// inputs and must compute in log space throughout.
type Model interface {
	LogProb(xs, zs binding.Binding) (float64, error)
}

// LogLiker evaluates the likelihood term alone, log p(xs | zs), excluding
// the prior. Needed only by strategies that exploit a closed-form
// divergence.
type LogLiker interface {
	Model
	LogLik(xs, zs binding.Binding) (float64, error)
}

// Predictor returns the likelihood mean per data point conditioned on one
// latent realization. Used by downstream evaluation, not training.
type Predictor interface {
	Model
	Predict(xs, zs binding.Binding) (binding.Binding, error)
}

// PriorSampler draws one realization of every latent variable from the
// prior.
type PriorSampler interface {
	Model
	SamplePrior() (binding.Binding, error)
}

// LikelihoodSampler draws one replicated data set from p(x_new | zs). The
// returned binding's keys and shapes must match the observed-data binding
// it replicates; predictive checks rely on that.
type LikelihoodSampler interface {
	Model
	SampleLikelihood(zs binding.Binding) (binding.Binding, error)
}

// Subsampler reports whether the variant supports per-step data
// subsampling. Variants without the method are treated as full-batch only.
type Subsampler interface {
	SupportsSubsampling() bool
}

// Declarer lets option-configured variants narrow their structural method
// set to the operations actually wired at construction time. Capabilities
// are fixed at construction; the probe intersects the declared set with
// the methods present.
type Declarer interface {
	DeclaredCapabilities() CapabilitySet
}

// CapabilitySet is the set of optional operations one adapter instance
// supports.
type CapabilitySet map[Capability]bool

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// Names returns the capability names in sorted order.
func (s CapabilitySet) Names() []string {
	names := make([]string, 0, len(s))
	for c, ok := range s {
		if ok {
			names = append(names, string(c))
		}
	}
	sort.Strings(names)
	return names
}

// Equal reports whether two sets contain the same capabilities.
func (s CapabilitySet) Equal(o CapabilitySet) bool {
	if len(s) != len(o) {
		return false
	}
	for c, ok := range s {
		if o[c] != ok {
			return false
		}
	}
	return true
}
