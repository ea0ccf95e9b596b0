package adapter

import (
	"errors"

	"latentd/internal/binding"
)

// LogDensityFunc evaluates a log density over plain float arrays. The maps
// are copies; callbacks may not mutate shared state through them.
type LogDensityFunc func(xs, zs map[string][]float64) (float64, error)

// ArrayFunc produces named float arrays from a data and latent binding.
type ArrayFunc func(xs, zs map[string][]float64) (map[string][]float64, error)

// Numeric wraps plain numerical callbacks behind the Model contract.
// Values are converted between the binding representation and raw float
// slices at entry and exit of every call; gradients are not available
// through this variant, so gradient-based strategies must not use it.
type Numeric struct {
	logProb   LogDensityFunc
	logLik    LogDensityFunc
	predict   ArrayFunc
	prior     func() (map[string][]float64, error)
	sampleLik func(zs map[string][]float64) (map[string][]float64, error)
}

// NumericOption wires one optional operation at construction time.
type NumericOption func(*Numeric)

// WithLogLik wires the LOG_LIK operation.
func WithLogLik(fn LogDensityFunc) NumericOption {
	return func(n *Numeric) { n.logLik = fn }
}

// WithPredict wires the PREDICT operation.
func WithPredict(fn ArrayFunc) NumericOption {
	return func(n *Numeric) { n.predict = fn }
}

// WithPriorSampler wires the SAMPLE_PRIOR operation.
func WithPriorSampler(fn func() (map[string][]float64, error)) NumericOption {
	return func(n *Numeric) { n.prior = fn }
}

// WithLikelihoodSampler wires the SAMPLE_LIKELIHOOD operation. The callback
// must return keys and lengths matching the observed data it replicates.
func WithLikelihoodSampler(fn func(zs map[string][]float64) (map[string][]float64, error)) NumericOption {
	return func(n *Numeric) { n.sampleLik = fn }
}

// NewNumeric constructs a numeric adapter around the required log joint
// density callback. A nil callback is a construction failure.
func NewNumeric(logProb LogDensityFunc, opts ...NumericOption) (*Numeric, error) {
	if logProb == nil {
		return nil, ErrConstructionFailed("numeric", errors.New("nil log density callback"))
	}
	n := &Numeric{logProb: logProb}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// DeclaredCapabilities reports the operations wired at construction.
func (n *Numeric) DeclaredCapabilities() CapabilitySet {
	caps := CapabilitySet{}
	if n.logLik != nil {
		caps[CapLogLik] = true
	}
	if n.predict != nil {
		caps[CapPredict] = true
	}
	if n.prior != nil {
		caps[CapSamplePrior] = true
	}
	if n.sampleLik != nil {
		caps[CapSampleLikelihood] = true
	}
	return caps
}

// SupportsSubsampling is true: a numerical callback has no fixed data
// declaration, so partial bindings are the callback's concern.
func (n *Numeric) SupportsSubsampling() bool { return true }

// LogProb implements Model.
func (n *Numeric) LogProb(xs, zs binding.Binding) (float64, error) {
	return n.logProb(toArrays(xs), toArrays(zs))
}

// LogLik implements LogLiker when wired.
func (n *Numeric) LogLik(xs, zs binding.Binding) (float64, error) {
	if n.logLik == nil {
		return 0, ErrUnsupportedOperation(CapLogLik)
	}
	return n.logLik(toArrays(xs), toArrays(zs))
}

// Predict implements Predictor when wired.
func (n *Numeric) Predict(xs, zs binding.Binding) (binding.Binding, error) {
	if n.predict == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapPredict)
	}
	out, err := n.predict(toArrays(xs), toArrays(zs))
	if err != nil {
		return binding.Binding{}, err
	}
	return fromArrays(out), nil
}

// SamplePrior implements PriorSampler when wired.
func (n *Numeric) SamplePrior() (binding.Binding, error) {
	if n.prior == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapSamplePrior)
	}
	out, err := n.prior()
	if err != nil {
		return binding.Binding{}, err
	}
	return fromArrays(out), nil
}

// SampleLikelihood implements LikelihoodSampler when wired.
func (n *Numeric) SampleLikelihood(zs binding.Binding) (binding.Binding, error) {
	if n.sampleLik == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapSampleLikelihood)
	}
	out, err := n.sampleLik(toArrays(zs))
	if err != nil {
		return binding.Binding{}, err
	}
	return fromArrays(out), nil
}

// toArrays copies a binding into raw float slices for the callback side of
// the boundary.
func toArrays(b binding.Binding) map[string][]float64 {
	out := make(map[string][]float64, b.Len())
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		out[k] = v.Data()
	}
	return out
}

// fromArrays converts callback output back into an immutable binding.
// Arrays come back as one-dimensional values.
func fromArrays(m map[string][]float64) binding.Binding {
	b := binding.New()
	for k, data := range m {
		b = b.With(k, binding.Vector(data))
	}
	return b
}
