package adapter

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"latentd/internal/binding"
	"latentd/internal/program"
)

// External wraps a compiled declarative model program. The program declares
// its full data set up front, so this variant is full-batch only: a data
// binding that is a strict subset of the declaration fails with
// UnsupportedPartialData before any density is computed.
//
// Sampling operations share one rand source, so an External instance is
// owned exclusively by a single driver for the duration of a run.
type External struct {
	prog   *program.Program
	source string
	src    rand.Source
}

// ExternalOption adjusts construction.
type ExternalOption func(*External)

// WithRandSource sets the source used by the sampling operations. Without
// it a PCG source with a fixed default seed is used.
func WithRandSource(src rand.Source) ExternalOption {
	return func(e *External) { e.src = src }
}

// NewExternal compiles inline program text. Compile failures surface as
// AdapterConstructionFailed wrapping the compile error.
func NewExternal(text string, opts ...ExternalOption) (*External, error) {
	return newExternal(text, "inline program", opts)
}

// NewExternalFromFile reads and compiles a program file.
func NewExternalFromFile(path string, opts ...ExternalOption) (*External, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrConstructionFailed(path, err)
	}
	return newExternal(string(b), path, opts)
}

func newExternal(text, source string, opts []ExternalOption) (*External, error) {
	prog, err := program.Compile(text)
	if err != nil {
		return nil, ErrConstructionFailed(source, err)
	}
	e := &External{prog: prog, source: source}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = rand.NewPCG(0x1a7e, 0xd0d)
	}
	return e, nil
}

// Source identifies where the program came from (path or "inline program").
func (e *External) Source() string { return e.source }

// Program exposes the compiled program for callers that need the data
// declaration (sizes, names).
func (e *External) Program() *program.Program { return e.prog }

// DeclaredCapabilities: the program representation supports every optional
// operation.
func (e *External) DeclaredCapabilities() CapabilitySet {
	return CapabilitySet{
		CapLogLik:           true,
		CapPredict:          true,
		CapSamplePrior:      true,
		CapSampleLikelihood: true,
	}
}

// SupportsSubsampling is false: the program representation has no uniform
// mechanism for partial-data binding.
func (e *External) SupportsSubsampling() bool { return false }

// checkFullBatch verifies that xs covers every declared data variable at
// its declared size.
func (e *External) checkFullBatch(xs binding.Binding) error {
	var short []string
	for _, d := range e.prog.DataDecls() {
		want := d.Len
		if want == 0 {
			want = 1
		}
		v, err := xs.Get(d.Name)
		if err != nil {
			short = append(short, d.Name)
			continue
		}
		if v.Len() != want {
			short = append(short, fmt.Sprintf("%s (got %d of %d)", d.Name, v.Len(), want))
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		return ErrUnsupportedPartialData(short...)
	}
	return nil
}

// latentScalars extracts the program parameters from zs. Parameters are
// scalar by declaration.
func (e *External) latentScalars(zs binding.Binding) (map[string]float64, error) {
	params := make(map[string]float64, len(e.prog.Params()))
	for _, name := range e.prog.Params() {
		v, err := zs.Get(name)
		if err != nil {
			return nil, err
		}
		s, ok := v.AsScalar()
		if !ok {
			return nil, fmt.Errorf("parameter %s must be scalar, got %s", name, v)
		}
		params[name] = s
	}
	return params, nil
}

// LogProb implements Model.
func (e *External) LogProb(xs, zs binding.Binding) (float64, error) {
	if err := e.checkFullBatch(xs); err != nil {
		return 0, err
	}
	params, err := e.latentScalars(zs)
	if err != nil {
		return 0, err
	}
	return e.prog.LogJoint(toArrays(xs), params)
}

// LogLik implements LogLiker.
func (e *External) LogLik(xs, zs binding.Binding) (float64, error) {
	if err := e.checkFullBatch(xs); err != nil {
		return 0, err
	}
	params, err := e.latentScalars(zs)
	if err != nil {
		return 0, err
	}
	return e.prog.LogLik(toArrays(xs), params)
}

// Predict implements Predictor: the likelihood mean per declared data
// variable under one latent realization.
func (e *External) Predict(xs, zs binding.Binding) (binding.Binding, error) {
	params, err := e.latentScalars(zs)
	if err != nil {
		return binding.Binding{}, err
	}
	means, err := e.prog.Means(params)
	if err != nil {
		return binding.Binding{}, err
	}
	return fromArrays(means), nil
}

// SamplePrior implements PriorSampler by ancestral sampling over the
// parameter statements.
func (e *External) SamplePrior() (binding.Binding, error) {
	params, err := e.prog.SamplePrior(e.src)
	if err != nil {
		return binding.Binding{}, err
	}
	b := binding.New()
	for name, v := range params {
		b = b.With(name, binding.Scalar(v))
	}
	return b, nil
}

// SampleLikelihood implements LikelihoodSampler. The replicated binding
// carries exactly the declared data keys at their declared sizes.
func (e *External) SampleLikelihood(zs binding.Binding) (binding.Binding, error) {
	params, err := e.latentScalars(zs)
	if err != nil {
		return binding.Binding{}, err
	}
	draws, err := e.prog.SampleData(params, e.src)
	if err != nil {
		return binding.Binding{}, err
	}
	return fromArrays(draws), nil
}
