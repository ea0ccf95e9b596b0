// Package plan holds the configuration-time validation a driver runs before
// an inference run starts. The restrictions are declarative rules over the
// strategy, the latent-variable spec, and the adapter's declared support,
// evaluated in one pass; nothing here is checked lazily mid-run.
package plan

import (
	"fmt"

	"latentd/internal/adapter"
)

// Strategy identifies the family of inference algorithm a driver will run.
// The algorithms themselves live outside this module; only their dispatch
// restrictions are encoded here.
type Strategy string

const (
	// StrategyMAP is a maximum-a-posteriori point-estimate run.
	StrategyMAP Strategy = "map"
	// StrategySimulation is a sample-storing (Monte Carlo) run.
	StrategySimulation Strategy = "simulation"
	// StrategyVariational is a gradient-based variational run.
	StrategyVariational Strategy = "variational"
)

// ParseStrategy maps a wire string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMAP, StrategySimulation, StrategyVariational:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown inference strategy: %q", s)
}

// LatentSpec names the latent variables a driver is responsible for. The
// single-name form and the list form are distinct specifications: some
// strategies reject the list form outright, regardless of its length.
type LatentSpec struct {
	names  []string
	isList bool
}

// Single builds the single-name spec form.
func Single(name string) LatentSpec {
	return LatentSpec{names: []string{name}}
}

// List builds the list spec form.
func List(names ...string) LatentSpec {
	return LatentSpec{names: append([]string(nil), names...), isList: true}
}

// Names returns the latent names in spec order.
func (s LatentSpec) Names() []string { return append([]string(nil), s.names...) }

// IsList reports whether the spec uses the list form.
func (s LatentSpec) IsList() bool { return s.isList }

// Plan is one driver configuration to validate against an adapter.
type Plan struct {
	Strategy  Strategy
	Latents   LatentSpec
	Subsample bool
}

// Validate applies the dispatch restrictions for running p against m. It
// must be called before any data is touched; every failure here is a
// configuration error, never a mid-run one.
//
// Against a generic adapter the driver cannot recover per-variable
// dimensionality or support constraints, hence the MAP single-latent rule
// and the simulation-strategy list rejection.
func Validate(p Plan, m adapter.Model) error {
	switch p.Strategy {
	case StrategyMAP:
		if n := len(p.Latents.names); n > 1 {
			return ErrUnsupportedLatentSpec(p.Strategy,
				fmt.Sprintf("at most one latent name allowed against an adapter, got %d", n))
		}
	case StrategySimulation:
		if p.Latents.isList {
			return ErrUnsupportedLatentSpec(p.Strategy,
				"list-valued latent spec rejected against an adapter; supply sample-holding distributions explicitly")
		}
	}
	if p.Subsample && !adapter.SupportsSubsampling(m) {
		return ErrSubsamplingUnsupported()
	}
	return nil
}
