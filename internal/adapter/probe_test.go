package adapter

import (
	"testing"

	"latentd/internal/binding"
)

// bareModel implements only the required operation.
type bareModel struct{}

func (bareModel) LogProb(xs, zs binding.Binding) (float64, error) { return 0, nil }

// richModel implements every optional operation structurally.
type richModel struct{ bareModel }

func (richModel) LogLik(xs, zs binding.Binding) (float64, error) { return 0, nil }
func (richModel) Predict(xs, zs binding.Binding) (binding.Binding, error) {
	return binding.New(), nil
}
func (richModel) SamplePrior() (binding.Binding, error) { return binding.New(), nil }
func (richModel) SampleLikelihood(zs binding.Binding) (binding.Binding, error) {
	return binding.New(), nil
}

func TestProbeBareModel(t *testing.T) {
	caps := Probe(bareModel{})
	if len(caps.Names()) != 0 {
		t.Fatalf("bare model reports capabilities: %v", caps.Names())
	}
}

func TestProbeRichModel(t *testing.T) {
	caps := Probe(richModel{})
	for _, c := range []Capability{CapLogLik, CapPredict, CapSamplePrior, CapSampleLikelihood} {
		if !caps.Has(c) {
			t.Fatalf("missing %s in %v", c, caps.Names())
		}
	}
}

func TestProbeIdempotent(t *testing.T) {
	m := richModel{}
	first := Probe(m)
	second := Probe(m)
	if !first.Equal(second) {
		t.Fatalf("probe not idempotent: %v vs %v", first.Names(), second.Names())
	}
}

func TestDispatchOnBareModelNamesCapability(t *testing.T) {
	m := bareModel{}
	if _, err := LogLik(m, binding.New(), binding.New()); !IsUnsupportedOperation(err) {
		t.Fatalf("LogLik: %v", err)
	}
	if _, err := Predict(m, binding.New(), binding.New()); !IsUnsupportedOperation(err) {
		t.Fatalf("Predict: %v", err)
	}
	if _, err := SamplePrior(m); !IsUnsupportedOperation(err) {
		t.Fatalf("SamplePrior: %v", err)
	}
	_, err := SampleLikelihood(m, binding.New())
	if !IsUnsupportedOperation(err) {
		t.Fatalf("SampleLikelihood: %v", err)
	}
	if cap, ok := MissingCapability(err); !ok || cap != CapSampleLikelihood {
		t.Fatalf("error does not name SAMPLE_LIKELIHOOD: %v", err)
	}
}

func TestSupportsSubsamplingDefault(t *testing.T) {
	if SupportsSubsampling(bareModel{}) {
		t.Fatalf("variant without declaration should default to full batch")
	}
}
