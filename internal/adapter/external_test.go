package adapter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"latentd/internal/binding"
	"latentd/internal/program"
)

const coinProgram = `
data {
	x[10];
}
params {
	p;
}
model {
	p ~ beta(1, 1);
	x ~ bernoulli(p);
}
`

func newCoinExternal(t *testing.T) *External {
	t.Helper()
	m, err := NewExternal(coinProgram)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	return m
}

func TestExternalLogProbMatchesClosedForm(t *testing.T) {
	m := newCoinExternal(t)
	zs := binding.New().With("p", binding.Scalar(0.5))
	got, err := m.LogProb(coinData(), zs)
	if err != nil {
		t.Fatalf("log prob: %v", err)
	}
	if want := 10 * math.Log(0.5); math.Abs(got-want) > 1e-9 {
		t.Fatalf("log prob = %v, want %v", got, want)
	}
}

func TestExternalPartialDataRejected(t *testing.T) {
	m := newCoinExternal(t)
	zs := binding.New().With("p", binding.Scalar(0.5))
	half := binding.New().With("x", binding.Vector([]float64{0, 1, 0, 0, 0}))
	if _, err := m.LogProb(half, zs); !IsUnsupportedPartialData(err) {
		t.Fatalf("half batch: expected UnsupportedPartialData, got %v", err)
	}
	empty := binding.New()
	if _, err := m.LogProb(empty, zs); !IsUnsupportedPartialData(err) {
		t.Fatalf("missing variable: expected UnsupportedPartialData, got %v", err)
	}
}

func TestExternalFullCapabilities(t *testing.T) {
	caps := Probe(newCoinExternal(t))
	for _, c := range []Capability{CapLogLik, CapPredict, CapSamplePrior, CapSampleLikelihood} {
		if !caps.Has(c) {
			t.Fatalf("missing %s: %v", c, caps.Names())
		}
	}
}

func TestExternalNoSubsampling(t *testing.T) {
	if SupportsSubsampling(newCoinExternal(t)) {
		t.Fatalf("external variant must be full-batch only")
	}
}

func TestExternalSampleLikelihoodShapes(t *testing.T) {
	m := newCoinExternal(t)
	rep, err := m.SampleLikelihood(binding.New().With("p", binding.Scalar(0.5)))
	if err != nil {
		t.Fatalf("sample likelihood: %v", err)
	}
	v, err := rep.Get("x")
	if err != nil {
		t.Fatalf("replicate missing x: %v", err)
	}
	if v.Len() != 10 {
		t.Fatalf("replicate has %d elements, want 10", v.Len())
	}
}

func TestExternalSamplePrior(t *testing.T) {
	m := newCoinExternal(t)
	prior, err := m.SamplePrior()
	if err != nil {
		t.Fatalf("sample prior: %v", err)
	}
	v, err := prior.Get("p")
	if err != nil {
		t.Fatalf("prior missing p: %v", err)
	}
	s, ok := v.AsScalar()
	if !ok || s < 0 || s > 1 {
		t.Fatalf("prior draw out of support: %v", v)
	}
}

func TestExternalPredict(t *testing.T) {
	m := newCoinExternal(t)
	out, err := m.Predict(coinData(), binding.New().With("p", binding.Scalar(0.25)))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	v, err := out.Get("x")
	if err != nil {
		t.Fatalf("prediction missing x: %v", err)
	}
	if v.Len() != 10 || v.Data()[0] != 0.25 {
		t.Fatalf("unexpected prediction: %v", v.Data())
	}
}

func TestExternalCompileFailure(t *testing.T) {
	_, err := NewExternal("model { x ~ nope(); }")
	if !IsConstructionFailed(err) {
		t.Fatalf("expected AdapterConstructionFailed, got %v", err)
	}
	// The compile error stays inspectable through the wrapper.
	var found bool
	if ce := errorsUnwrap(err); ce != nil {
		found = program.IsCompile(ce)
	}
	if !found {
		t.Fatalf("construction error does not wrap the compile error: %v", err)
	}
}

func TestExternalFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coin.model")
	if err := os.WriteFile(path, []byte(coinProgram), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := NewExternalFromFile(path)
	if err != nil {
		t.Fatalf("construct from file: %v", err)
	}
	if m.Source() != path {
		t.Fatalf("source = %q, want %q", m.Source(), path)
	}
	if _, err := NewExternalFromFile(filepath.Join(dir, "missing.model")); !IsConstructionFailed(err) {
		t.Fatalf("missing file: expected construction failure, got %v", err)
	}
}

// errorsUnwrap pulls the wrapped cause out of a construction error.
func errorsUnwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
