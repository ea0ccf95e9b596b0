package adapter

import (
	"math"
	"testing"

	"latentd/internal/binding"
	"latentd/internal/dist"
)

// betaBernoulli builds the joint density of the coin-flip model used
// throughout: p ~ Beta(1,1), x_i ~ Bernoulli(p).
func betaBernoulli(xs, zs map[string][]float64) (float64, error) {
	p := zs["p"][0]
	prior, err := dist.New("beta", []float64{1, 1}, nil)
	if err != nil {
		return 0, err
	}
	lik, err := dist.New("bernoulli", []float64{p}, nil)
	if err != nil {
		return 0, err
	}
	total := prior.LogProb(p)
	for _, x := range xs["x"] {
		total += lik.LogProb(x)
	}
	return total, nil
}

func coinData() binding.Binding {
	return binding.New().With("x", binding.Vector([]float64{0, 1, 0, 0, 0, 0, 0, 0, 0, 1}))
}

func TestNumericBetaBernoulliClosedForm(t *testing.T) {
	m, err := NewNumeric(betaBernoulli)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	zs := binding.New().With("p", binding.Scalar(0.5))
	got, err := m.LogProb(coinData(), zs)
	if err != nil {
		t.Fatalf("log prob: %v", err)
	}
	want := 10 * math.Log(0.5)
	if math.Abs(got-want) > 1e-4 {
		t.Fatalf("log prob = %v, want %v (~-6.9315)", got, want)
	}
}

func TestNumericDeterminism(t *testing.T) {
	m, err := NewNumeric(betaBernoulli)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	xs := coinData()
	zs := binding.New().With("p", binding.Scalar(0.3))
	first, err := m.LogProb(xs, zs)
	if err != nil {
		t.Fatalf("log prob: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := m.LogProb(xs, zs)
		if err != nil {
			t.Fatalf("log prob: %v", err)
		}
		if again != first {
			t.Fatalf("repeated call differs: %v vs %v", again, first)
		}
	}
}

func TestNumericMissingLogLik(t *testing.T) {
	m, err := NewNumeric(betaBernoulli)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = LogLik(m, coinData(), binding.New().With("p", binding.Scalar(0.5)))
	if !IsUnsupportedOperation(err) {
		t.Fatalf("expected UnsupportedOperation, got %v", err)
	}
	cap, ok := MissingCapability(err)
	if !ok || cap != CapLogLik {
		t.Fatalf("error does not name LOG_LIK: %v", err)
	}
}

func TestNumericDeclaredCapabilities(t *testing.T) {
	m, err := NewNumeric(betaBernoulli,
		WithLogLik(func(xs, zs map[string][]float64) (float64, error) { return 0, nil }),
		WithLikelihoodSampler(func(zs map[string][]float64) (map[string][]float64, error) {
			return map[string][]float64{"x": make([]float64, 10)}, nil
		}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	caps := Probe(m)
	if !caps.Has(CapLogLik) || !caps.Has(CapSampleLikelihood) {
		t.Fatalf("wired capabilities missing: %v", caps.Names())
	}
	if caps.Has(CapPredict) || caps.Has(CapSamplePrior) {
		t.Fatalf("unwired capabilities reported: %v", caps.Names())
	}
}

func TestNumericSampleLikelihoodShapeContract(t *testing.T) {
	m, err := NewNumeric(betaBernoulli,
		WithLikelihoodSampler(func(zs map[string][]float64) (map[string][]float64, error) {
			return map[string][]float64{"x": make([]float64, 10)}, nil
		}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	rep, err := SampleLikelihood(m, binding.New().With("p", binding.Scalar(0.5)))
	if err != nil {
		t.Fatalf("sample likelihood: %v", err)
	}
	obs := coinData()
	if got, want := rep.Keys(), obs.Keys(); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("replicate keys %v, want %v", got, want)
	}
	rv, _ := rep.Get("x")
	ov, _ := obs.Get("x")
	if !rv.SameShape(ov) {
		t.Fatalf("replicate shape %v, want %v", rv.Shape(), ov.Shape())
	}
}

func TestNumericNilCallback(t *testing.T) {
	_, err := NewNumeric(nil)
	if !IsConstructionFailed(err) {
		t.Fatalf("expected construction failure, got %v", err)
	}
}

func TestNumericBoundaryCopies(t *testing.T) {
	var seen []float64
	m, err := NewNumeric(func(xs, zs map[string][]float64) (float64, error) {
		seen = xs["x"]
		seen[0] = 42 // mutating the copy must not reach the binding
		return 0, nil
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	xs := binding.New().With("x", binding.Vector([]float64{1, 2}))
	if _, err := m.LogProb(xs, binding.New()); err != nil {
		t.Fatalf("log prob: %v", err)
	}
	v, _ := xs.Get("x")
	if v.Data()[0] != 1 {
		t.Fatalf("callback mutation leaked into binding")
	}
}
