package program

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

const coinModel = `
// Beta-Bernoulli coin flip model.
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

func TestCompileCoinModel(t *testing.T) {
	prog, err := Compile(coinModel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	decls := prog.DataDecls()
	if len(decls) != 1 || decls[0].Name != "x" || decls[0].Len != 10 {
		t.Fatalf("unexpected data decls: %+v", decls)
	}
	if params := prog.Params(); len(params) != 1 || params[0] != "p" {
		t.Fatalf("unexpected params: %v", params)
	}
}

func TestLogJointClosedForm(t *testing.T) {
	prog, err := Compile(coinModel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	data := map[string][]float64{"x": {0, 1, 0, 0, 0, 0, 0, 0, 0, 1}}
	params := map[string]float64{"p": 0.5}
	got, err := prog.LogJoint(data, params)
	if err != nil {
		t.Fatalf("log joint: %v", err)
	}
	want := 10 * math.Log(0.5) // flat prior contributes 0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("log joint = %v, want %v", got, want)
	}
	lik, err := prog.LogLik(data, params)
	if err != nil {
		t.Fatalf("log lik: %v", err)
	}
	if math.Abs(lik-want) > 1e-9 {
		t.Fatalf("log lik = %v, want %v", lik, want)
	}
}

func TestLogJointDeterministic(t *testing.T) {
	prog, err := Compile(coinModel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	data := map[string][]float64{"x": {1, 0, 1, 1, 0, 0, 0, 1, 0, 1}}
	params := map[string]float64{"p": 0.3}
	first, err := prog.LogJoint(data, params)
	if err != nil {
		t.Fatalf("log joint: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := prog.LogJoint(data, params)
		if err != nil {
			t.Fatalf("log joint: %v", err)
		}
		if again != first {
			t.Fatalf("evaluation not deterministic: %v vs %v", again, first)
		}
	}
}

func TestSamplePriorAndData(t *testing.T) {
	prog, err := Compile(coinModel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	src := rand.NewPCG(1, 2)
	params, err := prog.SamplePrior(src)
	if err != nil {
		t.Fatalf("sample prior: %v", err)
	}
	p, ok := params["p"]
	if !ok || p < 0 || p > 1 {
		t.Fatalf("prior draw out of support: %v", params)
	}
	data, err := prog.SampleData(params, src)
	if err != nil {
		t.Fatalf("sample data: %v", err)
	}
	if len(data["x"]) != 10 {
		t.Fatalf("replicated data has %d elements, want 10", len(data["x"]))
	}
	for _, v := range data["x"] {
		if v != 0 && v != 1 {
			t.Fatalf("bernoulli draw out of support: %v", v)
		}
	}
}

func TestMeans(t *testing.T) {
	prog, err := Compile(coinModel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	means, err := prog.Means(map[string]float64{"p": 0.25})
	if err != nil {
		t.Fatalf("means: %v", err)
	}
	if len(means["x"]) != 10 || means["x"][0] != 0.25 {
		t.Fatalf("unexpected means: %v", means)
	}
}

func TestHierarchicalOrdering(t *testing.T) {
	src := `
data {
	y[5];
}
params {
	mu;
	sigma;
}
model {
	mu ~ normal(0, 10);
	sigma ~ gamma(2, 2);
	y ~ normal(mu, sigma);
}
`
	if _, err := Compile(src); err != nil {
		t.Fatalf("compile: %v", err)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		substr string
	}{
		{"missing block", "data { x[3]; }", "expected \"params\" block"},
		{"unknown dist", strings.Replace(coinModel, "bernoulli", "weibull", 1), "unknown distribution"},
		{"bad arity", strings.Replace(coinModel, "beta(1, 1)", "beta(1)", 1), "takes 2 parameters"},
		{"undeclared target", strings.Replace(coinModel, "p ~", "q ~", 1), "not declared"},
		{"use before prior", `
data { y[2]; }
params { mu; sigma; }
model {
	mu ~ normal(0, sigma);
	sigma ~ gamma(2, 2);
	y ~ normal(mu, sigma);
}
`, "before its prior"},
		{"missing prior", `
data { x[2]; }
params { p; }
model {
	x ~ bernoulli(0.5);
}
`, "no prior statement"},
		{"garbage", "noise noise noise", "expected"},
	}
	for _, tc := range cases {
		_, err := Compile(tc.source)
		if err == nil {
			t.Fatalf("%s: expected compile error", tc.name)
		}
		if !IsCompile(err) {
			t.Fatalf("%s: error is not a compile error: %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.substr) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.substr)
		}
	}
}

func TestNegativeLiteralArgs(t *testing.T) {
	src := `
data { y[3]; }
params { mu; }
model {
	mu ~ normal(-5, 2);
	y ~ normal(mu, 1);
}
`
	prog, err := Compile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := prog.LogJoint(map[string][]float64{"y": {0, 0, 0}}, map[string]float64{"mu": -5}); err != nil {
		t.Fatalf("log joint: %v", err)
	}
}
