package ctl

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const coinProgram = `
data { x[4]; }
params { p; }
model {
  p ~ beta(1, 1);
  x ~ bernoulli(p);
}
`

func writeProgram(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "coin.model")
	if err := os.WriteFile(p, []byte(coinProgram), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	return p
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := buildRootCmd(&Config{}, &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEvalLogProb(t *testing.T) {
	p := writeProgram(t)
	out, err := runCmd(t, "eval", p, "--data", "x=1,0,1,0", "--latent", "p=0.5")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	// Beta(1,1) prior contributes 0; 4 Bernoulli(0.5) terms contribute 4*log(0.5).
	want := 4 * math.Log(0.5)
	got, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		t.Fatalf("parse output %q: %v", out, err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvalLogLikMatchesLogProbForFlatPrior(t *testing.T) {
	p := writeProgram(t)
	joint, err := runCmd(t, "eval", p, "--data", "x=1,1,0,0", "--latent", "p=0.3")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	lik, err := runCmd(t, "eval", p, "--loglik", "--data", "x=1,1,0,0", "--latent", "p=0.3")
	if err != nil {
		t.Fatalf("eval --loglik: %v", err)
	}
	if joint != lik {
		t.Fatalf("beta(1,1) prior should contribute zero: joint=%s lik=%s", joint, lik)
	}
}

func TestEvalPartialDataFails(t *testing.T) {
	p := writeProgram(t)
	if _, err := runCmd(t, "eval", p, "--data", "x=1,0", "--latent", "p=0.5"); err == nil {
		t.Fatalf("expected partial-data error")
	}
}

func TestCapsListsAll(t *testing.T) {
	p := writeProgram(t)
	out, err := runCmd(t, "caps", p)
	if err != nil {
		t.Fatalf("caps: %v", err)
	}
	for _, want := range []string{"LOG_LIK", "PREDICT", "SAMPLE_LIKELIHOOD", "SAMPLE_PRIOR"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %q", want, out)
		}
	}
}

func TestModelsListsDirectory(t *testing.T) {
	p := writeProgram(t)
	out, err := runCmd(t, "models", filepath.Dir(p))
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	if !strings.Contains(out, "coin.model") {
		t.Fatalf("missing coin.model in %q", out)
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	p := writeProgram(t)
	a, err := runCmd(t, "sample", p, "--seed", "7")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := runCmd(t, "sample", p, "--seed", "7")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if a != b {
		t.Fatalf("same seed produced different samples:\n%s\n%s", a, b)
	}
}

func TestSampleLikelihoodShape(t *testing.T) {
	p := writeProgram(t)
	out, err := runCmd(t, "sample", p, "--latent", "p=0.5")
	if err != nil {
		t.Fatalf("sample --latent: %v", err)
	}
	if !strings.Contains(out, `"x"`) {
		t.Fatalf("expected x in output: %q", out)
	}
}

func TestEvalMissingFile(t *testing.T) {
	if _, err := runCmd(t, "eval", filepath.Join(t.TempDir(), "nope.model")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseAssign(t *testing.T) {
	name, vals, err := parseAssign("x=1,2.5,-3")
	if err != nil {
		t.Fatalf("parseAssign: %v", err)
	}
	if name != "x" || len(vals) != 3 || vals[2] != -3 {
		t.Fatalf("got %q %v", name, vals)
	}
	for _, bad := range []string{"x", "=1", "x=", "x=a", "x=1,,2"} {
		if _, _, err := parseAssign(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseBindingDuplicate(t *testing.T) {
	if _, err := parseBinding([]string{"p=0.5", "p=0.6"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
