// Package dist maps distribution names used by model programs and numeric
// callbacks onto gonum's distuv implementations. Everything downstream works
// with log densities only; raw probabilities are never materialized.
package dist

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Dist is the view the evaluators need: log density, mean, and sampling.
type Dist interface {
	LogProb(x float64) float64
	Mean() float64
	Rand() float64
}

// arity maps each supported distribution to its parameter count.
var arity = map[string]int{
	"normal":      2,
	"bernoulli":   1,
	"beta":        2,
	"gamma":       2,
	"uniform":     2,
	"exponential": 1,
	"poisson":     1,
}

// Supported reports whether name is a known distribution.
func Supported(name string) bool {
	_, ok := arity[name]
	return ok
}

// Arity returns the parameter count for name, or -1 when unknown.
func Arity(name string) int {
	n, ok := arity[name]
	if !ok {
		return -1
	}
	return n
}

// New constructs the named distribution. src may be nil, in which case the
// global source is used; evaluation paths that only call LogProb never
// touch the source.
func New(name string, args []float64, src rand.Source) (Dist, error) {
	if n, ok := arity[name]; !ok {
		return nil, ErrUnknownDist(name)
	} else if len(args) != n {
		return nil, ErrBadArity(name, n, len(args))
	}
	switch name {
	case "normal":
		return distuv.Normal{Mu: args[0], Sigma: args[1], Src: src}, nil
	case "bernoulli":
		return distuv.Bernoulli{P: args[0], Src: src}, nil
	case "beta":
		return distuv.Beta{Alpha: args[0], Beta: args[1], Src: src}, nil
	case "gamma":
		return distuv.Gamma{Alpha: args[0], Beta: args[1], Src: src}, nil
	case "uniform":
		return distuv.Uniform{Min: args[0], Max: args[1], Src: src}, nil
	case "exponential":
		return distuv.Exponential{Rate: args[0], Src: src}, nil
	case "poisson":
		return distuv.Poisson{Lambda: args[0], Src: src}, nil
	}
	return nil, ErrUnknownDist(name)
}
