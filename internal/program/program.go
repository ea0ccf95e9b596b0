// Package program compiles and evaluates declarative model files. A program
// declares its observed data (with fixed sizes), its parameters, and a model
// block of `target ~ dist(args...)` statements. The compiled form evaluates
// the log joint density, the likelihood term alone, and draws ancestral
// samples; everything is computed in log space.
package program

import (
	"fmt"
	"math/rand/v2"

	"latentd/internal/dist"
)

// Program is a compiled model file. It is immutable after Compile and safe
// for concurrent density evaluation; sampling uses the caller's source.
type Program struct {
	data   []DataDecl
	params []string
	stmts  []SampleStmt

	isParam map[string]bool
	dataLen map[string]int
}

// Compile parses and validates source. Any failure is a compile error
// carrying the offending line.
func Compile(source string) (*Program, error) {
	tree, err := newParser(source).parse()
	if err != nil {
		return nil, err
	}
	p := &Program{
		data:    tree.data,
		params:  tree.params,
		stmts:   tree.stmts,
		isParam: make(map[string]bool, len(tree.params)),
		dataLen: make(map[string]int, len(tree.data)),
	}
	for _, d := range tree.data {
		if _, dup := p.dataLen[d.Name]; dup {
			return nil, ErrCompile(1, "duplicate data declaration: "+d.Name)
		}
		p.dataLen[d.Name] = d.Len
	}
	for _, name := range tree.params {
		if p.isParam[name] {
			return nil, ErrCompile(1, "duplicate parameter declaration: "+name)
		}
		if _, isData := p.dataLen[name]; isData {
			return nil, ErrCompile(1, "name declared as both data and parameter: "+name)
		}
		p.isParam[name] = true
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

// check validates the model block: every declared name is sampled exactly
// once, distributions exist with the right arity, and parameter priors
// appear before any statement that references them.
func (p *Program) check() error {
	sampled := make(map[string]bool, len(p.stmts))
	priorSeen := make(map[string]bool, len(p.params))
	for _, s := range p.stmts {
		_, isData := p.dataLen[s.Target]
		if !isData && !p.isParam[s.Target] {
			return ErrCompile(s.Line, "statement target not declared: "+s.Target)
		}
		if sampled[s.Target] {
			return ErrCompile(s.Line, "variable sampled twice: "+s.Target)
		}
		sampled[s.Target] = true
		if !dist.Supported(s.Dist) {
			return ErrCompile(s.Line, "unknown distribution: "+s.Dist)
		}
		if want := dist.Arity(s.Dist); len(s.Args) != want {
			return ErrCompile(s.Line, fmt.Sprintf("distribution %s takes %d parameters, got %d", s.Dist, want, len(s.Args)))
		}
		for _, a := range s.Args {
			if !a.IsRef {
				continue
			}
			if !p.isParam[a.Ref] {
				return ErrCompile(s.Line, "argument references undeclared parameter: "+a.Ref)
			}
			if !isData && !priorSeen[a.Ref] {
				return ErrCompile(s.Line, "parameter used before its prior: "+a.Ref)
			}
		}
		if !isData {
			priorSeen[s.Target] = true
		}
	}
	for _, d := range p.data {
		if !sampled[d.Name] {
			return ErrCompile(1, "data variable has no likelihood statement: "+d.Name)
		}
	}
	for _, name := range p.params {
		if !sampled[name] {
			return ErrCompile(1, "parameter has no prior statement: "+name)
		}
	}
	return nil
}

// DataDecls returns the declared observed variables.
func (p *Program) DataDecls() []DataDecl { return append([]DataDecl(nil), p.data...) }

// Params returns the declared parameter names.
func (p *Program) Params() []string { return append([]string(nil), p.params...) }

// DataLen returns the declared element count for a data variable; 0 means
// scalar, -1 means not declared.
func (p *Program) DataLen(name string) int {
	n, ok := p.dataLen[name]
	if !ok {
		return -1
	}
	return n
}

func (p *Program) resolveArgs(s SampleStmt, params map[string]float64) ([]float64, error) {
	args := make([]float64, len(s.Args))
	for i, a := range s.Args {
		if !a.IsRef {
			args[i] = a.Lit
			continue
		}
		v, ok := params[a.Ref]
		if !ok {
			return nil, fmt.Errorf("parameter %s not bound", a.Ref)
		}
		args[i] = v
	}
	return args, nil
}

func (p *Program) stmtDist(s SampleStmt, params map[string]float64, src rand.Source) (dist.Dist, error) {
	args, err := p.resolveArgs(s, params)
	if err != nil {
		return nil, err
	}
	return dist.New(s.Dist, args, src)
}

// LogJoint evaluates log p(data, params): the sum of every statement's log
// density, with data statements summed over their elements.
func (p *Program) LogJoint(data map[string][]float64, params map[string]float64) (float64, error) {
	total, err := p.logPrior(params)
	if err != nil {
		return 0, err
	}
	lik, err := p.LogLik(data, params)
	if err != nil {
		return 0, err
	}
	return total + lik, nil
}

// LogLik evaluates log p(data | params): the data statements only.
func (p *Program) LogLik(data map[string][]float64, params map[string]float64) (float64, error) {
	var total float64
	for _, s := range p.stmts {
		if _, isData := p.dataLen[s.Target]; !isData {
			continue
		}
		d, err := p.stmtDist(s, params, nil)
		if err != nil {
			return 0, err
		}
		obs, ok := data[s.Target]
		if !ok {
			return 0, fmt.Errorf("data variable %s not bound", s.Target)
		}
		for _, x := range obs {
			total += d.LogProb(x)
		}
	}
	return total, nil
}

func (p *Program) logPrior(params map[string]float64) (float64, error) {
	var total float64
	for _, s := range p.stmts {
		if _, isData := p.dataLen[s.Target]; isData {
			continue
		}
		d, err := p.stmtDist(s, params, nil)
		if err != nil {
			return 0, err
		}
		v, ok := params[s.Target]
		if !ok {
			return 0, fmt.Errorf("parameter %s not bound", s.Target)
		}
		total += d.LogProb(v)
	}
	return total, nil
}

// SamplePrior draws one realization of every parameter by ancestral
// sampling in statement order.
func (p *Program) SamplePrior(src rand.Source) (map[string]float64, error) {
	params := make(map[string]float64, len(p.params))
	for _, s := range p.stmts {
		if _, isData := p.dataLen[s.Target]; isData {
			continue
		}
		d, err := p.stmtDist(s, params, src)
		if err != nil {
			return nil, err
		}
		params[s.Target] = d.Rand()
	}
	return params, nil
}

// SampleData draws one replicated data set from the likelihood given fixed
// parameters. Each data variable gets exactly its declared element count.
func (p *Program) SampleData(params map[string]float64, src rand.Source) (map[string][]float64, error) {
	out := make(map[string][]float64, len(p.data))
	for _, s := range p.stmts {
		n, isData := p.dataLen[s.Target]
		if !isData {
			continue
		}
		d, err := p.stmtDist(s, params, src)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			n = 1
		}
		draws := make([]float64, n)
		for i := range draws {
			draws[i] = d.Rand()
		}
		out[s.Target] = draws
	}
	return out, nil
}

// Means returns the likelihood mean for every data variable given fixed
// parameters, replicated to the declared element count.
func (p *Program) Means(params map[string]float64) (map[string][]float64, error) {
	out := make(map[string][]float64, len(p.data))
	for _, s := range p.stmts {
		n, isData := p.dataLen[s.Target]
		if !isData {
			continue
		}
		d, err := p.stmtDist(s, params, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			n = 1
		}
		mean := d.Mean()
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = mean
		}
		out[s.Target] = vals
	}
	return out, nil
}
