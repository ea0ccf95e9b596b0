package ctl

import (
	"fmt"
	"strconv"
	"strings"

	"latentd/internal/binding"
)

// parseAssign parses one "name=v1,v2,..." binding argument.
func parseAssign(s string) (string, []float64, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("expected name=v1,v2,... got %q", s)
	}
	parts := strings.Split(rest, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", nil, fmt.Errorf("empty value in %q", s)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad value %q in %q", p, s)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

// parseBinding builds a binding from repeated name=values arguments.
// Single values become scalars; multiple values become vectors.
func parseBinding(args []string) (binding.Binding, error) {
	if len(args) == 0 {
		return binding.Binding{}, nil
	}
	b := binding.New()
	for _, a := range args {
		name, vals, err := parseAssign(a)
		if err != nil {
			return binding.Binding{}, err
		}
		if b.Has(name) {
			return binding.Binding{}, fmt.Errorf("duplicate binding for %q", name)
		}
		if len(vals) == 1 {
			b = b.With(name, binding.Scalar(vals[0]))
		} else {
			b = b.With(name, binding.Vector(vals))
		}
	}
	return b, nil
}
