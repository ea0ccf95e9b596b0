package adapter

import (
	"errors"

	"latentd/internal/binding"
	"latentd/internal/graph"
)

// Builder constructs the scalar log-density node for one evaluation. The
// adapter feeds one graph leaf per element of each bound variable; the
// builder composes them into log p(xs, zs) using graph primitives only, so
// the whole computation stays in log space and remains differentiable.
type Builder func(g *graph.Graph, xs, zs map[string][]*graph.Node) (*graph.Node, error)

// Native delegates density evaluation to the computation-graph evaluator.
// This is the preferred variant: beyond the Model contract it exposes
// gradients with respect to latent leaves through LogProbGrad, which
// gradient-based inference consumes directly.
type Native struct {
	build     Builder
	lik       Builder
	predict   func(xs, zs binding.Binding) (binding.Binding, error)
	prior     func() (binding.Binding, error)
	sampleLik func(zs binding.Binding) (binding.Binding, error)
}

// NativeOption wires one optional operation at construction time.
type NativeOption func(*Native)

// WithNativeLogLik wires a likelihood-only builder for LOG_LIK.
func WithNativeLogLik(b Builder) NativeOption {
	return func(n *Native) { n.lik = b }
}

// WithNativePredictor wires the PREDICT operation.
func WithNativePredictor(fn func(xs, zs binding.Binding) (binding.Binding, error)) NativeOption {
	return func(n *Native) { n.predict = fn }
}

// WithNativePrior wires the SAMPLE_PRIOR operation.
func WithNativePrior(fn func() (binding.Binding, error)) NativeOption {
	return func(n *Native) { n.prior = fn }
}

// WithNativeLikelihoodSampler wires the SAMPLE_LIKELIHOOD operation.
func WithNativeLikelihoodSampler(fn func(zs binding.Binding) (binding.Binding, error)) NativeOption {
	return func(n *Native) { n.sampleLik = fn }
}

// NewNative constructs a native adapter around the required joint-density
// builder.
func NewNative(build Builder, opts ...NativeOption) (*Native, error) {
	if build == nil {
		return nil, ErrConstructionFailed("native", errors.New("nil density builder"))
	}
	n := &Native{build: build}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// DeclaredCapabilities reports the operations wired at construction.
func (n *Native) DeclaredCapabilities() CapabilitySet {
	caps := CapabilitySet{}
	if n.lik != nil {
		caps[CapLogLik] = true
	}
	if n.predict != nil {
		caps[CapPredict] = true
	}
	if n.prior != nil {
		caps[CapSamplePrior] = true
	}
	if n.sampleLik != nil {
		caps[CapSampleLikelihood] = true
	}
	return caps
}

// SupportsSubsampling is true: the graph is rebuilt per call over whatever
// data binding is supplied.
func (n *Native) SupportsSubsampling() bool { return true }

// feed turns a binding into one tracked leaf per element.
func feed(g *graph.Graph, b binding.Binding) map[string][]*graph.Node {
	out := make(map[string][]*graph.Node, b.Len())
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		data := v.Data()
		leaves := make([]*graph.Node, len(data))
		for i, x := range data {
			leaves[i] = g.Leaf(x)
		}
		out[k] = leaves
	}
	return out
}

func (n *Native) run(b Builder, xs, zs binding.Binding) (*graph.Graph, *graph.Node, map[string][]*graph.Node, error) {
	g := graph.New()
	xleaves := feed(g, xs)
	zleaves := feed(g, zs)
	root, err := b(g, xleaves, zleaves)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, root, zleaves, nil
}

// LogProb implements Model by a forward pass over a freshly built graph.
func (n *Native) LogProb(xs, zs binding.Binding) (float64, error) {
	_, root, _, err := n.run(n.build, xs, zs)
	if err != nil {
		return 0, err
	}
	return root.Value(), nil
}

// LogProbGrad evaluates the log joint and its gradient with respect to
// every latent element. This is the richer surface outside the Model
// contract; only the native variant has it.
func (n *Native) LogProbGrad(xs, zs binding.Binding) (float64, binding.Binding, error) {
	g, root, zleaves, err := n.run(n.build, xs, zs)
	if err != nil {
		return 0, binding.Binding{}, err
	}
	g.Backward(root)
	grads := binding.New()
	for name, leaves := range zleaves {
		gv := make([]float64, len(leaves))
		for i, leaf := range leaves {
			gv[i] = leaf.Grad()
		}
		orig, _ := zs.Get(name)
		val, err := binding.NewValue(orig.Shape(), gv)
		if err != nil {
			return 0, binding.Binding{}, err
		}
		grads = grads.With(name, val)
	}
	return root.Value(), grads, nil
}

// LogLik implements LogLiker when a likelihood builder is wired.
func (n *Native) LogLik(xs, zs binding.Binding) (float64, error) {
	if n.lik == nil {
		return 0, ErrUnsupportedOperation(CapLogLik)
	}
	_, root, _, err := n.run(n.lik, xs, zs)
	if err != nil {
		return 0, err
	}
	return root.Value(), nil
}

// Predict implements Predictor when wired.
func (n *Native) Predict(xs, zs binding.Binding) (binding.Binding, error) {
	if n.predict == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapPredict)
	}
	return n.predict(xs, zs)
}

// SamplePrior implements PriorSampler when wired.
func (n *Native) SamplePrior() (binding.Binding, error) {
	if n.prior == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapSamplePrior)
	}
	return n.prior()
}

// SampleLikelihood implements LikelihoodSampler when wired.
func (n *Native) SampleLikelihood(zs binding.Binding) (binding.Binding, error) {
	if n.sampleLik == nil {
		return binding.Binding{}, ErrUnsupportedOperation(CapSampleLikelihood)
	}
	return n.sampleLik(zs)
}
