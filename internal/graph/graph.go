// Package graph is a small define-by-run scalar computation graph with
// reverse-mode gradients. The native adapter rebuilds a graph per
// evaluation: leaves are fed from variable bindings, the builder composes a
// scalar log-density node, and Backward makes gradients with respect to the
// leaves available to gradient-based inference.
package graph

import "math"

// Node is one scalar value in the graph. Values are computed eagerly at
// construction; gradients are populated by Graph.Backward.
type Node struct {
	value    float64
	grad     float64
	backward func(out *Node)
}

// Value returns the scalar computed for this node.
func (n *Node) Value() float64 { return n.value }

// Grad returns d(root)/d(n) after a Backward pass from root.
func (n *Node) Grad() float64 { return n.grad }

// Graph records nodes in construction order, which is also a valid
// topological order for the backward sweep.
type Graph struct {
	nodes []*Node
}

// New returns an empty graph.
func New() *Graph { return &Graph{} }

func (g *Graph) add(n *Node) *Node {
	g.nodes = append(g.nodes, n)
	return n
}

// Leaf introduces a tracked input node. Gradients flow into leaves.
func (g *Graph) Leaf(v float64) *Node {
	return g.add(&Node{value: v})
}

// Const introduces an untracked constant. It participates in values but
// receives no gradient of interest.
func (g *Graph) Const(v float64) *Node {
	return g.add(&Node{value: v})
}

// Add returns a+b.
func (g *Graph) Add(a, b *Node) *Node {
	return g.add(&Node{
		value: a.value + b.value,
		backward: func(out *Node) {
			a.grad += out.grad
			b.grad += out.grad
		},
	})
}

// Sub returns a-b.
func (g *Graph) Sub(a, b *Node) *Node {
	return g.add(&Node{
		value: a.value - b.value,
		backward: func(out *Node) {
			a.grad += out.grad
			b.grad -= out.grad
		},
	})
}

// Mul returns a*b.
func (g *Graph) Mul(a, b *Node) *Node {
	return g.add(&Node{
		value: a.value * b.value,
		backward: func(out *Node) {
			a.grad += out.grad * b.value
			b.grad += out.grad * a.value
		},
	})
}

// Div returns a/b.
func (g *Graph) Div(a, b *Node) *Node {
	return g.add(&Node{
		value: a.value / b.value,
		backward: func(out *Node) {
			a.grad += out.grad / b.value
			b.grad -= out.grad * a.value / (b.value * b.value)
		},
	})
}

// Neg returns -a.
func (g *Graph) Neg(a *Node) *Node {
	return g.add(&Node{
		value: -a.value,
		backward: func(out *Node) {
			a.grad -= out.grad
		},
	})
}

// Log returns ln(a).
func (g *Graph) Log(a *Node) *Node {
	return g.add(&Node{
		value: math.Log(a.value),
		backward: func(out *Node) {
			a.grad += out.grad / a.value
		},
	})
}

// Exp returns e^a.
func (g *Graph) Exp(a *Node) *Node {
	v := math.Exp(a.value)
	return g.add(&Node{
		value: v,
		backward: func(out *Node) {
			a.grad += out.grad * v
		},
	})
}

// Square returns a*a.
func (g *Graph) Square(a *Node) *Node {
	return g.add(&Node{
		value: a.value * a.value,
		backward: func(out *Node) {
			a.grad += out.grad * 2 * a.value
		},
	})
}

// Sum folds a slice of nodes into their total. An empty slice sums to zero.
func (g *Graph) Sum(xs []*Node) *Node {
	return g.add(&Node{
		value: sumValues(xs),
		backward: func(out *Node) {
			for _, x := range xs {
				x.grad += out.grad
			}
		},
	})
}

func sumValues(xs []*Node) float64 {
	var total float64
	for _, x := range xs {
		total += x.value
	}
	return total
}

// Backward seeds root with gradient 1 and sweeps the graph in reverse
// construction order, accumulating gradients into every ancestor.
func (g *Graph) Backward(root *Node) {
	for _, n := range g.nodes {
		n.grad = 0
	}
	root.grad = 1
	for i := len(g.nodes) - 1; i >= 0; i-- {
		n := g.nodes[i]
		if n.backward != nil && n.grad != 0 {
			n.backward(n)
		}
	}
}
