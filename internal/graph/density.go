package graph

import "math"

const logTwoPi = 1.8378770664093453

// NormalLogPDF composes the log density of x under Normal(mu, sigma) from
// graph primitives, so gradients flow to all three arguments.
func (g *Graph) NormalLogPDF(x, mu, sigma *Node) *Node {
	resid := g.Div(g.Sub(x, mu), sigma)
	quad := g.Mul(g.Const(-0.5), g.Square(resid))
	return g.Sub(g.Sub(quad, g.Log(sigma)), g.Const(0.5*logTwoPi))
}

// BernoulliLogPDF composes x*log(p) + (1-x)*log(1-p). x is expected to be
// an observed 0/1 value; gradients flow to p.
func (g *Graph) BernoulliLogPDF(x, p *Node) *Node {
	hit := g.Mul(x, g.Log(p))
	miss := g.Mul(g.Sub(g.Const(1), x), g.Log(g.Sub(g.Const(1), p)))
	return g.Add(hit, miss)
}

// BetaLogPDF composes the log density of p under Beta(alpha, beta) with
// constant shape parameters. The normalizer is a constant, so it is
// computed directly rather than through graph nodes.
func (g *Graph) BetaLogPDF(p *Node, alpha, beta float64) *Node {
	la, _ := math.Lgamma(alpha)
	lb, _ := math.Lgamma(beta)
	lab, _ := math.Lgamma(alpha + beta)
	norm := lab - la - lb
	a := g.Mul(g.Const(alpha-1), g.Log(p))
	b := g.Mul(g.Const(beta-1), g.Log(g.Sub(g.Const(1), p)))
	return g.Add(g.Add(a, b), g.Const(norm))
}
