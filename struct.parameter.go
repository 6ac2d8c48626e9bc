package exposan

import (
	"log"
	"math"

	"github.com/maseology/montecarlo/invdistr"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution maps a hypercube coordinate u in [0,1) to a parameter
// value through an inverse CDF.
type Distribution interface {
	Quantile(u float64) float64
}

type invMap struct{ m *invdistr.Map }

func (d invMap) Quantile(u float64) float64 { return d.m.P(u) }

// Uniform returns a uniform distribution on [l, h].
func Uniform(l, h float64) Distribution {
	if l > h {
		log.Panicf("Uniform: invalid bounds %v, %v", l, h)
	}
	return invMap{&invdistr.Map{Low: l, High: h, Log: false, Distr: &invdistr.Uniform{}}}
}

// LogUniform returns a log10-uniform distribution on [l, h], l > 0.
func LogUniform(l, h float64) Distribution {
	if l > h || l <= 0. {
		log.Panicf("LogUniform: invalid bounds %v, %v", l, h)
	}
	return invMap{&invdistr.Map{Low: math.Log10(l), High: math.Log10(h), Log: true, Distr: &invdistr.Uniform{}}}
}

// Triangle returns a triangular distribution on [l, h] with mode m.
func Triangle(l, m, h float64) Distribution {
	if l > m || m > h {
		log.Panicf("Triangle: invalid arguments l, m, h = %v, %v, %v", l, m, h)
	}
	return invMap{&invdistr.Map{Low: l, High: h, Log: false, Distr: invdistr.NewTriangle((m - l) / (h - l))}}
}

// Trapezoid returns a trapezoidal distribution on [l, h] with plateau [m, n].
func Trapezoid(l, m, n, h float64) Distribution {
	if l > m || m > n || n > h {
		log.Panicf("Trapezoid: invalid arguments l, m, n, h = %v, %v, %v, %v", l, m, n, h)
	}
	return invMap{&invdistr.Map{
		Low: l, High: h, Log: false,
		Distr: invdistr.NewTrapezoid((m-l)/(h-l), (n-l)/(h-l), 2., 2.),
	}}
}

type normal struct{ d distuv.Normal }

func (n normal) Quantile(u float64) float64 {
	// keep LHC edge strata finite
	if u < 1e-9 {
		u = 1e-9
	} else if u > 1.-1e-9 {
		u = 1. - 1e-9
	}
	return n.d.Quantile(u)
}

// Normal returns a normal distribution with mean mu and standard deviation sd.
func Normal(mu, sd float64) Distribution {
	if sd <= 0. {
		log.Panicf("Normal: invalid standard deviation %v", sd)
	}
	return normal{distuv.Normal{Mu: mu, Sigma: sd}}
}

// Parameter is a named uncertain input: a baseline value, a sampling
// distribution, and a setter that mutates exactly one attribute of one
// model element. Setters are applied in registration order every
// evaluation; applying every Baseline must reproduce the model's
// published baseline results.
type Parameter struct {
	Name     string
	Element  string // unit ID or overlay tag ("TEA", "LCA")
	Units    string
	Baseline float64
	Dist     Distribution
	Set      func(v float64)
}

// Value maps a hypercube coordinate to this parameter's value.
func (p *Parameter) Value(u float64) float64 { return p.Dist.Quantile(u) }
