package exposan

import "fmt"

// Metric is a named scalar read off a simulated flowsheet (or its
// economic/impact overlays) after a successful simulation.
type Metric struct {
	Name    string
	Units   string
	Element string
	Get     func() (float64, error)
}

// Scenario binds one flowsheet instance to its parameter registry and
// metric registry. A Scenario is single-threaded: concurrent evaluation
// uses one Scenario per worker, each built by the Model's Setup factory.
type Scenario struct {
	Sys     *System
	Params  []*Parameter
	Metrics []*Metric

	nests [][]int
}

// Param adds an uncertain input; registration order is application order.
func (sc *Scenario) Param(p *Parameter) *Parameter {
	sc.Params = append(sc.Params, p)
	return p
}

// Nest constrains a group of registered parameters to ordered joint
// draws: their hypercube coordinates are nested before the quantile
// mapping, so simplex-bounded fraction pairs (e.g. sludge lipid and
// protein) cannot jointly exceed their budget.
func (sc *Scenario) Nest(ps ...*Parameter) {
	idx := make([]int, 0, len(ps))
	for _, p := range ps {
		for i, q := range sc.Params {
			if p == q {
				idx = append(idx, i)
			}
		}
	}
	if len(idx) > 1 {
		sc.nests = append(sc.nests, idx)
	}
}

// Metric adds a named output.
func (sc *Scenario) Metric(m *Metric) *Metric {
	sc.Metrics = append(sc.Metrics, m)
	return m
}

// ParamNames returns parameter names in registration order.
func (sc *Scenario) ParamNames() []string {
	out := make([]string, len(sc.Params))
	for i, p := range sc.Params {
		out[i] = fmt.Sprintf("%s %s [%s]", p.Element, p.Name, p.Units)
	}
	return out
}

// MetricNames returns metric names in registration order.
func (sc *Scenario) MetricNames() []string {
	out := make([]string, len(sc.Metrics))
	for i, m := range sc.Metrics {
		out[i] = fmt.Sprintf("%s %s [%s]", m.Element, m.Name, m.Units)
	}
	return out
}

// Model is a reproducible scenario factory. Setup must return a fully
// wired, independent Scenario on every call so that samples can be
// farmed out across workers without shared mutable state.
type Model struct {
	Name  string
	Setup func() (*Scenario, error)
}
