package exposan

import (
	"math"

	"github.com/maseology/montecarlo/jointdist"
)

// Evaluate runs one sample: hypercube coordinates are mapped through
// each parameter's distribution, applied in registration order, the
// flowsheet is simulated and every metric read. A failed simulation (or
// a non-finite metric) yields a row of NaNs and ok=false; the sample is
// recorded, never silently dropped.
func (sc *Scenario) Evaluate(u []float64) (vals, metrics []float64, ok bool) {
	if len(sc.nests) > 0 {
		u = append([]float64{}, u...)
		for _, g := range sc.nests {
			coords := make([]float64, len(g))
			for i, j := range g {
				coords[i] = u[j]
			}
			for i, v := range jointdist.Nested(coords...) {
				u[g[i]] = v
			}
		}
	}
	vals = make([]float64, len(sc.Params))
	for i, p := range sc.Params {
		vals[i] = p.Value(u[i])
		p.Set(vals[i])
	}
	metrics = sc.failRow()
	if err := sc.Sys.Simulate(); err != nil {
		return vals, metrics, false
	}
	for i, m := range sc.Metrics {
		v, err := m.Get()
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return vals, sc.failRow(), false
		}
		metrics[i] = v
	}
	return vals, metrics, true
}

// Baseline applies every parameter's baseline, simulates and reads the
// metrics: the deterministic point estimate.
func (sc *Scenario) Baseline() ([]float64, error) {
	for _, p := range sc.Params {
		p.Set(p.Baseline)
	}
	if err := sc.Sys.Simulate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(sc.Metrics))
	for i, m := range sc.Metrics {
		v, err := m.Get()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (sc *Scenario) failRow() []float64 {
	r := make([]float64, len(sc.Metrics))
	for i := range r {
		r[i] = math.NaN()
	}
	return r
}
