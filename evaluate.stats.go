package exposan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PercentileLevels are the quantiles reported for every metric.
var PercentileLevels = []float64{0., .05, .25, .5, .75, .95, 1.}

// Percentiles returns the PercentileLevels of each metric column,
// ignoring failed (NaN) rows. Result is [metric][level].
func (t *Table) Percentiles() [][]float64 {
	out := make([][]float64, len(t.MetricNames))
	for j := range t.MetricNames {
		col := t.MetricColumn(j)
		sort.Float64s(col)
		q := make([]float64, len(PercentileLevels))
		for i, lv := range PercentileLevels {
			if len(col) == 0 {
				q[i] = math.NaN()
			} else {
				q[i] = stat.Quantile(lv, stat.Empirical, col, nil)
			}
		}
		out[j] = q
	}
	return out
}

// Spearman returns rank correlations between every parameter and every
// metric, [param][metric], with the two-sided p-value of the t
// approximation alongside. Failed rows are excluded pairwise.
func (t *Table) Spearman() (rho, pval [][]float64) {
	np, nm := len(t.ParamNames), len(t.MetricNames)
	rho = make([][]float64, np)
	pval = make([][]float64, np)
	for i := 0; i < np; i++ {
		rho[i] = make([]float64, nm)
		pval[i] = make([]float64, nm)
		for j := 0; j < nm; j++ {
			var xs, ys []float64
			for k := range t.Params {
				if math.IsNaN(t.Metrics[k][j]) {
					continue
				}
				xs = append(xs, t.Params[k][i])
				ys = append(ys, t.Metrics[k][j])
			}
			rho[i][j], pval[i][j] = spearman(xs, ys)
		}
	}
	return
}

func spearman(x, y []float64) (rho, p float64) {
	n := len(x)
	if n < 3 {
		return math.NaN(), math.NaN()
	}
	r := stat.Correlation(ranks(x), ranks(y), nil)
	// t approximation for the null distribution
	if math.Abs(r) >= 1. {
		return r, 0.
	}
	tv := r * math.Sqrt(float64(n-2)/(1.-r*r))
	td := distuv.StudentsT{Mu: 0., Sigma: 1., Nu: float64(n - 2)}
	return r, 2. * td.Survival(math.Abs(tv))
}

// ranks returns fractional (midrank) ranks.
func ranks(x []float64) []float64 {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	r := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		mid := float64(i+j)/2. + 1.
		for k := i; k <= j; k++ {
			r[idx[k]] = mid
		}
		i = j + 1
	}
	return r
}
