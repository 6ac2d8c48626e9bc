package exposan

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Table holds a completed uncertainty run: one row per sample, sampled
// parameter values alongside the metric values. Failed samples keep
// their parameter values and carry NaN metrics.
type Table struct {
	ParamNames, MetricNames []string
	Params, Metrics         [][]float64 // n rows
	Failures                int
}

// EvaluateLHC draws n Latin-hypercube samples and evaluates them over
// nwrkrs workers, each holding its own Scenario built by m.Setup. Row
// order follows the sampling plan regardless of worker scheduling; the
// same seed always yields the same table.
func (m *Model) EvaluateLHC(n, nwrkrs int, seed int64, smplspaceFP string) (*Table, error) {
	if nwrkrs < 1 {
		nwrkrs = 1
	}
	proto, err := m.Setup()
	if err != nil {
		return nil, fmt.Errorf("model %s setup: %w", m.Name, err)
	}
	p := len(proto.Params)

	// build sampling plan
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	sp := smpln.NewLHC(rng, n, p, false)

	if len(smplspaceFP) > 0 { // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < p; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(smplspaceFP, lns)
	}

	tbl := &Table{
		ParamNames:  proto.ParamNames(),
		MetricNames: proto.MetricNames(),
		Params:      make([][]float64, n),
		Metrics:     make([][]float64, n),
	}

	// a fresh Progress per call: the package-level default cannot be
	// restarted once stopped (its done channel is closed permanently)
	prog := uiprogress.New()
	prog.Start()
	bar := prog.AddBar(n).AppendCompleted().PrependElapsed()

	jobs := make(chan int, nwrkrs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var werr error
	for w := 0; w < nwrkrs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sc, err := m.Setup()
			if err != nil {
				mu.Lock()
				werr = fmt.Errorf("model %s worker setup: %w", m.Name, err)
				mu.Unlock()
				for range jobs {
				}
				return
			}
			ut := make([]float64, p)
			for k := range jobs {
				for j := 0; j < p; j++ {
					ut[j] = sp.U[j][k]
				}
				vals, mets, ok := sc.Evaluate(ut)
				mu.Lock()
				tbl.Params[k] = append([]float64{}, vals...)
				tbl.Metrics[k] = append([]float64{}, mets...)
				if !ok {
					tbl.Failures++
				}
				mu.Unlock()
				bar.Incr()
			}
		}()
	}
	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	prog.Stop()

	if werr != nil {
		return nil, werr
	}
	return tbl, nil
}

// EvaluateSerial runs the sampling plan on a single Scenario, no
// concurrency. Useful for debugging and for dynamic models whose
// per-sample cost dwarfs scheduling overhead.
func (m *Model) EvaluateSerial(n int, seed int64) (*Table, error) {
	return m.EvaluateLHC(n, 1, seed, "")
}

// FailureFraction returns the share of samples that failed.
func (t *Table) FailureFraction() float64 {
	if len(t.Metrics) == 0 {
		return 0.
	}
	return float64(t.Failures) / float64(len(t.Metrics))
}

// MetricColumn extracts column j of the metric block, dropping NaN rows.
func (t *Table) MetricColumn(j int) []float64 {
	out := make([]float64, 0, len(t.Metrics))
	for _, r := range t.Metrics {
		if !math.IsNaN(r[j]) {
			out = append(out, r[j])
		}
	}
	return out
}
