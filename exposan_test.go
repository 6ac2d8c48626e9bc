package exposan

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComponents(t *testing.T) *Components {
	cs, err := NewComponents(
		Component{ID: "Water", Phase: 'l', MW: 18.02, IH: .112},
		Component{ID: "Sludge", Phase: 's', IC: .411, IN: .047, IP: .011, HHV: 22.},
		Component{ID: "Biocrude", Phase: 'l', IC: .77, IN: .04, HHV: 38., LHV: 35.5},
	)
	require.NoError(t, err)
	return cs
}

func TestComponentsDuplicate(t *testing.T) {
	_, err := NewComponents(Component{ID: "A"}, Component{ID: "A"})
	assert.Error(t, err)
	_, err = NewComponents(Component{ID: ""})
	assert.Error(t, err)
}

func TestStreamElemental(t *testing.T) {
	cs := testComponents(t)
	s := NewStream("feed", cs)
	require.NoError(t, s.SetImass("Sludge", 100.))
	require.NoError(t, s.SetImass("Water", 900.))
	assert.InDelta(t, 1000., s.FMass(), 1e-12)
	assert.InDelta(t, 41.1, s.TotalC(), 1e-9)
	assert.InDelta(t, 4.7, s.TotalN(), 1e-9)
	assert.InDelta(t, 1.1, s.TotalP(), 1e-9)
	assert.InDelta(t, 2200., s.HHV(), 1e-9)
	assert.Error(t, s.SetImass("Unobtainium", 1.))
}

// split splits its inlet by a fixed fraction; used to close a toy
// recycle loop below.
type split struct {
	Base
	f float64
}

func newSplit(id string, in, fwd, rec *Stream, f float64) *split {
	b, err := NewBase(id, []*Stream{in}, []*Stream{fwd, rec})
	if err != nil {
		panic(err)
	}
	u := &split{Base: b, f: f}
	u.Claim(u)
	return u
}

func (u *split) Simulate() error {
	in, fwd, rec := u.In(0), u.Out(0), u.Out(1)
	for i, m := range in.Mass {
		fwd.Mass[i] = m * (1. - u.f)
		rec.Mass[i] = m * u.f
	}
	return nil
}

type mixer struct{ Base }

func newMixer(id string, ins []*Stream, out *Stream) *mixer {
	b, err := NewBase(id, ins, []*Stream{out})
	if err != nil {
		panic(err)
	}
	u := &mixer{Base: b}
	u.Claim(u)
	return u
}

func (u *mixer) Simulate() error {
	out := u.Out(0)
	out.Empty()
	for _, in := range u.Ins() {
		out.Mix(in)
	}
	return nil
}

func TestSystemUnwiredInlet(t *testing.T) {
	cs := testComponents(t)
	sys := NewSystem("sys", cs)
	orphan := NewStream("orphan", cs) // never declared a feed
	out := NewStream("out", cs)
	u := newMixer("M1", []*Stream{orphan}, out)
	err := sys.Add(u)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnwiredInlet))
}

func TestSystemDuplicateID(t *testing.T) {
	cs := testComponents(t)
	sys := NewSystem("sys", cs)
	f1, f2 := sys.Feed(NewStream("f1", cs)), sys.Feed(NewStream("f2", cs))
	require.NoError(t, sys.Add(newMixer("M1", []*Stream{f1}, NewStream("o1", cs))))
	err := sys.Add(newMixer("M1", []*Stream{f2}, NewStream("o2", cs)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestRecycleConvergence(t *testing.T) {
	cs := testComponents(t)
	sys := NewSystem("loop", cs)
	feed := sys.Feed(NewStream("feed", cs))
	require.NoError(t, feed.SetImass("Water", 100.))

	rec := sys.Tear(NewStream("recycle", cs))
	mixed := NewStream("mixed", cs)
	fwd := NewStream("fwd", cs)
	sys.MustAdd(
		newMixer("M1", []*Stream{feed, rec}, mixed),
		newSplit("S1", mixed, fwd, rec, .5),
	)
	require.NoError(t, sys.Simulate())
	// steady state: fwd = feed, recycle = feed*f/(1-f)
	assert.InDelta(t, 100., fwd.Imass("Water"), 1e-3)
	assert.InDelta(t, 100., rec.Imass("Water"), 1e-3)
	in, out := sys.MassBalance()
	assert.InDelta(t, in, out, 1e-3)
}

func TestRecycleNonConvergence(t *testing.T) {
	cs := testComponents(t)
	sys := NewSystem("loop", cs)
	sys.MaxRecycleIter = 5
	feed := sys.Feed(NewStream("feed", cs))
	require.NoError(t, feed.SetImass("Water", 100.))

	rec := sys.Tear(NewStream("recycle", cs))
	mixed := NewStream("mixed", cs)
	fwd := NewStream("fwd", cs)
	sys.MustAdd(
		newMixer("M1", []*Stream{feed, rec}, mixed),
		newSplit("S1", mixed, fwd, rec, .99), // gain too close to 1 for 5 sweeps
	)
	err := sys.Simulate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConverged))
}

func TestDistributionQuantiles(t *testing.T) {
	u := Uniform(2., 4.)
	assert.InDelta(t, 3., u.Quantile(.5), 1e-9)
	assert.InDelta(t, 2., u.Quantile(0.), 1e-6)

	tr := Triangle(0., 1., 2.)
	assert.InDelta(t, 1., tr.Quantile(.5), 1e-6)

	lg := LogUniform(1e-3, 1e-1)
	assert.InDelta(t, 1e-2, lg.Quantile(.5), 1e-6)

	nm := Normal(10., 2.)
	assert.InDelta(t, 10., nm.Quantile(.5), 1e-9)
	assert.True(t, nm.Quantile(.975) > 13.5 && nm.Quantile(.975) < 14.5)
	// clamped tails stay finite
	assert.False(t, math.IsInf(nm.Quantile(0.), 0))
	assert.False(t, math.IsInf(nm.Quantile(1.), 0))
}

// toyModel splits a feed; parameter = split fraction, metric = forward
// mass. Metric is an affine function of the parameter, making table
// checks exact.
func toyModel(failAbove float64) *Model {
	return &Model{
		Name: "toy",
		Setup: func() (*Scenario, error) {
			cs, err := NewComponents(Component{ID: "Water"})
			if err != nil {
				return nil, err
			}
			sys := NewSystem("toy", cs)
			feed := sys.Feed(NewStream("feed", cs))
			if err := feed.SetImass("Water", 100.); err != nil {
				return nil, err
			}
			fwd, rec := NewStream("fwd", cs), NewStream("rec", cs)
			sp := newSplit("S1", feed, fwd, rec, .5)
			sys.MustAdd(sp)

			sc := &Scenario{Sys: sys}
			sc.Param(&Parameter{
				Name: "split", Element: "S1", Units: "-",
				Baseline: .5, Dist: Uniform(.1, .9),
				Set: func(v float64) { sp.f = v },
			})
			sc.Metric(&Metric{
				Name: "forward", Units: "kg/h", Element: "S1",
				Get: func() (float64, error) {
					if sp.f > failAbove {
						return 0., fmt.Errorf("unstable split")
					}
					return fwd.FMass(), nil
				},
			})
			return sc, nil
		},
	}
}

func TestScenarioBaseline(t *testing.T) {
	sc, err := toyModel(1.).Setup()
	require.NoError(t, err)
	base, err := sc.Baseline()
	require.NoError(t, err)
	require.Len(t, base, 1)
	assert.InDelta(t, 50., base[0], 1e-9)
}

func TestEvaluateLHCDeterministic(t *testing.T) {
	m := toyModel(1.)
	t1, err := m.EvaluateLHC(64, 4, 12345, "")
	require.NoError(t, err)
	t2, err := m.EvaluateLHC(64, 1, 12345, "")
	require.NoError(t, err)

	require.Len(t, t1.Params, 64)
	require.Len(t, t1.Metrics, 64)
	assert.Zero(t, t1.Failures)
	for k := range t1.Params {
		assert.InDelta(t, t2.Params[k][0], t1.Params[k][0], 0,
			"row %d differs across worker counts", k)
		assert.InDelta(t, t2.Metrics[k][0], t1.Metrics[k][0], 0)
	}
	// metric = 100*(1-f) exactly
	for k := range t1.Params {
		assert.InDelta(t, 100.*(1.-t1.Params[k][0]), t1.Metrics[k][0], 1e-9)
	}
}

func TestEvaluateLHCFailuresKeepRows(t *testing.T) {
	m := toyModel(.7) // samples with f > 0.7 fail
	tbl, err := m.EvaluateLHC(100, 3, 99, "")
	require.NoError(t, err)
	require.Len(t, tbl.Metrics, 100)
	assert.Greater(t, tbl.Failures, 0)
	nan := 0
	for k := range tbl.Metrics {
		if math.IsNaN(tbl.Metrics[k][0]) {
			nan++
			assert.False(t, math.IsNaN(tbl.Params[k][0]), "failed rows keep parameter values")
		}
	}
	assert.Equal(t, tbl.Failures, nan)
	assert.InDelta(t, float64(nan)/100., tbl.FailureFraction(), 1e-12)
}

func TestTableStats(t *testing.T) {
	tbl, err := toyModel(1.).EvaluateLHC(200, 2, 7, "")
	require.NoError(t, err)

	q := tbl.Percentiles()
	require.Len(t, q, 1)
	require.Len(t, q[0], len(PercentileLevels))
	for i := 1; i < len(q[0]); i++ {
		assert.GreaterOrEqual(t, q[0][i], q[0][i-1], "percentiles must be nondecreasing")
	}
	// metric spans roughly 100*(1-.9) .. 100*(1-.1)
	assert.InDelta(t, 10., q[0][0], 2.)
	assert.InDelta(t, 90., q[0][len(q[0])-1], 2.)

	rho, pv := tbl.Spearman()
	require.Len(t, rho, 1)
	// metric decreases monotonically with the parameter
	assert.InDelta(t, -1., rho[0][0], 1e-9)
	assert.Less(t, pv[0][0], .001)
}

// decay is dy/dt = -k y, a DynamicUnit with a known solution.
type decay struct {
	Base
	k, y0 float64
}

func newDecay(id string, in, out *Stream, k, y0 float64) *decay {
	b, err := NewBase(id, []*Stream{in}, []*Stream{out})
	if err != nil {
		panic(err)
	}
	u := &decay{Base: b, k: k, y0: y0}
	u.Claim(u)
	return u
}

func (u *decay) Simulate() error       { return nil }
func (u *decay) StateLen() int         { return 1 }
func (u *decay) InitState() []float64  { return []float64{u.y0} }
func (u *decay) WriteOuts(y []float64) { u.Out(0).Mass[0] = y[0] }
func (u *decay) Derivs(t float64, y, dydt []float64) {
	dydt[0] = -u.k * y[0]
}

func TestSimulateDynamicRK4(t *testing.T) {
	cs, err := NewComponents(Component{ID: "Water"})
	require.NoError(t, err)
	sys := NewSystem("dyn", cs)
	feed := sys.Feed(NewStream("feed", cs))
	out := NewStream("out", cs)
	sys.MustAdd(newDecay("R1", feed, out, .7, 10.))

	var last float64
	require.NoError(t, sys.SimulateDynamic(0., 5., .01, func(tm float64) { last = tm }))
	assert.InDelta(t, 5., last, 1e-9)
	assert.InDelta(t, 10.*math.Exp(-.7*5.), out.Mass[0], 1e-6)
}

func TestSimulateDynamicBadWindow(t *testing.T) {
	cs, _ := NewComponents(Component{ID: "Water"})
	sys := NewSystem("dyn", cs)
	assert.Error(t, sys.SimulateDynamic(0., -1., .1, nil))
	assert.Error(t, sys.SimulateDynamic(0., 1., 0., nil))
}
