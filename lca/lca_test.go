package lca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wobrien3/EXPOsan"
)

func fixture(t *testing.T) (*LCA, *exposan.Stream) {
	cs, err := exposan.NewComponents(exposan.Component{ID: "X"})
	require.NoError(t, err)
	sys := exposan.NewSystem("sys", cs)
	sys.OperatingHours = 1000.

	s := exposan.NewStream("s", cs)
	require.NoError(t, s.SetImass("X", 10.))

	l := New(sys, 30.)
	cfs := CFs{}
	for _, ind := range Indicators {
		cfs[ind] = 0.
	}
	cfs["GlobalWarming"] = 2.
	l.Add(&Item{ID: "x_item", CFs: cfs, Stream: s})
	return l, s
}

func TestTotalImpacts(t *testing.T) {
	l, _ := fixture(t)
	tot, err := l.TotalImpacts()
	require.NoError(t, err)
	// 2 kgCO2e/kg × 10 kg/h × 1000 h/yr × 30 yr
	assert.InDelta(t, 2.*10.*1000.*30., tot["GlobalWarming"], 1e-6)
	assert.Zero(t, tot["Acidification"])
}

func TestOperationItems(t *testing.T) {
	l, _ := fixture(t)
	l.Electricity = func() float64 { return 1e6 } // kWh lifetime
	l.ElecCFs = CFs{"GlobalWarming": .4}
	tot, err := l.TotalImpacts()
	require.NoError(t, err)
	assert.InDelta(t, 600000.+400000., tot["GlobalWarming"], 1e-6)
}

func TestMissingFactor(t *testing.T) {
	l, s := fixture(t)
	l.Add(&Item{ID: "bad", CFs: CFs{"GlobalWarming": 1.}, Stream: s})
	_, err := l.TotalImpacts()
	assert.Error(t, err)
}

func TestUncertaintyParams(t *testing.T) {
	l, _ := fixture(t)
	ps := l.UncertaintyParams()
	require.Len(t, ps, 1, "one nonzero factor")
	p := ps[0]
	assert.Equal(t, "LCA", p.Element)
	assert.InDelta(t, 2., p.Baseline, 1e-12)
	assert.InDelta(t, 1.8, p.Dist.Quantile(0.), 1e-6)

	p.Set(3.)
	it, ok := l.Item("x_item")
	require.True(t, ok)
	assert.InDelta(t, 3., it.CFs["GlobalWarming"], 1e-12)
}

func TestFlowGetterOverridesStream(t *testing.T) {
	l, s := fixture(t)
	it, _ := l.Item("x_item")
	it.Flow = func() float64 { return 1. }
	tot, err := l.TotalImpacts()
	require.NoError(t, err)
	assert.InDelta(t, 2.*1.*1000.*30., tot["GlobalWarming"], 1e-6)
	_ = s
}
