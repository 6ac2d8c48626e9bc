package metab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSystemLayouts(t *testing.T) {
	for _, r := range []string{"UASB", "FB", "PB"} {
		for _, stages := range []int{1, 2} {
			for _, mode := range []byte{'P', 'H'} {
				cfg := DefaultConfig()
				cfg.Reactor, cfg.Stages, cfg.GasExtraction = r, stages, mode
				p, err := CreateSystem(cfg)
				require.NoError(t, err, "%s%d%c", r, stages, mode)
				assert.NotNil(t, p.R1)
				assert.Equal(t, stages == 2, p.R2 != nil)
				assert.Nil(t, p.DMs)
			}
		}
	}

	cfg := DefaultConfig()
	cfg.Stages, cfg.GasExtraction = 2, 'M'
	p, err := CreateSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, p.DMs)

	cfg.Stages = 1
	_, err = CreateSystem(cfg)
	assert.Error(t, err) // membrane extraction needs two stages

	cfg = DefaultConfig()
	cfg.GasExtraction = 'X'
	_, err = CreateSystem(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Reactor = "CSTR"
	_, err = CreateSystem(cfg)
	assert.Error(t, err)
}

func TestDigestionReachesRemoval(t *testing.T) {
	p, err := CreateSystem(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, p.Sys.SimulateDynamic(0., 60., .02, nil))

	codIn := defInfSS + defInfXS + defInfSI
	codOut := p.R1.EffluentCOD()
	assert.Less(t, codOut, codIn)
	assert.Greater(t, codOut, 0.)

	assert.Greater(t, p.R1.BiogasCH4, 0.)
	fug := p.FugitiveCH4()
	assert.Greater(t, fug, 0.)
	assert.Less(t, fug, p.R1.BiogasCH4)

	// degassing membrane leaves (1 - recovery) of the dissolved methane
	up := p.DMe.In(0).Imass("S_ch4")
	assert.InDelta(t, (1.-p.DMe.CH4Recovery)*up, p.Effluent.Imass("S_ch4"), 1e-12)
	assert.Greater(t, p.NGEquivalent(), 0.)
}

func TestTwoStageTrain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stages = 2
	p, err := CreateSystem(cfg)
	require.NoError(t, err)
	require.NoError(t, p.Sys.SimulateDynamic(0., 60., .02, nil))

	// the second stage polishes the first stage's effluent
	assert.Less(t, p.R2.EffluentCOD(), defInfSS+defInfXS+defInfSI)
	assert.Greater(t, p.R1.BiogasCH4+p.R2.BiogasCH4, 0.)
}

func TestOverlays(t *testing.T) {
	p, err := CreateSystem(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, p.Sys.SimulateDynamic(0., 60., .02, nil))

	assert.Greater(t, p.TEA.CAPEX(), 0.)
	assert.Greater(t, p.TEA.Revenue(), 0.) // biogas credit

	tot, err := p.LCA.TotalImpacts()
	require.NoError(t, err)
	assert.NotZero(t, tot["GlobalWarming"])
	assert.GreaterOrEqual(t, len(p.LCA.Items()), 3)
}

func TestCalibrateRecoversKinetics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping SCE calibration in short mode")
	}
	cfg := DefaultConfig()
	truth := KineticParams{KHyd: .6, MuMax: .5, Ks: .3, Y: .1}

	p, err := CreateSystem(cfg)
	require.NoError(t, err)
	truth.apply(p)
	obs := &ObservedSeries{}
	for d := 2.; d <= 30.; d += 2. {
		obs.Td = append(obs.Td, d)
	}
	sim, err := simulateCOD(p, obs, .05)
	require.NoError(t, err)
	obs.COD = sim

	got, nse, err := Calibrate(cfg, obs, 2, 12345)
	require.NoError(t, err)
	assert.Greater(t, nse, .8)
	assert.Greater(t, got.KHyd, calRange.lo.KHyd)
	assert.Less(t, got.KHyd, calRange.hi.KHyd)
}

func TestCalibrateRejectsShortSeries(t *testing.T) {
	_, _, err := Calibrate(DefaultConfig(), &ObservedSeries{Td: []float64{1.}, COD: []float64{2.}}, 1, 1)
	assert.Error(t, err)
}
