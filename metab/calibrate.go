package metab

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// KineticParams are the calibrated digestion constants.
type KineticParams struct {
	KHyd  float64 // 1/d
	MuMax float64 // 1/d
	Ks    float64 // kg COD/m³
	Y     float64
}

// calibration search ranges
var calRange = struct{ lo, hi KineticParams }{
	lo: KineticParams{KHyd: .05, MuMax: .05, Ks: .05, Y: .02},
	hi: KineticParams{KHyd: 2., MuMax: 1., Ks: 5., Y: .2},
}

func (kp KineticParams) apply(p *Plant) {
	set := func(r *Digester) {
		r.KHyd = kp.KHyd
		r.MuMax = kp.MuMax
		r.Ks = kp.Ks
		r.Y = kp.Y
	}
	set(p.R1)
	if p.R2 != nil {
		set(p.R2)
	}
}

// ObservedSeries is an effluent-COD time series [kg/m³] at fixed
// sampling times [d], strictly increasing.
type ObservedSeries struct {
	Td  []float64
	COD []float64
}

// simulateCOD integrates the train over the observation window and
// returns the modelled effluent COD at each observation time.
func simulateCOD(p *Plant, obs *ObservedSeries, dt float64) ([]float64, error) {
	last := p.R1
	if p.R2 != nil {
		last = p.R2
	}
	sim := make([]float64, len(obs.Td))
	for i := range sim {
		sim[i] = math.NaN()
	}
	j := 0
	t1 := obs.Td[len(obs.Td)-1]
	err := p.Sys.SimulateDynamic(0., t1, dt, func(t float64) {
		for j < len(obs.Td) && obs.Td[j] <= t+dt/2. {
			sim[j] = last.EffluentCOD()
			j++
		}
	})
	if err != nil {
		return nil, err
	}
	return sim, nil
}

// Calibrate fits the kinetic constants to an observed effluent-COD
// series by shuffled-complex evolution, minimizing 1−NSE over the
// hypercube of the search ranges. A fresh train is built per candidate
// so state never leaks between evaluations.
func Calibrate(cfg Config, obs *ObservedSeries, ncmplx int, seed int64) (KineticParams, float64, error) {
	if len(obs.Td) < 3 || len(obs.Td) != len(obs.COD) {
		return KineticParams{}, 0., fmt.Errorf("metab: calibration needs a matched series of 3+ observations")
	}
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)

	toParams := func(u []float64) KineticParams {
		return KineticParams{
			KHyd:  mmaths.LinearTransform(calRange.lo.KHyd, calRange.hi.KHyd, u[0]),
			MuMax: mmaths.LinearTransform(calRange.lo.MuMax, calRange.hi.MuMax, u[1]),
			Ks:    mmaths.LinearTransform(calRange.lo.Ks, calRange.hi.Ks, u[2]),
			Y:     mmaths.LinearTransform(calRange.lo.Y, calRange.hi.Y, u[3]),
		}
	}

	const dt = .05 // d
	gen := func(u []float64) float64 {
		kp := toParams(u)
		p, err := CreateSystem(cfg)
		if err != nil {
			return 9999.
		}
		kp.apply(p)
		sim, err := simulateCOD(p, obs, dt)
		if err != nil {
			return 9999.
		}
		nse := objfunc.NSE(obs.COD, sim)
		if math.IsNaN(nse) {
			return 9999.
		}
		return 1. - nse
	}

	uFinal, of := glbopt.SCE(ncmplx, 4, rng, gen, true)
	return toParams(uFinal), 1. - of, nil
}
