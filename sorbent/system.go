package sorbent

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
	"github.com/wobrien3/EXPOsan/units"
)

// Config sets the feed basis of an ALF train. Route A reacts
// reagent-grade aluminum hydroxide; route B digests bauxite, with the
// insoluble residue filtered off ahead of crystallization.
type Config struct {
	Route        byte    // 'A' or 'B'
	AlOH3Kgph    float64 // route A hydroxide feed
	BauxiteKgph  float64 // route B ore feed
	Gibbsite     float64 // hydroxide fraction of the ore
	WaterKgph    float64
	AcidKgph     float64 // formic acid (dosed as 350:100 acid:water)
	AcidH2OKgph  float64
	Conversion   float64
	CrystalYield float64
}

func DefaultConfig() Config {
	return Config{
		Route:        'A',
		AlOH3Kgph:    100.,
		BauxiteKgph:  143.,
		Gibbsite:     .7,
		WaterKgph:    100.,
		AcidKgph:     350.,
		AcidH2OKgph:  100.,
		Conversion:   1.,
		CrystalYield: 1.,
	}
}

// Plant holds the assembled train and its stream handles.
type Plant struct {
	Sys *exposan.System
	R1  *ALFProduction
	C1  *ALFCrystallizer
	F1  *PressureFilter
	D1  *DrumDryer

	Product  *exposan.Stream // dried ALF
	Permeate *exposan.Stream // filtrate with the unrecovered acid
	Residue  *exposan.Stream // route B only
}

// CreateSystem assembles an ALF train. Every build starts from a fresh
// registry and flowsheet, so repeated loads never collide.
func CreateSystem(cfg Config) (*Plant, error) {
	if cfg.Route != 'A' && cfg.Route != 'B' {
		return nil, fmt.Errorf("sorbent: unknown route %q", cfg.Route)
	}
	cs, err := CreateComponents()
	if err != nil {
		return nil, err
	}
	sys := exposan.NewSystem(fmt.Sprintf("ALF_%c", cfg.Route), cs)
	ns := func(id string) *exposan.Stream { return exposan.NewStream(id, cs) }
	p := &Plant{Sys: sys}

	var alFeed *exposan.Stream
	if cfg.Route == 'A' {
		alFeed = sys.Feed(ns("aluminum_hydroxide"))
		if err := alFeed.SetImass("AlH3O3", cfg.AlOH3Kgph); err != nil {
			return nil, err
		}
	} else {
		alFeed = sys.Feed(ns("bauxite"))
		if err := alFeed.SetImass("AlH3O3", cfg.Gibbsite*cfg.BauxiteKgph); err != nil {
			return nil, err
		}
		if err := alFeed.SetImass("SiO2", (1.-cfg.Gibbsite)*cfg.BauxiteKgph); err != nil {
			return nil, err
		}
	}
	water := sys.Feed(ns("water"))
	if err := water.SetImass("H2O", cfg.WaterKgph); err != nil {
		return nil, err
	}
	acid := sys.Feed(ns("formic_acid"))
	if err := acid.SetImass("HCOOH", cfg.AcidKgph); err != nil {
		return nil, err
	}
	if err := acid.SetImass("H2O", cfg.AcidH2OKgph); err != nil {
		return nil, err
	}

	slurry, mixed := ns("AlOH3_H2O"), ns("AlOH3_H2O_HCOOH")
	m1, err := units.NewMixer("M1", []*exposan.Stream{alFeed, water}, slurry)
	if err != nil {
		return nil, err
	}
	m2, err := units.NewMixer("M2", []*exposan.Stream{slurry, acid}, mixed)
	if err != nil {
		return nil, err
	}

	soln := ns("ALF_solution")
	p.R1, err = NewALFProduction("R1", mixed, soln)
	if err != nil {
		return nil, err
	}
	p.R1.Conversion = cfg.Conversion

	toCryst := soln
	var s1 *units.Splitter
	if cfg.Route == 'B' {
		toCryst = ns("clarified_solution")
		p.Residue = ns("residue")
		s1, err = units.NewSplitter("S1", soln, toCryst, p.Residue, residueSplit())
		if err != nil {
			return nil, err
		}
	}

	cryst := ns("ALF_mixed")
	p.C1, err = NewALFCrystallizer("C1", toCryst, cryst)
	if err != nil {
		return nil, err
	}
	p.C1.Yield = cfg.CrystalYield

	cake := ns("retentate")
	p.Permeate = ns("permeate")
	// uncrystallized formate stays in solution and leaves with the filtrate
	p.F1, err = NewPressureFilter("F1", cryst, cake, p.Permeate, map[string]float64{
		"C3H3AlO6": .83 * cfg.CrystalYield,
		"HCOOH":    .05,
	})
	if err != nil {
		return nil, err
	}

	air, ng := sys.Feed(ns("dryer_air")), sys.Feed(ns("natural_gas"))
	p.Product = ns("dried_ALF")
	p.D1, err = NewDrumDryer("D1", cake, air, ng, p.Product, ns("hot_air"), ns("emissions"))
	if err != nil {
		return nil, err
	}

	if cfg.Route == 'B' {
		sys.MustAdd(m1, m2, p.R1, s1, p.C1, p.F1, p.D1)
	} else {
		sys.MustAdd(m1, m2, p.R1, p.C1, p.F1, p.D1)
	}
	for alias, u := range map[string]exposan.Unit{
		"feed_mixer_1": m1, "feed_mixer_2": m2,
		"ALF_production": p.R1, "ALF_crystallizer": p.C1,
		"ALF_filter": p.F1, "ALF_dryer": p.D1,
	} {
		if err := sys.Alias(alias, u); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// residueSplit keeps everything but the insoluble ore fraction.
func residueSplit() map[string]float64 {
	m := map[string]float64{}
	for _, id := range []string{"H2O", "AlH3O3", "HCOOH", "C3H3AlO6", "Air", "CH4", "CO2"} {
		m[id] = 1.
	}
	m["SiO2"] = 0.
	return m
}
