package bsm1

import (
	"fmt"
	"math"

	"github.com/wobrien3/EXPOsan"
	"github.com/wobrien3/EXPOsan/units"
)

// design flows [m³/d]
const (
	QInf  = 18446.
	QIntr = 55338. // internal nitrate recycle
	QRas  = 18446. // return activated sludge
	QWas  = 385.   // wastage
)

// dry-weather influent composition [g/m³]
var influent = map[string]float64{
	"S_I": 30., "S_S": 69.5, "X_I": 51.2, "X_S": 202.32,
	"X_BH": 28.17, "S_NH": 31.56, "S_ND": 6.95, "X_ND": 10.59,
	"S_ALK": 7.,
}

var (
	tankV   = [5]float64{1000., 1000., 1333., 1333., 1333.}
	tankKLa = [5]float64{0., 0., 240., 240., 84.}
)

// open-loop steady-state estimates, used as initial conditions so the
// integration settles well inside the benchmark window
var tankInit = [5][nStates]float64{
	{30., 2.81, 1149., 82.1, 2552., 148., 449., .0043, 5.37, 7.92, 1.22, 5.28, 4.93},
	{30., 1.46, 1149., 76.4, 2553., 148., 450., 6.3e-5, 3.66, 8.34, .882, 5.03, 5.08},
	{30., 1.15, 1149., 64.9, 2557., 149., 450., 1.72, 6.54, 5.55, .829, 4.39, 4.67},
	{30., .995, 1149., 55.7, 2559., 149., 451., 2.43, 9.3, 2.97, .767, 3.88, 4.29},
	{30., .889, 1149., 49.3, 2559., 150., 452., .491, 10.4, 1.73, .688, 3.53, 4.13},
}

// Plant is the assembled benchmark flowsheet.
type Plant struct {
	Sys       *exposan.System
	R         [5]*CSTR
	Clarifier *Settler

	Influent, Effluent, RAS, WAS *exposan.Stream
}

// Load assembles the plant: influent and both recycles mix into a
// five-tank ASM1 train (two anoxic, three aerated), the internal
// recycle is drawn off the last tank, and the clarifier underflow
// splits into return sludge and wastage.
func Load() (*Plant, error) {
	cs, err := CreateComponents()
	if err != nil {
		return nil, err
	}
	sys := exposan.NewSystem("bsm1", cs)
	sys.OperatingHours = 8760.
	ns := func(id string) *exposan.Stream { return exposan.NewStream(id, cs) }

	inf := sys.Feed(ns("influent"))
	if err := inf.SetImass("H2O", QInf*1000./24.); err != nil {
		return nil, err
	}
	for id, c := range influent {
		if err := inf.SetImass(id, c*QInf/24000.); err != nil {
			return nil, err
		}
	}

	intr := sys.Tear(ns("nitrate_recycle"))
	ras := sys.Tear(ns("sludge_recycle"))
	mixed := ns("mixed_liquor0")
	m1, err := units.NewMixer("M1", []*exposan.Stream{inf, ras, intr}, mixed)
	if err != nil {
		return nil, err
	}

	p := &Plant{Sys: sys, Influent: inf, RAS: ras}
	kin := DefaultASM1()
	prev := mixed
	for i := range p.R {
		out := ns(fmt.Sprintf("mixed_liquor%d", i+1))
		r, err := NewCSTR(fmt.Sprintf("R%d", i+1), prev, out, tankV[i], tankKLa[i], kin, tankInit[i][:])
		if err != nil {
			return nil, err
		}
		p.R[i] = r
		prev = out
	}

	sf := ns("settler_feed")
	sp1, err := units.NewSplitter("SP1", prev, intr, sf, uniformSplit(QIntr/(QInf+QIntr+QRas)))
	if err != nil {
		return nil, err
	}
	eff, under := ns("effluent"), ns("underflow")
	set, err := NewSettler("C1", sf, eff, under, 1500., QRas+QWas)
	if err != nil {
		return nil, err
	}
	was := ns("wastage")
	sp2, err := units.NewSplitter("SP2", under, ras, was, uniformSplit(QRas/(QRas+QWas)))
	if err != nil {
		return nil, err
	}

	sys.MustAdd(m1, p.R[0], p.R[1], p.R[2], p.R[3], p.R[4], sp1, set, sp2)
	p.Clarifier, p.Effluent, p.WAS = set, eff, was
	return p, nil
}

func uniformSplit(f float64) map[string]float64 {
	m := map[string]float64{"H2O": f}
	for _, id := range stateIDs {
		m[id] = f
	}
	return m
}

// Simulate integrates the plant over td days. The step is held well
// inside the stability bound set by the aeration and settling rates.
func (p *Plant) Simulate(td float64) error {
	return p.Sys.SimulateDynamic(0., td, .002, nil)
}

// conc reads a stream concentration [g/m³].
func conc(s *exposan.Stream, id string) float64 {
	q := s.Imass("H2O") / 1000. * 24.
	if q <= 0. {
		return math.NaN()
	}
	return s.Imass(id) * 24000. / q
}

// tssConc reports a stream's total suspended solids [g/m³].
func tssConc(s *exposan.Stream) float64 {
	c := 0.
	for _, i := range particulates {
		c += conc(s, stateIDs[i])
	}
	return .75 * c
}

// EffluentCOD reports the clarified effluent COD [g/m³].
func (p *Plant) EffluentCOD() float64 {
	c := conc(p.Effluent, "S_I") + conc(p.Effluent, "S_S")
	for _, i := range particulates {
		c += conc(p.Effluent, stateIDs[i])
	}
	return c
}

func (p *Plant) EffluentTSS() float64 { return tssConc(p.Effluent) }

// RecycleTSS reports the return-sludge solids concentration [g/m³].
func (p *Plant) RecycleTSS() float64 { return tssConc(p.RAS) }
