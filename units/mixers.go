package units

import "github.com/wobrien3/EXPOsan"

// Mixer sums any number of inlets into one outlet.
type Mixer struct{ exposan.Base }

func NewMixer(id string, ins []*exposan.Stream, out *exposan.Stream) (*Mixer, error) {
	b, err := exposan.NewBase(id, ins, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &Mixer{Base: b}
	u.Claim(u)
	return u, nil
}

func (u *Mixer) Simulate() error {
	out := u.Out(0)
	out.Empty()
	for _, in := range u.Ins() {
		out.Mix(in)
	}
	return nil
}

// FuelMixer blends gasoline into the diesel product on an LHV basis so
// the minimum fuel selling price can be quoted per gallon of diesel
// equivalent.
type FuelMixer struct {
	exposan.Base
	GasolinePrice float64 // $/kg
	DieselPrice   float64 // $/kg
	DieselGal2Kg  float64
}

func NewFuelMixer(id string, gasoline, diesel, fuel *exposan.Stream) (*FuelMixer, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{gasoline, diesel}, []*exposan.Stream{fuel})
	if err != nil {
		return nil, err
	}
	u := &FuelMixer{Base: b, GasolinePrice: .9388, DieselPrice: .9722, DieselGal2Kg: DieselGal}
	u.Claim(u)
	return u, nil
}

func (u *FuelMixer) Simulate() error {
	gas, diesel, fuel := u.In(0), u.In(1), u.Out(0)
	gasEq := gas.FMass() * GasolineLHV / DieselLHV
	eq := gasEq + diesel.FMass()
	fuel.Empty()
	fuel.SetImass("Diesel", eq)
	if eq > 0. {
		fuel.Price = (gasEq*u.GasolinePrice + diesel.FMass()*u.DieselPrice) / eq
	}
	return nil
}

// CHP burns the collected fuel gas, crediting electricity and heat
// against the plant utilities. Natural-gas make-up covers any shortfall
// against the demand target (zero by default).
type CHP struct {
	exposan.Base
	ElectricEff float64
	HeatEff     float64
	UnitCAPEX   float64 // $/kW installed
	DemandKW    float64 // make-up target

	PowerKW float64
	HeatKW  float64
}

func NewCHP(id string, fuelGas, naturalGas, air, emission, ash *exposan.Stream) (*CHP, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{fuelGas, naturalGas, air}, []*exposan.Stream{emission, ash})
	if err != nil {
		return nil, err
	}
	u := &CHP{Base: b, ElectricEff: .27, HeatEff: .53, UnitCAPEX: 1225.}
	u.Claim(u)
	return u, nil
}

func (u *CHP) Simulate() error {
	fuelGas, ng, air := u.In(0), u.In(1), u.In(2)
	emission, ash := u.Out(0), u.Out(1)

	lhv := fuelGas.LHV() / 3600. * 1000. // MJ/h → kW
	ngM := 0.
	if need := u.DemandKW/u.ElectricEff - lhv; need > 0. {
		ngM = need * 3600. / 1000. / 50. // natural gas LHV 50 MJ/kg
	}
	ng.Empty()
	ng.SetImass("CH4", ngM)

	total := lhv + ngM*50./3.6
	u.PowerKW = total * u.ElectricEff
	u.HeatKW = total * u.HeatEff

	cIn := fuelGas.TotalC() + ngM*12./16.
	o2 := cIn / 12. * 32.
	air.Empty()
	air.SetImass("O2", o2)
	air.SetImass("N2", o2*3.29)

	emission.Empty()
	emission.Phase = 'g'
	emission.SetImass("CO2", cIn/12.*44.)
	emission.SetImass("N2", o2*3.29)
	ash.Empty()
	ash.Phase = 's'
	return nil
}

// Power reports net production as a negative consumption.
func (u *CHP) Power() float64 { return -u.PowerKW }
