package units

import "github.com/wobrien3/EXPOsan"

// Pump raises a liquid stream to the target pressure. Hydraulic power
// is reported for the utility accounting.
type Pump struct {
	exposan.Base
	P          float64 // Pa
	Efficiency float64
	Rho        float64 // kg/m³

	PowerKW float64
}

func NewPump(id string, in, out *exposan.Stream, p float64) (*Pump, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &Pump{Base: b, P: p, Efficiency: .8, Rho: 1000.}
	u.Claim(u)
	return u, nil
}

func (u *Pump) Simulate() error {
	in, out := u.In(0), u.Out(0)
	out.CopyFlow(in)
	out.P = u.P
	dP := u.P - in.P
	if dP < 0. {
		dP = 0.
	}
	q := in.FMass() / u.Rho / 3600. // m³/s
	u.PowerKW = q * dP / u.Efficiency / 1000.
	return nil
}

func (u *Pump) Power() float64 { return u.PowerKW }

// Valve drops a stream to the target pressure, isenthalpic.
type Valve struct {
	exposan.Base
	P float64
}

func NewValve(id string, in, out *exposan.Stream, p float64) (*Valve, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &Valve{Base: b, P: p}
	u.Claim(u)
	return u, nil
}

func (u *Valve) Simulate() error {
	out := u.Out(0)
	out.CopyFlow(u.In(0))
	out.P = u.P
	return nil
}

// HeatExchange brings a stream to the target temperature with a
// constant-cp duty; exchanger area follows from the enforced
// heat-transfer coefficient and approach.
type HeatExchange struct {
	exposan.Base
	T        float64 // K
	U        float64 // kW/m²/K
	Cp       float64 // kJ/kg/K
	Approach float64 // K

	DutyKW float64
	AreaM2 float64
}

func NewHeatExchange(id string, in, out *exposan.Stream, T, U float64) (*HeatExchange, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &HeatExchange{Base: b, T: T, U: U, Cp: 3.5, Approach: 80.}
	u.Claim(u)
	return u, nil
}

func (u *HeatExchange) Simulate() error {
	in, out := u.In(0), u.Out(0)
	out.CopyFlow(in)
	out.T = u.T
	u.DutyKW = in.FMass() / 3600. * u.Cp * (u.T - in.T)
	d := u.DutyKW
	if d < 0. {
		d = -d
	}
	u.AreaM2 = d / (u.U * u.Approach)
	return nil
}

// Duty reports heating (positive) or cooling (negative) load [kW].
func (u *HeatExchange) Duty() float64 { return u.DutyKW }

// StorageTank holds a stream for the given residence time; pass-through
// on the material balance, sized for costing only.
type StorageTank struct {
	exposan.Base
	TauH float64 // h

	VolumeM3 float64
}

func NewStorageTank(id string, in, out *exposan.Stream, tauH float64) (*StorageTank, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &StorageTank{Base: b, TauH: tauH}
	u.Claim(u)
	return u, nil
}

func (u *StorageTank) Simulate() error {
	in, out := u.In(0), u.Out(0)
	out.CopyFlow(in)
	u.VolumeM3 = in.FMass() / 1000. * u.TauH
	return nil
}
