package bsm1

import (
	"github.com/wobrien3/EXPOsan"
)

// CSTR is a constant-volume ASM1 reactor. Aerated tanks transfer
// oxygen at KLa toward saturation; anoxic tanks set KLa to zero.
type CSTR struct {
	exposan.Base
	VM3  float64
	KLa  float64 // 1/d
	Kin  ASM1
	Init []float64
}

func NewCSTR(id string, in, out *exposan.Stream, v, kla float64, kin ASM1, init []float64) (*CSTR, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{out})
	if err != nil {
		return nil, err
	}
	u := &CSTR{Base: b, VM3: v, KLa: kla, Kin: kin, Init: init}
	u.Claim(u)
	return u, nil
}

// inflow fills cin with the inlet concentrations [g/m³] and returns
// the hydraulic load [m³/d].
func (u *CSTR) inflow(cin []float64) float64 {
	in := u.In(0)
	q := in.Imass("H2O") / 1000. * 24.
	if q <= 0. {
		for i := range cin {
			cin[i] = 0.
		}
		return 0.
	}
	for i, id := range stateIDs {
		cin[i] = in.Imass(id) * 24000. / q
	}
	return q
}

func (u *CSTR) StateLen() int { return nStates }

func (u *CSTR) InitState() []float64 {
	y := make([]float64, nStates)
	copy(y, u.Init)
	return y
}

func (u *CSTR) Derivs(t float64, y, dydt []float64) {
	var cin [nStates]float64
	q := u.inflow(cin[:])
	d := q / u.VM3
	for i := range dydt {
		dydt[i] = d * (cin[i] - y[i])
	}
	u.Kin.Rates(y, dydt)
	if u.KLa > 0. {
		dydt[iSO] += u.KLa * (u.Kin.SOSat - y[iSO])
	}
}

func (u *CSTR) WriteOuts(y []float64) {
	in, out := u.In(0), u.Out(0)
	out.Empty()
	out.SetImass("H2O", in.Imass("H2O"))
	f := in.Imass("H2O") / 1000. / 1000. // g/m³ → kg/h at the tank's flow
	for i, id := range stateIDs {
		out.SetImass(id, pos(y[i])*f)
	}
}

// Simulate writes outlets from the initial state; dynamic behavior
// comes from SimulateDynamic.
func (u *CSTR) Simulate() error {
	u.WriteOuts(u.InitState())
	return nil
}
