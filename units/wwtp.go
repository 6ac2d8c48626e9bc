package units

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
)

// WWTP models the host treatment plant as a sludge source: raw
// wastewater in, wet sludge and treated water out. Sludge composition
// is specified on a dry, ash-free basis and converted to elemental
// contents through the correlation chain lipid/protein/carbo → C →
// H/N → P.
type WWTP struct {
	exposan.Base
	Ww2DrySludge   float64 // tonne dry sludge per day per MGD treated
	SludgeMoisture float64
	DwAsh          float64 // ash fraction of dry weight
	AfdwLipid      float64 // lipid fraction of ash-free dry weight
	AfdwProtein    float64
	Lipid2C        float64
	Protein2C      float64
	Carbo2C        float64
	C2H            float64
	Protein2N      float64
	N2P            float64
	OperationHours float64

	// set by Simulate, read by downstream units and metrics
	SludgeC, SludgeN, SludgeP, SludgeH float64 // kg/h
	SludgeHHV                          float64 // MJ/kg dry
	SludgeAfdw                         float64 // kg/h
}

func NewWWTP(id string, in, sludge, treated *exposan.Stream) (*WWTP, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{sludge, treated})
	if err != nil {
		return nil, err
	}
	u := &WWTP{
		Base:           b,
		Ww2DrySludge:   .94,
		SludgeMoisture: .99,
		DwAsh:          .257,
		AfdwLipid:      .204,
		AfdwProtein:    .463,
		Lipid2C:        .75,
		Protein2C:      .545,
		Carbo2C:        .4,
		C2H:            .1427,
		Protein2N:      .159,
		N2P:            .3927,
		OperationHours: 7920.,
	}
	u.Claim(u)
	return u, nil
}

// FlowMGD reports the inlet flow in million US gal per day, water basis.
func (u *WWTP) FlowMGD() float64 { return u.In(0).Imass("H2O") / 1000. / MGDToM3ph }

func (u *WWTP) Simulate() error {
	in, sludge, treated := u.In(0), u.Out(0), u.Out(1)
	if u.AfdwLipid+u.AfdwProtein > 1. {
		return fmt.Errorf("WWTP %s: lipid+protein fractions exceed 1 (%g)", u.ID(), u.AfdwLipid+u.AfdwProtein)
	}

	dry := u.Ww2DrySludge * u.FlowMGD() * 1000. / 24. // kg/h
	afdw := dry * (1. - u.DwAsh)
	afdwCarbo := 1. - u.AfdwLipid - u.AfdwProtein

	sludge.Empty()
	sludge.SetImass("Sludge_lipid", afdw*u.AfdwLipid)
	sludge.SetImass("Sludge_protein", afdw*u.AfdwProtein)
	sludge.SetImass("Sludge_carbo", afdw*afdwCarbo)
	sludge.SetImass("Sludge_ash", dry*u.DwAsh)
	water := dry * u.SludgeMoisture / (1. - u.SludgeMoisture)
	sludge.SetImass("H2O", water)

	treated.Empty()
	treated.SetImass("H2O", in.Imass("H2O")-water)

	cFrac := u.Lipid2C*u.AfdwLipid + u.Protein2C*u.AfdwProtein + u.Carbo2C*afdwCarbo
	u.SludgeC = afdw * cFrac
	u.SludgeH = u.SludgeC * u.C2H
	u.SludgeN = afdw * u.AfdwProtein * u.Protein2N
	u.SludgeP = u.SludgeN * u.N2P
	u.SludgeAfdw = afdw

	wC, wH := u.SludgeC/dry, u.SludgeH/dry
	wO := 1. - u.DwAsh - wC - wH - u.SludgeN/dry
	if wO < 0. {
		wO = 0.
	}
	u.SludgeHHV = dulong(wC, wH, wO)
	return nil
}
