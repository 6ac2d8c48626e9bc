package units

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
)

// Hydrotreater saturates biocrude over a CoMo/alumina catalyst.
// HydrocarbonRatio of the reacted mass leaves as hydrocarbon cuts
// (fuel gas, gasoline-range, diesel-range, heavy oil); the rest reports
// to the process water. The hydrogen make-up feed is sized from the
// stoichiometric demand, the excess factor and the PSA recovery.
type Hydrotreater struct {
	exposan.Base
	WHSV             float64
	CatalystLifetime float64 // h
	H2RxnedToFeed    float64 // kg H2 reacted per kg dry feed
	H2Excess         float64
	PSAEfficiency    float64
	HydrocarbonRatio float64
	CutGas           float64 // fractions of the hydrocarbon product
	CutGasoline      float64
	CutDiesel        float64
	CAPEXFactor      float64

	H2Rxned float64 // kg/h
}

func NewHydrotreater(id string, feed, h2, catalystIn, out, catalystOut *exposan.Stream) (*Hydrotreater, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{feed, h2, catalystIn}, []*exposan.Stream{out, catalystOut})
	if err != nil {
		return nil, err
	}
	u := &Hydrotreater{
		Base:             b,
		WHSV:             .625,
		CatalystLifetime: 15840.,
		H2RxnedToFeed:    .046,
		H2Excess:         3.,
		PSAEfficiency:    .9,
		HydrocarbonRatio: .875,
		CutGas:           .088,
		CutGasoline:      .238,
		CutDiesel:        .538,
		CAPEXFactor:      1.,
	}
	u.Claim(u)
	return u, nil
}

func (u *Hydrotreater) Simulate() error {
	feed, h2, catIn := u.In(0), u.In(1), u.In(2)
	out, catOut := u.Out(0), u.Out(1)

	dry := feed.Imass("Biocrude")
	if u.CutGas+u.CutGasoline+u.CutDiesel > 1. {
		return fmt.Errorf("HT %s: cut fractions exceed unity", u.ID())
	}

	u.H2Rxned = u.H2RxnedToFeed * dry
	// excess H2 recovered by the PSA and recycled internally
	h2Net := u.H2Rxned + u.H2Rxned*(u.H2Excess-1.)*(1.-u.PSAEfficiency)
	h2.Empty()
	h2.SetImass("H2", h2Net)

	catM := dry / u.WHSV / u.CatalystLifetime
	catIn.Empty()
	catIn.SetImass("HT_catalyst", catM)
	catOut.Empty()
	catOut.Phase = 's'
	catOut.SetImass("HT_catalyst", catM)

	hc := u.HydrocarbonRatio * (dry + u.H2Rxned)
	aq := (1.-u.HydrocarbonRatio)*(dry+u.H2Rxned) + h2Net - u.H2Rxned

	out.Empty()
	out.SetImass("LightHC", hc*u.CutGas)
	out.SetImass("Gasoline", hc*u.CutGasoline)
	out.SetImass("Diesel", hc*u.CutDiesel)
	out.SetImass("HeavyOil", hc*(1.-u.CutGas-u.CutGasoline-u.CutDiesel))
	out.SetImass("H2O", feed.Imass("H2O")+aq)
	return nil
}

// Hydrocracker breaks the heavy distillation bottoms into
// gasoline/diesel range product; near-complete hydrocarbon yield.
type Hydrocracker struct {
	exposan.Base
	WHSV             float64
	CatalystLifetime float64
	H2RxnedToFeed    float64
	H2Excess         float64
	HydrocarbonRatio float64
	CutGas           float64
	CutGasoline      float64

	H2Rxned float64
}

func NewHydrocracker(id string, feed, h2, catalystIn, out, catalystOut *exposan.Stream) (*Hydrocracker, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{feed, h2, catalystIn}, []*exposan.Stream{out, catalystOut})
	if err != nil {
		return nil, err
	}
	u := &Hydrocracker{
		Base:             b,
		WHSV:             .625,
		CatalystLifetime: 39600.,
		H2RxnedToFeed:    .01125,
		H2Excess:         5.556,
		HydrocarbonRatio: 1.,
		CutGas:           .079,
		CutGasoline:      .316,
	}
	u.Claim(u)
	return u, nil
}

func (u *Hydrocracker) Simulate() error {
	feed, h2, catIn := u.In(0), u.In(1), u.In(2)
	out, catOut := u.Out(0), u.Out(1)

	dry := feed.Imass("HeavyOil")
	u.H2Rxned = u.H2RxnedToFeed * dry
	h2.Empty()
	h2.SetImass("H2", u.H2Rxned) // excess recycled to extinction

	catM := dry / u.WHSV / u.CatalystLifetime
	catIn.Empty()
	catIn.SetImass("HC_catalyst", catM)
	catOut.Empty()
	catOut.Phase = 's'
	catOut.SetImass("HC_catalyst", catM)

	hc := u.HydrocarbonRatio * (dry + u.H2Rxned)
	out.Empty()
	out.SetImass("LightHC", hc*u.CutGas)
	out.SetImass("Gasoline", hc*u.CutGasoline)
	out.SetImass("Diesel", hc*(1.-u.CutGas-u.CutGasoline))
	out.SetImass("H2O", feed.Imass("H2O")+(1.-u.HydrocarbonRatio)*(dry+u.H2Rxned))
	return nil
}
