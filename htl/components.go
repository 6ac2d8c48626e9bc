// Package htl assembles the hydrothermal-liquefaction resource
// recovery flowsheet: sludge from the host treatment plant through
// HTL, nutrient recovery on the aqueous branch, catalytic upgrading of
// the biocrude to drop-in fuel, and combined heat and power on the
// collected fuel gas. TEA and LCA overlays and the uncertainty model
// are built on top of the converged system.
package htl

import (
	"github.com/wobrien3/EXPOsan"
	"github.com/wobrien3/EXPOsan/units"
)

// CreateComponents builds the species registry shared by the whole
// flowsheet. Aqueous nutrients are tracked as dissolved elemental
// species; fuel cuts as lumped pseudo-components.
func CreateComponents() (*exposan.Components, error) {
	return exposan.NewComponents(
		exposan.Component{ID: "H2O", Phase: 'l', MW: 18.02},
		exposan.Component{ID: "Sludge_lipid", Phase: 's', IC: .75, HHV: 38.},
		exposan.Component{ID: "Sludge_protein", Phase: 's', IC: .545, IN: .159, HHV: 23.},
		exposan.Component{ID: "Sludge_carbo", Phase: 's', IC: .4, HHV: 17.},
		exposan.Component{ID: "Sludge_ash", Phase: 's'},
		exposan.Component{ID: "Biochar", Phase: 's', HHV: 20.},
		exposan.Component{ID: "Biocrude", Phase: 'l', IC: .67, IN: .04, HHV: 36., LHV: 34.},
		exposan.Component{ID: "Residual", Phase: 'l', IC: .45},
		exposan.Component{ID: "C", Phase: 'l', IC: 1.},
		exposan.Component{ID: "N", Phase: 'l', IN: 1.},
		exposan.Component{ID: "P", Phase: 'l', IP: 1.},
		exposan.Component{ID: "CH4", Phase: 'g', MW: 16.04, IC: 12. / 16., HHV: 55.5, LHV: 50.},
		exposan.Component{ID: "CO2", Phase: 'g', MW: 44.01, IC: 12. / 44.},
		exposan.Component{ID: "H2", Phase: 'g', MW: 2.02, HHV: 141.8, LHV: 120.},
		exposan.Component{ID: "O2", Phase: 'g', MW: 32.},
		exposan.Component{ID: "N2", Phase: 'g', MW: 28.01},
		exposan.Component{ID: "H2SO4", Phase: 'l', MW: 98.08},
		exposan.Component{ID: "NaOH", Phase: 'l', MW: 40.},
		exposan.Component{ID: "MgCl2", Phase: 's', MW: 95.21},
		exposan.Component{ID: "NH4Cl", Phase: 's', MW: 53.49, IN: 14.0067 / 53.49},
		exposan.Component{ID: "MgO", Phase: 's', MW: 40.3},
		exposan.Component{ID: "Struvite", Phase: 's', MW: units.MWStruvite,
			IN: units.MWN / units.MWStruvite, IP: units.MWP / units.MWStruvite},
		exposan.Component{ID: "NH42SO4", Phase: 's', MW: units.MWAmSulf, IN: 2. * units.MWN / units.MWAmSulf},
		exposan.Component{ID: "Membrane", Phase: 's'},
		exposan.Component{ID: "CHG_catalyst", Phase: 's'},
		exposan.Component{ID: "HT_catalyst", Phase: 's'},
		exposan.Component{ID: "HC_catalyst", Phase: 's'},
		exposan.Component{ID: "LightHC", Phase: 'g', IC: .8, HHV: 50., LHV: 46.},
		exposan.Component{ID: "Gasoline", Phase: 'l', IC: .855, HHV: 46.4, LHV: units.GasolineLHV},
		exposan.Component{ID: "Diesel", Phase: 'l', IC: .87, HHV: 45.6, LHV: units.DieselLHV},
		exposan.Component{ID: "HeavyOil", Phase: 'l', IC: .87, HHV: 43., LHV: 40.},
	)
}
