// Package metab builds modular anaerobic-digestion trains: one- or
// two-stage high-rate digesters (UASB, fluidized bed, packed bed) with
// selectable biogas extraction, an effluent degassing membrane, and
// TEA/LCA overlays accounting for fugitive methane and natural-gas
// offsets. Digestion kinetics are a reduced hydrolysis + Monod model
// integrated dynamically; the kinetic constants can be calibrated to an
// observed effluent-COD series.
package metab

import "github.com/wobrien3/EXPOsan"

// CreateComponents builds the species registry of the digestion trains.
// Organics are tracked on a COD basis; dissolved methane is tracked as
// mass so fugitive emissions can be charged directly.
func CreateComponents() (*exposan.Components, error) {
	return exposan.NewComponents(
		exposan.Component{ID: "H2O", Phase: 'l', MW: 18.02},
		exposan.Component{ID: "X_S", Phase: 's', IC: .375},  // particulate substrate [kg COD]
		exposan.Component{ID: "S_S", Phase: 'l', IC: .375},  // soluble substrate [kg COD]
		exposan.Component{ID: "S_I", Phase: 'l', IC: .375},  // soluble inerts [kg COD]
		exposan.Component{ID: "X_bio", Phase: 's', IC: .53}, // biomass [kg COD]
		exposan.Component{ID: "S_ch4", Phase: 'l', MW: 16.04, IC: 12. / 16., LHV: 50.},
		exposan.Component{ID: "CH4", Phase: 'g', MW: 16.04, IC: 12. / 16., HHV: 55.5, LHV: 50.},
		exposan.Component{ID: "CO2", Phase: 'g', MW: 44.01, IC: 12. / 44.},
		exposan.Component{ID: "NaOCl", Phase: 'l', MW: 74.44},
		exposan.Component{ID: "Citric_acid", Phase: 'l', MW: 192.12},
	)
}
