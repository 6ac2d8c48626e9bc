// Package sorbent builds the aluminum-formate (ALF) CO2-sorbent
// production trains: reagent mixing, formate synthesis, batch
// crystallization, pressure filtration and drum drying, fed from
// either reagent-grade aluminum hydroxide (route A) or bauxite
// (route B).
package sorbent

import "github.com/wobrien3/EXPOsan"

// CreateComponents builds the registry for the ALF trains.
func CreateComponents() (*exposan.Components, error) {
	return exposan.NewComponents(
		exposan.Component{ID: "H2O", Phase: 'l', MW: 18.02, IH: .112},
		exposan.Component{ID: "AlH3O3", Phase: 's', MW: 78.00, IH: .0388},
		exposan.Component{ID: "HCOOH", Phase: 'l', MW: 46.03, IC: .2609, IH: .0438, HHV: 5.53, LHV: 4.58},
		exposan.Component{ID: "C3H3AlO6", Phase: 's', MW: 162.03, IC: .2224, IH: .0187},
		exposan.Component{ID: "SiO2", Phase: 's', MW: 60.08},
		exposan.Component{ID: "Air", Phase: 'g', MW: 28.97},
		exposan.Component{ID: "CH4", Phase: 'g', MW: 16.04, IC: .749, IH: .251, HHV: 55.5, LHV: 50.},
		exposan.Component{ID: "CO2", Phase: 'g', MW: 44.01, IC: .2729},
	)
}
