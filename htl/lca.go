package htl

import (
	"github.com/wobrien3/EXPOsan/lca"
)

// Characterization factors per kg of the linked stream (TRACI).
// Negative factors are displacement credits for recovered products.
var impactItems = map[string]lca.CFs{
	"RO_item": {
		"Acidification": .53533, "Ecotoxicity": .90848, "Eutrophication": .0028322,
		"GlobalWarming": 2.2663, "OzoneDepletion": 2.5541e-7,
		"PhotochemicalOxidation": .0089068, "Carcinogenics": .034791,
		"NonCarcinogenics": 31.8, "RespiratoryEffects": .0028778,
	},
	"H2SO4_item": {
		"Acidification": .019678922, "Ecotoxicity": .069909345, "Eutrophication": 4.05e-6,
		"GlobalWarming": .008205666, "OzoneDepletion": 8.94e-10,
		"PhotochemicalOxidation": 5.04e-5, "Carcinogenics": 1.74e-3,
		"NonCarcinogenics": 1.68237815, "RespiratoryEffects": 9.41e-5,
	},
	"MgCl2_item": {
		"Acidification": .77016, "Ecotoxicity": .97878, "Eutrophication": .00039767,
		"GlobalWarming": 2.8779, "OzoneDepletion": 4.94e-8,
		"PhotochemicalOxidation": .0072306, "Carcinogenics": .0050938,
		"NonCarcinogenics": 8.6916, "RespiratoryEffects": .004385,
	},
	"H2_item": {
		"Acidification": .81014, "Ecotoxicity": .42747, "Eutrophication": .0029415,
		"GlobalWarming": 1.5624, "OzoneDepletion": 1.8e-6,
		"PhotochemicalOxidation": .0052545, "Carcinogenics": .0026274,
		"NonCarcinogenics": 8.5687, "RespiratoryEffects": .0036698,
	},
	"MgO_item": {
		"Acidification": .12584, "Ecotoxicity": 2.7949, "Eutrophication": .00063607,
		"GlobalWarming": 1.1606, "OzoneDepletion": 1.54e-8,
		"PhotochemicalOxidation": .0017137, "Carcinogenics": .018607,
		"NonCarcinogenics": 461.54, "RespiratoryEffects": .0008755,
	},
	"NaOH_item": {
		"Acidification": .33656, "Ecotoxicity": .77272, "Eutrophication": .00032908,
		"GlobalWarming": 1.2514, "OzoneDepletion": 7.89e-7,
		"PhotochemicalOxidation": .0033971, "Carcinogenics": .0070044,
		"NonCarcinogenics": 13.228, "RespiratoryEffects": .0024543,
	},
	"NH4Cl_item": {
		"Acidification": .34682, "Ecotoxicity": .90305, "Eutrophication": .0047381,
		"GlobalWarming": 1.525, "OzoneDepletion": 9.22e-8,
		"PhotochemicalOxidation": .0030017, "Carcinogenics": .010029,
		"NonCarcinogenics": 14.85, "RespiratoryEffects": .0018387,
	},
	"struvite_item": {
		"Acidification": -.122829597, "Ecotoxicity": -.269606396, "Eutrophication": -.000174952,
		"GlobalWarming": -.420850152, "OzoneDepletion": -2.29549e-8,
		"PhotochemicalOxidation": -.001044087, "Carcinogenics": -.002983018,
		"NonCarcinogenics": -4.496533528, "RespiratoryEffects": -.00061764,
	},
	"NH42SO4_item": {
		"Acidification": -.72917, "Ecotoxicity": -3.4746, "Eutrophication": -.0024633,
		"GlobalWarming": -1.2499, "OzoneDepletion": -6.12e-8,
		"PhotochemicalOxidation": -.0044519, "Carcinogenics": -.036742,
		"NonCarcinogenics": -62.932, "RespiratoryEffects": -.0031315,
	},
	"natural_gas_item": {
		"Acidification": .083822558, "Ecotoxicity": .063446198, "Eutrophication": 7.25e-5,
		"GlobalWarming": 1.584234288, "OzoneDepletion": 1.23383e-7,
		"PhotochemicalOxidation": .000973731, "Carcinogenics": .000666424,
		"NonCarcinogenics": 3.63204, "RespiratoryEffects": .000350917,
	},
	"CHG_catalyst_item": {
		"Acidification": 991.6544196, "Ecotoxicity": 15371.08292, "Eutrophication": .45019348,
		"GlobalWarming": 484.7862509, "OzoneDepletion": 2.23437e-5,
		"PhotochemicalOxidation": 6.735405072, "Carcinogenics": 1.616793132,
		"NonCarcinogenics": 27306.37232, "RespiratoryEffects": 3.517184526,
	},
	"HT_catalyst_item": {
		"Acidification": 4.056401283, "Ecotoxicity": 50.26926274, "Eutrophication": .005759274,
		"GlobalWarming": 6.375878231, "OzoneDepletion": 1.39248e-6,
		"PhotochemicalOxidation": .029648759, "Carcinogenics": .287516945,
		"NonCarcinogenics": 369.791688, "RespiratoryEffects": .020809293,
	},
	"HC_catalyst_item": {
		"Acidification": 4.056401283, "Ecotoxicity": 50.26926274, "Eutrophication": .005759274,
		"GlobalWarming": 6.375878231, "OzoneDepletion": 1.39248e-6,
		"PhotochemicalOxidation": .029648759, "Carcinogenics": .287516945,
		"NonCarcinogenics": 369.791688, "RespiratoryEffects": .020809293,
	},
	"diesel_item": {
		"Acidification": -.25164, "Ecotoxicity": -.18748, "Eutrophication": -.0010547,
		"GlobalWarming": -.47694, "OzoneDepletion": -6.42e-7,
		"PhotochemicalOxidation": -.0019456, "Carcinogenics": -.00069252,
		"NonCarcinogenics": -2.9281, "RespiratoryEffects": -.0011096,
	},
}

// US grid mix, per kWh.
var electricityCFs = lca.CFs{
	"Acidification": .0024, "Ecotoxicity": .044, "Eutrophication": 2.9e-5,
	"GlobalWarming": .48, "OzoneDepletion": 2.1e-8,
	"PhotochemicalOxidation": 2.6e-5, "Carcinogenics": 1.4e-5,
	"NonCarcinogenics": 1.5, "RespiratoryEffects": 3.3e-4,
}

func attachLCA(p *Plant, cfg Config) {
	l := lca.New(p.Sys, float64(cfg.LifetimeYr))

	cp := func(src lca.CFs) lca.CFs {
		d := make(lca.CFs, len(lca.Indicators))
		for _, ind := range lca.Indicators {
			d[ind] = src[ind]
		}
		return d
	}

	l.Add(&lca.Item{ID: "RO_item", CFs: cp(impactItems["RO_item"]), Stream: p.feeds["Membrane_in"]})
	l.Add(&lca.Item{ID: "H2SO4_item", CFs: cp(impactItems["H2SO4_item"]),
		Flow: func() float64 { return p.feeds["H2SO4_P"].FMass() + p.feeds["H2SO4_N"].FMass() }})
	l.Add(&lca.Item{ID: "MgCl2_item", CFs: cp(impactItems["MgCl2_item"]), Stream: p.feeds["MgCl2"]})
	l.Add(&lca.Item{ID: "H2_item", CFs: cp(impactItems["H2_item"]),
		Flow: func() float64 { return p.feeds["HT_H2"].FMass() + p.feeds["HC_H2"].FMass() }})
	l.Add(&lca.Item{ID: "MgO_item", CFs: cp(impactItems["MgO_item"]), Stream: p.feeds["MgO"]})
	l.Add(&lca.Item{ID: "NaOH_item", CFs: cp(impactItems["NaOH_item"]), Stream: p.feeds["NaOH"]})
	l.Add(&lca.Item{ID: "NH4Cl_item", CFs: cp(impactItems["NH4Cl_item"]), Stream: p.feeds["NH4Cl"]})
	l.Add(&lca.Item{ID: "struvite_item", CFs: cp(impactItems["struvite_item"]), Stream: p.Struvite})
	l.Add(&lca.Item{ID: "NH42SO4_item", CFs: cp(impactItems["NH42SO4_item"]), Stream: p.AmSulf})
	l.Add(&lca.Item{ID: "natural_gas_item", CFs: cp(impactItems["natural_gas_item"]), Stream: p.feeds["natural_gas"]})
	l.Add(&lca.Item{ID: "CHG_catalyst_item", CFs: cp(impactItems["CHG_catalyst_item"]), Stream: p.feeds["CHG_catalyst_in"]})
	l.Add(&lca.Item{ID: "HT_catalyst_item", CFs: cp(impactItems["HT_catalyst_item"]), Stream: p.feeds["HT_catalyst_in"]})
	l.Add(&lca.Item{ID: "HC_catalyst_item", CFs: cp(impactItems["HC_catalyst_item"]), Stream: p.feeds["HC_catalyst_in"]})
	l.Add(&lca.Item{ID: "diesel_item", CFs: cp(impactItems["diesel_item"]), Stream: p.Fuel})

	l.ElecCFs = electricityCFs
	l.Electricity = func() float64 {
		net := p.P1.Power() + p.P2.Power() + p.P3.Power() + p.CHP.Power()
		return net * p.Sys.OperatingHours * l.LifetimeYr // kWh over lifetime
	}
	p.LCA = l
}
