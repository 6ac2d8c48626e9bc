package htl

import (
	"github.com/wobrien3/EXPOsan"
	"github.com/wobrien3/EXPOsan/units"
)

const maxFuelPrice = 10. // $/kg, SolvePrice search ceiling

// CreateModel returns the uncertainty model of the PSA flowsheet: a
// scenario factory that rebuilds the system per worker and registers
// every uncertain input and every reported output.
func CreateModel(cfg Config) *exposan.Model {
	return &exposan.Model{
		Name: "htl_PSA",
		Setup: func() (*exposan.Scenario, error) {
			p, err := CreateSystem(cfg)
			if err != nil {
				return nil, err
			}
			sc := &exposan.Scenario{Sys: p.Sys}
			addParameters(sc, p)
			addMetrics(sc, p)
			return sc, nil
		},
	}
}

func addParameters(sc *exposan.Scenario, p *Plant) {
	par := func(name, element, units string, base float64, d exposan.Distribution, set func(float64)) *exposan.Parameter {
		return sc.Param(&exposan.Parameter{Name: name, Element: element, Units: units, Baseline: base, Dist: d, Set: set})
	}

	// sludge characterization
	par("ww_2_dry_sludge", "WWTP", "ton/d/MGD", .94,
		exposan.Uniform(.846, 1.034), func(v float64) { p.WWTP.Ww2DrySludge = v })
	par("sludge_moisture", "WWTP", "-", .99,
		exposan.Uniform(.97, .995), func(v float64) { p.WWTP.SludgeMoisture = v })
	par("sludge_dw_ash", "WWTP", "-", .257,
		exposan.Triangle(.174, .257, .414), func(v float64) { p.WWTP.DwAsh = v })
	lipid := par("sludge_afdw_lipid", "WWTP", "-", .204,
		exposan.Triangle(.08, .204, .308), func(v float64) { p.WWTP.AfdwLipid = v })
	protein := par("sludge_afdw_protein", "WWTP", "-", .463,
		exposan.Triangle(.38, .463, .51), func(v float64) { p.WWTP.AfdwProtein = v })
	sc.Nest(lipid, protein) // joint draw keeps lipid+protein on the simplex
	par("lipid_2_C", "WWTP", "-", .75,
		exposan.Uniform(.675, .825), func(v float64) { p.WWTP.Lipid2C = v })
	par("protein_2_C", "WWTP", "-", .545,
		exposan.Uniform(.4905, .5995), func(v float64) { p.WWTP.Protein2C = v })
	par("carbo_2_C", "WWTP", "-", .4,
		exposan.Uniform(.36, .44), func(v float64) { p.WWTP.Carbo2C = v })
	par("C_2_H", "WWTP", "-", .1427,
		exposan.Triangle(.1348, .1427, .1647), func(v float64) { p.WWTP.C2H = v })
	par("protein_2_N", "WWTP", "-", .159,
		exposan.Uniform(.1431, .1749), func(v float64) { p.WWTP.Protein2N = v })
	par("N_2_P", "WWTP", "-", .3927,
		exposan.Triangle(.1944, .3927, .5556), func(v float64) { p.WWTP.N2P = v })
	par("operation_hour", "WWTP", "h/yr", 7920.,
		exposan.Triangle(7392., 7920., 8448.), func(v float64) {
			p.WWTP.OperationHours = v
			p.Sys.OperatingHours = v
		})

	// HTL conversion
	par("heating_transfer_coefficient", "H1", "kW/m2/K", .0795,
		exposan.Triangle(.017035, .0795, .085174), func(v float64) { p.H1.U = v })
	par("lipid_2_biocrude", "HTL", "-", .846,
		exposan.Triangle(.692, .846, 1.), func(v float64) { p.HTL.Lipid2Biocrude = v })
	par("protein_2_biocrude", "HTL", "-", .445,
		exposan.Normal(.445, .03), func(v float64) { p.HTL.Protein2Biocrude = v })
	par("carbo_2_biocrude", "HTL", "-", .205,
		exposan.Normal(.205, .05), func(v float64) { p.HTL.Carbo2Biocrude = v })
	par("protein_2_gas", "HTL", "-", .074,
		exposan.Normal(.074, .02), func(v float64) { p.HTL.Protein2Gas = v })
	par("carbo_2_gas", "HTL", "-", .418,
		exposan.Normal(.418, .03), func(v float64) { p.HTL.Carbo2Gas = v })
	par("biocrude_C_slope", "HTL", "-", -8.37,
		exposan.Normal(-8.37, .939), func(v float64) { p.HTL.BiocrudeCSlope = v })
	par("biocrude_C_intercept", "HTL", "-", 68.55,
		exposan.Normal(68.55, .367), func(v float64) { p.HTL.BiocrudeCIntercept = v })
	par("biocrude_N_slope", "HTL", "-", .133,
		exposan.Normal(.133, .005), func(v float64) { p.HTL.BiocrudeNSlope = v })
	par("biocrude_H_slope", "HTL", "-", -2.61,
		exposan.Normal(-2.61, .352), func(v float64) { p.HTL.BiocrudeHSlope = v })
	par("biocrude_H_intercept", "HTL", "-", 8.2,
		exposan.Normal(8.2, .138), func(v float64) { p.HTL.BiocrudeHIntercept = v })
	par("HTLaqueous_C_slope", "HTL", "-", 478.,
		exposan.Normal(478., 18.878), func(v float64) { p.HTL.HTLaqueousCSlope = v })
	par("TOC_TC", "HTL", "-", .764,
		exposan.Triangle(.715, .764, .813), func(v float64) { p.HTL.TOCTC = v })
	par("biochar_C_slope", "HTL", "-", 1.75,
		exposan.Normal(1.75, .122), func(v float64) { p.HTL.BiocharCSlope = v })
	par("biocrude_moisture_content", "HTL", "-", .063,
		exposan.Triangle(.035, .063, .102), func(v float64) { p.HTL.BiocrudeMoisture = v })
	par("biochar_P_recovery_ratio", "HTL", "-", .86,
		exposan.Uniform(.84, .88), func(v float64) { p.HTL.BiocharPRecovery = v })

	// nutrient recovery
	par("acid_vol", "AcidEx", "L/kg", 7.,
		exposan.Uniform(4., 10.), func(v float64) { p.AcidEx.AcidVol = v })
	par("P_acid_recovery_ratio", "AcidEx", "-", .8,
		exposan.Uniform(.7, .9), func(v float64) { p.AcidEx.PAcidRecovery = v })
	par("target_pH", "StruPre", "-", 9.,
		exposan.Uniform(8.5, 9.5), func(v float64) { p.StruPre.TargetPH = v })
	par("P_pre_recovery_ratio", "StruPre", "-", .828,
		exposan.Triangle(.7, .828, .95), func(v float64) { p.StruPre.PPreRecovery = v })
	par("WHSV", "CHG", "kg/h/kg", 3.562,
		exposan.Triangle(2.86, 3.562, 3.99), func(v float64) { p.CHG.WHSV = v })
	par("catalyst_lifetime", "CHG", "h", 7920.,
		exposan.Triangle(3960., 7920., 15840.), func(v float64) { p.CHG.CatalystLifetime = v })
	par("gas_C_2_total_C", "CHG", "-", .5981,
		exposan.Triangle(.1893, .5981, .7798), func(v float64) { p.CHG.GasC2TotalC = v })
	par("influent_pH", "MemDis", "-", 8.16,
		exposan.Uniform(7.91, 8.41), func(v float64) { p.MemDis.InfluentPH = v })
	par("target_pH", "MemDis", "-", 10.,
		exposan.Uniform(10., 11.8), func(v float64) { p.MemDis.TargetPH = v })
	par("m2_2_m3", "MemDis", "m3/m2", 1./1200.,
		exposan.Uniform(.00075, .000917), func(v float64) { p.MemDis.M2ToM3 = v })
	par("Dm", "MemDis", "m2/s", 2.28e-5,
		exposan.Uniform(2.05e-5, 2.51e-5), func(v float64) { p.MemDis.Dm = v })
	par("porosity", "MemDis", "-", .9,
		exposan.Uniform(.81, .99), func(v float64) { p.MemDis.Porosity = v })
	par("thickness", "MemDis", "m", 7e-5,
		exposan.Uniform(6.3e-5, 7.7e-5), func(v float64) { p.MemDis.Thickness = v })
	par("tortuosity", "MemDis", "-", 1.2,
		exposan.Uniform(1.08, 1.32), func(v float64) { p.MemDis.Tortuosity = v })
	par("Ka", "MemDis", "-", 1.75e-5,
		exposan.Uniform(1.58e-5, 1.93e-5), func(v float64) { p.MemDis.Ka = v })
	par("capacity", "MemDis", "kg N/m2/d", 6.01,
		exposan.Uniform(5.409, 6.611), func(v float64) { p.MemDis.Capacity = v })

	// upgrading
	par("WHSV", "HT", "kg/h/kg", .625,
		exposan.Uniform(.5625, .6875), func(v float64) { p.HT.WHSV = v })
	par("catalyst_lifetime", "HT", "h", 15840.,
		exposan.Triangle(7920., 15840., 39600.), func(v float64) { p.HT.CatalystLifetime = v })
	par("hydrogen_rxned_to_biocrude", "HT", "-", .046,
		exposan.Uniform(.0414, .0506), func(v float64) { p.HT.H2RxnedToFeed = v })
	par("PSA_efficiency", "HT", "-", .9,
		exposan.Uniform(.8, .9), func(v float64) { p.HT.PSAEfficiency = v })
	par("hydrogen_excess", "HT", "-", 3.,
		exposan.Uniform(2.4, 3.6), func(v float64) { p.HT.H2Excess = v })
	par("hydrocarbon_ratio", "HT", "-", .875,
		exposan.Uniform(.7875, .9625), func(v float64) { p.HT.HydrocarbonRatio = v })
	par("WHSV", "HC", "kg/h/kg", .625,
		exposan.Uniform(.5625, .6875), func(v float64) { p.HC.WHSV = v })
	par("catalyst_lifetime", "HC", "h", 39600.,
		exposan.Uniform(35640., 43560.), func(v float64) { p.HC.CatalystLifetime = v })
	par("hydrogen_rxned_to_heavy_oil", "HC", "-", .01125,
		exposan.Uniform(.010125, .012375), func(v float64) { p.HC.H2RxnedToFeed = v })
	par("hydrogen_excess", "HC", "-", 5.556,
		exposan.Uniform(4.4448, 6.6672), func(v float64) { p.HC.H2Excess = v })
	par("hydrocarbon_ratio", "HC", "-", 1.,
		exposan.Uniform(.9, 1.), func(v float64) { p.HC.HydrocarbonRatio = v })

	// economics
	par("HTL_CAPEX_factor", "TEA", "-", 1.,
		exposan.Triangle(.6, 1., 1.4), func(v float64) { p.HTL.CAPEXFactor = v })
	par("CHG_CAPEX_factor", "TEA", "-", 1.,
		exposan.Triangle(.6, 1., 1.4), func(v float64) { p.CHG.CAPEXFactor = v })
	par("HT_CAPEX_factor", "TEA", "-", 1.,
		exposan.Triangle(.6, 1., 1.4), func(v float64) { p.HT.CAPEXFactor = v })
	par("CHP_unit_CAPEX", "TEA", "$/kW", 1225.,
		exposan.Uniform(980., 1470.), func(v float64) { p.CHP.UnitCAPEX = v })
	par("IRR", "TEA", "-", .1,
		exposan.Triangle(0., .1, .2), func(v float64) { p.TEA.IRR = v })
	par("H2SO4_price", "TEA", "$/kg", .00658,
		exposan.Triangle(.005994, .00658, .014497), func(v float64) {
			p.Feed("H2SO4_P").Price = v
			p.Feed("H2SO4_N").Price = v
		})
	par("MgCl2_price", "TEA", "$/kg", .5452,
		exposan.Triangle(.525, .5452, .57), func(v float64) { p.Feed("MgCl2").Price = v })
	par("NH4Cl_price", "TEA", "$/kg", .13,
		exposan.Uniform(.12, .14), func(v float64) { p.Feed("NH4Cl").Price = v })
	par("MgO_price", "TEA", "$/kg", .2,
		exposan.Uniform(.1, .3), func(v float64) { p.Feed("MgO").Price = v })
	par("struvite_price", "TEA", "$/kg", .661,
		exposan.Triangle(.419, .661, 1.213), func(v float64) { p.Struvite.Price = v })
	par("H2_price", "TEA", "$/kg", 1.611,
		exposan.Uniform(1.45, 1.772), func(v float64) {
			p.Feed("HT_H2").Price = v
			p.Feed("HC_H2").Price = v
		})
	par("NaOH_price", "TEA", "$/kg", .5256,
		exposan.Uniform(.473, .578), func(v float64) { p.Feed("NaOH").Price = v })
	par("ammonium_sulfate_price", "TEA", "$/kg", .3236,
		exposan.Triangle(.1636, .3236, .463), func(v float64) { p.AmSulf.Price = v })
	par("membrane_price", "TEA", "$/kg", 93.29,
		exposan.Uniform(83.96, 102.62), func(v float64) {
			p.MemDis.MembranePrice = v
			p.Feed("Membrane_in").Price = v
		})
	par("CHG_catalyst_price", "TEA", "$/kg", 134.53,
		exposan.Triangle(67.27, 134.53, 269.07), func(v float64) { p.Feed("CHG_catalyst_in").Price = v })
	par("CH4_price", "TEA", "$/kg", .1685,
		exposan.Triangle(.121, .1685, .3608), func(v float64) { p.Feed("natural_gas").Price = v })
	par("HT_HC_catalyst_price", "TEA", "$/kg", 38.79,
		exposan.Uniform(34.91, 42.67), func(v float64) {
			p.Feed("HT_catalyst_in").Price = v
			p.Feed("HC_catalyst_in").Price = v
		})
	par("gasoline_price", "TEA", "$/kg", .9388,
		exposan.Triangle(.7085, .9388, 1.4493), func(v float64) { p.FuelMix.GasolinePrice = v })
	par("diesel_price", "TEA", "$/kg", .9722,
		exposan.Triangle(.7458, .9722, 1.6579), func(v float64) { p.FuelMix.DieselPrice = v })
	par("electricity_price", "TEA", "$/kWh", .06879,
		exposan.Triangle(.0667, .06879, .0718), func(v float64) { p.TEA.ElectricityPrice = v })

	// characterization-factor screening
	for _, lp := range p.LCA.UncertaintyParams() {
		sc.Param(lp)
	}
}

func addMetrics(sc *exposan.Scenario, p *Plant) {
	sankey := func(name, units string, f func() float64) {
		sc.Metric(&exposan.Metric{Name: name, Units: units, Element: "Sankey",
			Get: func() (float64, error) { return f(), nil }})
	}

	sankey("sludge_C", "kg/hr", func() float64 { return p.WWTP.SludgeC })
	sankey("sludge_N", "kg/hr", func() float64 { return p.WWTP.SludgeN })
	sankey("sludge_P", "kg/hr", func() float64 { return p.WWTP.SludgeP })
	sankey("sludge_E", "GJ/hr", func() float64 {
		s := p.WWTP.Out(0)
		return (s.FMass() - s.Imass("H2O")) * p.WWTP.SludgeHHV / 1000.
	})
	sankey("HTLaqueous_C", "kg/hr", func() float64 { return p.HTL.HTLaqueousC })
	sankey("HTLaqueous_N", "kg/hr", func() float64 { return p.HTL.HTLaqueousN })
	sankey("HTLaqueous_P", "kg/hr", func() float64 { return p.HTL.HTLaqueousP })
	sankey("biocrude_C", "kg/hr", func() float64 { return p.HTL.BiocrudeC })
	sankey("biocrude_N", "kg/hr", func() float64 { return p.HTL.BiocrudeN })
	sankey("biocrude_E", "GJ/hr", func() float64 {
		return p.HTL.BiocrudeHHV * p.HTL.Out(2).Imass("Biocrude") / 1000.
	})
	sankey("offgas_C", "kg/hr", func() float64 { return p.HTL.OffgasC })
	sankey("offgas_E", "GJ/hr", func() float64 { return p.HTL.Out(3).HHV() / 1000. })
	sankey("biochar_C", "kg/hr", func() float64 { return p.HTL.BiocharC })
	sankey("biochar_P", "kg/hr", func() float64 { return p.HTL.BiocharP })

	sankey("HT_gasoline_C", "kg/hr", func() float64 { return p.D2.Out(0).TotalC() })
	sankey("HT_gasoline_N", "kg/hr", func() float64 { return p.D2.Out(0).TotalN() })
	sankey("HT_gasoline_E", "GJ/hr", func() float64 { return p.D2.Out(0).HHV() / 1000. })
	sankey("HT_diesel_C", "kg/hr", func() float64 { return p.D3.Out(0).TotalC() })
	sankey("HT_diesel_E", "GJ/hr", func() float64 { return p.D3.Out(0).HHV() / 1000. })
	sankey("HT_heavy_oil_C", "kg/hr", func() float64 { return p.D3.Out(1).TotalC() })
	sankey("HT_heavy_oil_E", "GJ/hr", func() float64 { return p.D3.Out(1).HHV() / 1000. })
	sankey("HT_gas_C", "kg/hr", func() float64 { return p.F2.Out(0).TotalC() + p.D1.Out(0).TotalC() })
	sankey("HT_gas_N", "kg/hr", func() float64 { return p.F2.Out(0).TotalN() + p.D1.Out(0).TotalN() })
	sankey("HT_gas_E", "GJ/hr", func() float64 { return (p.F2.Out(0).HHV() + p.D1.Out(0).HHV()) / 1000. })
	sankey("HT_ww_C", "kg/hr", func() float64 {
		c := p.D2.Out(0).TotalC() + p.D3.Out(0).TotalC() + p.D3.Out(1).TotalC() +
			p.F2.Out(0).TotalC() + p.D1.Out(0).TotalC()
		return p.HTL.BiocrudeC - c
	})
	sankey("HT_ww_N", "kg/hr", func() float64 {
		n := p.D2.Out(0).TotalN() + p.D3.Out(0).TotalN() + p.D3.Out(1).TotalN() +
			p.F2.Out(0).TotalN() + p.D1.Out(0).TotalN()
		return p.HTL.BiocrudeN - n
	})
	sankey("HC_gasoline_C", "kg/hr", func() float64 { return p.D4.Out(0).TotalC() })
	sankey("HC_gasoline_E", "GJ/hr", func() float64 { return p.D4.Out(0).HHV() / 1000. })
	sankey("HC_diesel_C", "kg/hr", func() float64 { return p.D4.Out(1).TotalC() })
	sankey("HC_diesel_E", "GJ/hr", func() float64 { return p.D4.Out(1).HHV() / 1000. })
	sankey("HC_gas_C", "kg/hr", func() float64 { return p.F3.Out(0).TotalC() })
	sankey("HC_gas_E", "GJ/hr", func() float64 { return p.F3.Out(0).HHV() / 1000. })
	sankey("HT_H2_E", "GJ/hr", func() float64 { return p.HT.H2Rxned * 141.8 / 1000. })
	sankey("HC_H2_E", "GJ/hr", func() float64 { return p.HC.H2Rxned * 141.8 / 1000. })

	sankey("extracted_P", "kg/hr", func() float64 { return p.AcidEx.ExtractedP })
	sankey("residual_P", "kg/hr", func() float64 { return p.HTL.BiocharP - p.AcidEx.ExtractedP })
	sankey("residual_C", "kg/hr", func() float64 { return p.HTL.BiocharC })
	sankey("struvite_N", "kg/hr", func() float64 { return p.StruPre.StruviteN })
	sankey("struvite_P", "kg/hr", func() float64 { return p.StruPre.StruviteP })
	sankey("CHG_feed_C", "kg/hr", func() float64 { return p.StruPre.Out(1).TotalC() })
	sankey("CHG_feed_N", "kg/hr", func() float64 { return p.StruPre.Out(1).TotalN() })
	sankey("CHG_feed_P", "kg/hr", func() float64 { return p.StruPre.Out(1).TotalP() })
	sankey("CHG_out_C", "kg/hr", func() float64 { return p.CHG.CHGoutC })
	sankey("CHG_out_N", "kg/hr", func() float64 { return p.CHG.CHGoutN })
	sankey("CHG_out_P", "kg/hr", func() float64 { return p.CHG.CHGoutP })
	sankey("CHG_gas_C", "kg/hr", func() float64 { return p.F1.Out(0).TotalC() })
	sankey("CHG_gas_E", "GJ/hr", func() float64 { return p.F1.Out(0).HHV() / 1000. })
	sankey("ammoniumsulfate_N", "kg/hr", func() float64 {
		return p.AmSulf.FMass() * 2. * units.MWN / units.MWAmSulf
	})
	sankey("MemDis_ww_C", "kg/hr", func() float64 { return p.MemDis.Out(1).TotalC() })
	sankey("MemDis_ww_N", "kg/hr", func() float64 { return p.MemDis.Out(1).TotalN() })
	sankey("MemDis_ww_P", "kg/hr", func() float64 { return p.MemDis.Out(1).TotalP() })

	sc.Metric(&exposan.Metric{Name: "MFSP", Units: "$/gal diesel", Element: "TEA",
		Get: func() (float64, error) {
			pr, err := p.TEA.SolvePrice(p.Fuel, maxFuelPrice)
			if err != nil {
				return 0., err
			}
			return pr * p.FuelMix.DieselGal2Kg, nil
		}})
	sc.Metric(&exposan.Metric{Name: "GWP_diesel", Units: "g CO2/MMBTU diesel", Element: "LCA",
		Get: func() (float64, error) {
			tot, err := p.LCA.TotalImpacts()
			if err != nil {
				return 0., err
			}
			gw := tot["GlobalWarming"] / p.Fuel.FMass() / p.Sys.OperatingHours / p.LCA.LifetimeYr
			return gw * units.KgToG / units.DieselLHV / units.MJToMMBTU, nil
		}})
	sc.Metric(&exposan.Metric{Name: "GWP_sludge", Units: "kg CO2/ton dry sludge", Element: "LCA",
		Get: func() (float64, error) {
			tot, err := p.LCA.TotalImpacts()
			if err != nil {
				return 0., err
			}
			dry := p.WWTP.FlowMGD() * p.WWTP.Ww2DrySludge * (p.Sys.OperatingHours / 24.) * p.LCA.LifetimeYr
			return tot["GlobalWarming"] / dry, nil
		}})
}
