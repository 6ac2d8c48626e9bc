package htl

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
	"github.com/wobrien3/EXPOsan/lca"
	"github.com/wobrien3/EXPOsan/tea"
	"github.com/wobrien3/EXPOsan/units"
)

// Config selects the plant scale.
type Config struct {
	FlowMGD    float64 // raw wastewater into the host WWTP
	LifetimeYr int
}

func DefaultConfig() Config { return Config{FlowMGD: 100., LifetimeYr: 30} }

// Plant bundles the wired system with handles to every unit the
// uncertainty model reaches into, plus the economic/impact overlays.
type Plant struct {
	Sys *exposan.System
	TEA *tea.TEA
	LCA *lca.LCA

	WWTP     *units.WWTP
	SluC     *units.SludgeCentrifuge
	P1       *units.Pump
	H1       *units.HeatExchange
	HTL      *units.HTL
	AcidEx   *units.AcidExtraction
	StruPre  *units.StruvitePrecipitation
	CHG      *units.CHG
	F1       *units.Flash
	MemDis   *units.MembraneDistillation
	P2       *units.Pump
	HT       *units.Hydrotreater
	F2       *units.Flash
	D1       *units.Distillation
	D2       *units.Distillation
	D3       *units.Distillation
	P3       *units.Pump
	HC       *units.Hydrocracker
	F3       *units.Flash
	D4       *units.Distillation
	FuelMix  *units.FuelMixer
	CHP      *units.CHP

	RawWW    *exposan.Stream
	Fuel     *exposan.Stream
	Struvite *exposan.Stream
	AmSulf   *exposan.Stream
	feeds    map[string]*exposan.Stream
}

// Feed returns a named make-up feed stream (e.g. "H2", "MgCl2").
func (p *Plant) Feed(name string) *exposan.Stream { return p.feeds[name] }

// CreateSystem wires the full PSA-configuration flowsheet. Building is
// deterministic: a fresh registry and system are created per call, so
// repeated builds cannot trip duplicate-registration guards.
func CreateSystem(cfg Config) (*Plant, error) {
	cs, err := CreateComponents()
	if err != nil {
		return nil, err
	}
	sys := exposan.NewSystem("sys_PSA", cs)

	ns := func(id string) *exposan.Stream { return exposan.NewStream(id, cs) }
	p := &Plant{Sys: sys, feeds: map[string]*exposan.Stream{}}
	feed := func(name string) *exposan.Stream {
		s := sys.Feed(ns(name))
		p.feeds[name] = s
		return s
	}

	p.RawWW = feed("raw_wastewater")
	if err := p.RawWW.SetImass("H2O", cfg.FlowMGD*units.MGDToM3ph*1000.); err != nil {
		return nil, err
	}

	// pretreatment (Area 000)
	sludge, treated := ns("sludge"), ns("treated_water")
	if p.WWTP, err = units.NewWWTP("S000", p.RawWW, sludge, treated); err != nil {
		return nil, err
	}
	supernatant, cake := ns("supernatant"), ns("compressed_sludge")
	if p.SluC, err = units.NewSludgeCentrifuge("A000", sludge, supernatant, cake,
		[]string{"Sludge_lipid", "Sludge_protein", "Sludge_carbo", "Sludge_ash"}); err != nil {
		return nil, err
	}

	// HTL (Area 100)
	pressSludge := ns("press_sludge")
	if p.P1, err = units.NewPump("A100", cake, pressSludge, 3049.7*units.PsiToPa); err != nil {
		return nil, err
	}
	heated := ns("heated_sludge")
	if p.H1, err = units.NewHeatExchange("A110", pressSludge, heated, 351.+273.15, .0795); err != nil {
		return nil, err
	}
	biochar, aqueous, biocrude, offgas := ns("biochar"), ns("HTL_aqueous"), ns("biocrude"), ns("offgas_HTL")
	if p.HTL, err = units.NewHTL("A120", heated, biochar, aqueous, biocrude, offgas, p.WWTP); err != nil {
		return nil, err
	}

	// nutrient recovery (Area 200)
	h2so4P := feed("H2SO4_P")
	residual, extracted := ns("residual"), ns("extracted")
	if p.AcidEx, err = units.NewAcidExtraction("A200", biochar, h2so4P, residual, extracted, p.HTL); err != nil {
		return nil, err
	}
	mixture := ns("mixture")
	m1, err := units.NewMixer("A210", []*exposan.Stream{aqueous, extracted}, mixture)
	if err != nil {
		return nil, err
	}
	mgcl2, nh4cl, mgo := feed("MgCl2"), feed("NH4Cl"), feed("MgO")
	p.Struvite = ns("struvite")
	chgFeed := ns("CHG_feed")
	if p.StruPre, err = units.NewStruvitePrecipitation("A220", mixture, mgcl2, nh4cl, mgo, p.Struvite, chgFeed); err != nil {
		return nil, err
	}
	chgCat := feed("CHG_catalyst_in")
	chgOut, chgCatOut := ns("CHG_out"), ns("CHG_catalyst_out")
	if p.CHG, err = units.NewCHG("A230", chgFeed, chgCat, chgOut, chgCatOut); err != nil {
		return nil, err
	}
	depressed := ns("depressed_cooled_CHG")
	v1, err := units.NewValve("A240", chgOut, depressed, 50.*units.PsiToPa)
	if err != nil {
		return nil, err
	}
	chgGas, nRich := ns("CHG_fuel_gas"), ns("N_riched_aqueous")
	if p.F1, err = units.NewFlash("A250", depressed, chgGas, nRich, 60.+273.15, 50.*units.PsiToPa); err != nil {
		return nil, err
	}
	h2so4N, naoh, memIn := feed("H2SO4_N"), feed("NaOH"), feed("Membrane_in")
	p.AmSulf = ns("ammonium_sulfate")
	memWW, memOut, solution := ns("MemDis_ww"), ns("Membrane_out"), ns("solution")
	if p.MemDis, err = units.NewMembraneDistillation("A260", nRich, h2so4N, naoh, memIn,
		p.AmSulf, memWW, memOut, solution); err != nil {
		return nil, err
	}

	// hydrotreating (Area 300)
	pressCrude := ns("press_biocrude")
	if p.P2, err = units.NewPump("A300", biocrude, pressCrude, 1530.*units.PsiToPa); err != nil {
		return nil, err
	}
	htH2, htCat := feed("HT_H2"), feed("HT_catalyst_in")
	htOut, htCatOut := ns("HTout"), ns("HT_catalyst_out")
	if p.HT, err = units.NewHydrotreater("A310", pressCrude, htH2, htCat, htOut, htCatOut); err != nil {
		return nil, err
	}
	depHT := ns("depressed_HT")
	v2, err := units.NewValve("A320", htOut, depHT, 717.4*units.PsiToPa)
	if err != nil {
		return nil, err
	}
	cooledHT := ns("cooled_HT")
	h2x, err := units.NewHeatExchange("A330", depHT, cooledHT, 60.+273.15, .5)
	if err != nil {
		return nil, err
	}
	htGas, htAq := ns("HT_fuel_gas"), ns("HT_aqueous")
	if p.F2, err = units.NewFlash("A340", cooledHT, htGas, htAq, 43.+273.15, 717.4*units.PsiToPa); err != nil {
		return nil, err
	}
	p.F2.GasRecovery = .5 // balance stays dissolved for the stabilizer D1
	depFlash := ns("depressed_flash_effluent")
	v3, err := units.NewValve("A350", htAq, depFlash, 55.*units.PsiToPa)
	if err != nil {
		return nil, err
	}
	htWW, htOil := ns("HT_ww"), ns("HT_oil")
	sp2, err := units.NewSplitter("S310", depFlash, htWW, htOil, map[string]float64{"H2O": 1.})
	if err != nil {
		return nil, err
	}
	heatedOil := ns("heated_oil")
	h3, err := units.NewHeatExchange("A360", htOil, heatedOil, 104.+273.15, .5)
	if err != nil {
		return nil, err
	}
	htLight, htHeavy := ns("HT_light"), ns("HT_heavy")
	// lumped cuts make the stabilizer's heavy leak degenerate; only the
	// dissolved light ends go overhead
	if p.D1, err = units.NewDistillation("A370", heatedOil, htLight, htHeavy,
		[]string{"LightHC"}, 188./253., 0., 50.*units.PsiToPa); err != nil {
		return nil, err
	}
	htGasoline, htOther := ns("HT_Gasoline"), ns("HT_other_oil")
	if p.D2, err = units.NewDistillation("A380", htHeavy, htGasoline, htOther,
		[]string{"Gasoline"}, 116./122., 114./732., 25.*units.PsiToPa); err != nil {
		return nil, err
	}
	htDiesel, htHeavyOil := ns("HT_Diesel"), ns("HT_heavy_oil")
	if p.D3, err = units.NewDistillation("A390", htOther, htDiesel, htHeavyOil,
		[]string{"Diesel"}, 2421./2448., 158./2448., 18.7*units.PsiToPa); err != nil {
		return nil, err
	}

	// hydrocracking (Area 400)
	pressHeavy := ns("press_heavy_oil")
	if p.P3, err = units.NewPump("A400", htHeavyOil, pressHeavy, 1034.7*units.PsiToPa); err != nil {
		return nil, err
	}
	hcH2, hcCat := feed("HC_H2"), feed("HC_catalyst_in")
	hcOut, hcCatOut := ns("HC_out"), ns("HC_catalyst_out")
	if p.HC, err = units.NewHydrocracker("A410", pressHeavy, hcH2, hcCat, hcOut, hcCatOut); err != nil {
		return nil, err
	}
	cooledHC := ns("cooled_HC")
	h4, err := units.NewHeatExchange("A420", hcOut, cooledHC, 60.+273.15, .5)
	if err != nil {
		return nil, err
	}
	depHC := ns("cooled_depressed_HC")
	v4, err := units.NewValve("A430", cooledHC, depHC, 30.*units.PsiToPa)
	if err != nil {
		return nil, err
	}
	hcGas, hcAq := ns("HC_fuel_gas"), ns("HC_aqueous")
	if p.F3, err = units.NewFlash("A440", depHC, hcGas, hcAq, 60.2+273., 30.*units.PsiToPa); err != nil {
		return nil, err
	}
	hcGasoline, hcDiesel := ns("HC_Gasoline"), ns("HC_Diesel")
	if p.D4, err = units.NewDistillation("A450", hcAq, hcGasoline, hcDiesel,
		[]string{"Gasoline"}, 360./546., 7./708., 20.*units.PsiToPa); err != nil {
		return nil, err
	}

	// blending, CHP and disposal (Area 500)
	mixedGasoline, mixedDiesel := ns("mixed_gasoline"), ns("mixed_diesel")
	gasMix, err := units.NewMixer("S500", []*exposan.Stream{htGasoline, hcGasoline}, mixedGasoline)
	if err != nil {
		return nil, err
	}
	dieselMix, err := units.NewMixer("S510", []*exposan.Stream{htDiesel, hcDiesel}, mixedDiesel)
	if err != nil {
		return nil, err
	}
	cooledGasoline, cooledDiesel := ns("cooled_gasoline"), ns("cooled_diesel")
	h5, err := units.NewHeatExchange("A500", mixedGasoline, cooledGasoline, 60.+273.15, .5)
	if err != nil {
		return nil, err
	}
	h6, err := units.NewHeatExchange("A510", mixedDiesel, cooledDiesel, 60.+273.15, .5)
	if err != nil {
		return nil, err
	}
	gasoline, diesel := ns("gasoline"), ns("diesel")
	gasTank, err := units.NewStorageTank("T500", cooledGasoline, gasoline, 3.*24.)
	if err != nil {
		return nil, err
	}
	dieselTank, err := units.NewStorageTank("T510", cooledDiesel, diesel, 3.*24.)
	if err != nil {
		return nil, err
	}
	p.Fuel = ns("fuel")
	if p.FuelMix, err = units.NewFuelMixer("S570", gasoline, diesel, p.Fuel); err != nil {
		return nil, err
	}
	fuelGas := ns("fuel_gas")
	gm, err := units.NewMixer("S580", []*exposan.Stream{offgas, chgGas, htGas, htLight, hcGas}, fuelGas)
	if err != nil {
		return nil, err
	}
	ng, airS := feed("natural_gas"), feed("air")
	emission, solidAsh := ns("emission"), ns("solid_ash")
	if p.CHP, err = units.NewCHP("CHP", fuelGas, ng, airS, emission, solidAsh); err != nil {
		return nil, err
	}
	wastewater := ns("wastewater")
	wwMix, err := units.NewMixer("S590", []*exposan.Stream{supernatant, memWW, htWW}, wastewater)
	if err != nil {
		return nil, err
	}

	sys.MustAdd(p.WWTP, p.SluC, p.P1, p.H1, p.HTL,
		p.AcidEx, m1, p.StruPre, p.CHG, v1, p.F1, p.MemDis,
		p.P2, p.HT, v2, h2x, p.F2, v3, sp2, h3, p.D1, p.D2, p.D3,
		p.P3, p.HC, h4, v4, p.F3, p.D4,
		gasMix, dieselMix, h5, h6, gasTank, dieselTank, p.FuelMix,
		gm, p.CHP, wwMix)

	for name, u := range map[string]exposan.Unit{
		"WWTP": p.WWTP, "SluC": p.SluC, "P1": p.P1, "H1": p.H1, "HTL": p.HTL,
		"AcidEx": p.AcidEx, "M1": m1, "StruPre": p.StruPre, "CHG": p.CHG,
		"V1": v1, "F1": p.F1, "MemDis": p.MemDis, "P2": p.P2, "HT": p.HT,
		"V2": v2, "H2": h2x, "F2": p.F2, "V3": v3, "SP2": sp2, "H3": h3,
		"D1": p.D1, "D2": p.D2, "D3": p.D3, "P3": p.P3, "HC": p.HC,
		"H4": h4, "V4": v4, "F3": p.F3, "D4": p.D4,
		"GasolineMixer": gasMix, "DieselMixer": dieselMix, "H5": h5, "H6": h6,
		"GasolineTank": gasTank, "DieselTank": dieselTank, "FuelMixer": p.FuelMix,
		"GasMixer": gm, "WWmixer": wwMix,
	} {
		if err := sys.Alias(name, u); err != nil {
			return nil, fmt.Errorf("CreateSystem: %w", err)
		}
	}

	attachTEA(p, cfg)
	attachLCA(p, cfg)
	return p, nil
}

func attachTEA(p *Plant, cfg Config) {
	t := tea.New(p.Sys)
	t.LifetimeYr = cfg.LifetimeYr

	t.AddCapital(p.P1, p.P2, p.P3, p.H1, p.HTL, p.CHG, p.MemDis, p.HT, p.HC, p.CHP)
	t.AddPower(p.P1, p.P2, p.P3, p.CHP)

	price := map[string]float64{
		"H2SO4_P": .00658, "H2SO4_N": .00658,
		"MgCl2": .5452, "NH4Cl": .13, "MgO": .2,
		"CHG_catalyst_in": 134.53, "NaOH": .5256,
		"HT_H2": 1.611, "HC_H2": 1.611,
		"HT_catalyst_in": 38.79, "HC_catalyst_in": 38.79,
		"natural_gas": .1685, "Membrane_in": 93.29,
	}
	for name, pr := range price {
		s := p.feeds[name]
		s.Price = pr
		t.AddFeed(s)
	}
	p.Struvite.Price = .661
	p.AmSulf.Price = .3236
	t.AddProduct(p.Struvite, p.AmSulf, p.Fuel)
	p.TEA = t
}
