package metab

import (
	"fmt"

	"github.com/wobrien3/EXPOsan/lca"
)

const ngLHVPerM3 = 39. // MJ/m³ natural gas

// gwp fills the indicator set with a single global-warming factor; the
// other categories are carried as zeros so screening stays well-formed.
func gwp(v float64) lca.CFs {
	cfs := make(lca.CFs, len(lca.Indicators))
	for _, ind := range lca.Indicators {
		cfs[ind] = 0.
	}
	cfs["GlobalWarming"] = v
	return cfs
}

func attachLCA(p *Plant, cfg Config) {
	l := lca.New(p.Sys, float64(cfg.LifetimeYr))

	// fugitive methane leaving dissolved in liquid products
	for _, s := range p.Sys.Products() {
		if s.Phase != 'l' {
			continue
		}
		s := s
		cfs := gwp(28.)
		cfs["PhotochemicalOxidation"] = .0143794871794872 // MIR of CH4
		l.Add(&lca.Item{
			ID:  fmt.Sprintf("%s_fugitive_ch4", s.ID),
			CFs: cfs,
			Flow: func() float64 { return s.Imass("S_ch4") },
		})
	}

	// recovered biogas displaces natural gas on an LHV basis
	for _, bg := range p.biogasStreams() {
		bg := bg
		l.Add(&lca.Item{
			ID:  fmt.Sprintf("%s_NG_offset", bg.ID),
			CFs: gwp(-2.02), // per m³ natural-gas equivalent
			Flow: func() float64 { return bg.LHV() / ngLHVPerM3 },
		})
	}

	addChem := func(name string, factor float64) {
		if s, ok := p.feeds[name]; ok {
			l.Add(&lca.Item{ID: name + "_item", CFs: gwp(factor), Stream: s})
		}
	}
	addChem("NaOCl", .92)
	addChem("citric_acid", 5.9)
	addChem("NaOCl_s", .92)
	addChem("citric_acid_s", 5.9)

	l.ElecCFs = gwp(.48)
	l.Electricity = func() float64 {
		kw := p.R1.Power() + p.DMe.Power()
		if p.R2 != nil {
			kw += p.R2.Power()
		}
		if p.DMs != nil {
			kw += p.DMs.Power()
		}
		return kw * p.Sys.OperatingHours * l.LifetimeYr
	}
	p.LCA = l
}

// FugitiveCH4 reports the total dissolved methane leaving with liquid
// products [kg/h].
func (p *Plant) FugitiveCH4() float64 {
	f := 0.
	for _, s := range p.Sys.Products() {
		if s.Phase == 'l' {
			f += s.Imass("S_ch4")
		}
	}
	return f
}

// NGEquivalent reports the recovered-biogas natural-gas equivalent
// [m³/h] across all gas products.
func (p *Plant) NGEquivalent() float64 {
	v := 0.
	for _, bg := range p.biogasStreams() {
		v += bg.LHV() / ngLHVPerM3
	}
	return v
}
