package units

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
)

// HTL converts dewatered sludge into biochar, an aqueous phase,
// biocrude and offgas through empirical yield correlations on an
// ash-free dry-weight basis (Li et al. style slope/intercept pairs for
// the elemental distributions). Tracked C, N and P are conserved
// across the four outlets.
type HTL struct {
	exposan.Base
	Lipid2Biocrude   float64
	Protein2Biocrude float64
	Carbo2Biocrude   float64
	Protein2Gas      float64
	Carbo2Gas        float64
	Protein2Aqueous  float64
	Lipid2Aqueous    float64

	BiocrudeCSlope     float64
	BiocrudeCIntercept float64
	BiocrudeNSlope     float64
	BiocrudeHSlope     float64
	BiocrudeHIntercept float64
	HTLaqueousCSlope   float64
	TOCTC              float64
	BiocharCSlope      float64
	BiocrudeMoisture   float64
	BiocharPRecovery   float64
	CAPEXFactor        float64

	// elemental bookkeeping, read by metrics and downstream units
	BiocrudeC, BiocrudeN, BiocrudeH          float64 // kg/h
	BiocharC, BiocharP                       float64
	HTLaqueousC, HTLaqueousN, HTLaqueousP    float64
	OffgasC                                  float64
	BiocrudeHHV                              float64 // MJ/kg

	src *WWTP // sludge characterization source
}

func NewHTL(id string, in, biochar, aqueous, biocrude, offgas *exposan.Stream, src *WWTP) (*HTL, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{biochar, aqueous, biocrude, offgas})
	if err != nil {
		return nil, err
	}
	u := &HTL{
		Base:               b,
		Lipid2Biocrude:     .846,
		Protein2Biocrude:   .445,
		Carbo2Biocrude:     .205,
		Protein2Gas:        .074,
		Carbo2Gas:          .418,
		Protein2Aqueous:    .481,
		Lipid2Aqueous:      .154,
		BiocrudeCSlope:     -8.37,
		BiocrudeCIntercept: 68.55,
		BiocrudeNSlope:     .133,
		BiocrudeHSlope:     -2.61,
		BiocrudeHIntercept: 8.2,
		HTLaqueousCSlope:   478.,
		TOCTC:              .764,
		BiocharCSlope:      1.75,
		BiocrudeMoisture:   .063,
		BiocharPRecovery:   .86,
		CAPEXFactor:        1.,
		src:                src,
	}
	u.Claim(u)
	return u, nil
}

func (u *HTL) Simulate() error {
	in := u.In(0)
	biochar, aqueous, biocrude, offgas := u.Out(0), u.Out(1), u.Out(2), u.Out(3)

	lipid := in.Imass("Sludge_lipid")
	protein := in.Imass("Sludge_protein")
	carbo := in.Imass("Sludge_carbo")
	ash := in.Imass("Sludge_ash")
	water := in.Imass("H2O")
	afdw := lipid + protein + carbo
	if afdw <= 0. {
		return fmt.Errorf("HTL %s: no ash-free dry feed", u.ID())
	}
	lf, pf, cf := lipid/afdw, protein/afdw, carbo/afdw

	crudeY := u.Lipid2Biocrude*lf + u.Protein2Biocrude*pf + u.Carbo2Biocrude*cf
	gasY := u.Protein2Gas*pf + u.Carbo2Gas*cf
	aqY := u.Protein2Aqueous*pf + u.Lipid2Aqueous*lf
	charY := 1. - crudeY - gasY - aqY
	if charY < 0. {
		return fmt.Errorf("HTL %s: yields exceed unity (crude %.3f gas %.3f aq %.3f)", u.ID(), crudeY, gasY, aqY)
	}

	crudeDry := crudeY * afdw
	gasM := gasY * afdw
	charDry := charY*afdw + ash

	// elemental split
	sludgeC, sludgeN, sludgeP := u.src.SludgeC, u.src.SludgeN, u.src.SludgeP
	crudeCfrac := (u.BiocrudeCSlope*lf + u.BiocrudeCIntercept) / 100.
	crudeHfrac := (u.BiocrudeHSlope*lf + u.BiocrudeHIntercept) / 100.
	u.BiocrudeC = min2(crudeDry*crudeCfrac, sludgeC)
	u.BiocrudeN = min2(crudeDry*u.BiocrudeNSlope*pf, sludgeN)
	u.BiocrudeH = crudeDry * crudeHfrac
	u.BiocrudeHHV = dulong(crudeCfrac, crudeHfrac, 1.-crudeCfrac-crudeHfrac-u.BiocrudeNSlope*pf)

	charCfrac := min2(u.BiocharCSlope*sludgeC/u.src.SludgeAfdw*charY, .78)
	u.BiocharC = min2(charDry*charCfrac, sludgeC-u.BiocrudeC)
	u.BiocharP = u.BiocharPRecovery * sludgeP

	// offgas fixed at 25% CH4 / 75% CO2 by mass
	ch4, co2 := .25*gasM, .75*gasM
	gasC := ch4*12./16. + co2*12./44.
	if gasC > sludgeC-u.BiocrudeC-u.BiocharC {
		gasC = sludgeC - u.BiocrudeC - u.BiocharC
	}
	u.OffgasC = gasC

	u.HTLaqueousC = sludgeC - u.BiocrudeC - u.BiocharC - u.OffgasC
	u.HTLaqueousN = sludgeN - u.BiocrudeN
	u.HTLaqueousP = sludgeP - u.BiocharP

	// outlet streams
	biochar.Empty()
	biochar.SetImass("Biochar", charDry)

	crudeWater := crudeDry * u.BiocrudeMoisture / (1. - u.BiocrudeMoisture)
	biocrude.Empty()
	biocrude.SetImass("Biocrude", crudeDry)
	biocrude.SetImass("H2O", crudeWater)

	offgas.Empty()
	offgas.Phase = 'g'
	offgas.SetImass("CH4", ch4)
	offgas.SetImass("CO2", co2)

	aqueous.Empty()
	aqueous.SetImass("C", u.HTLaqueousC)
	aqueous.SetImass("N", u.HTLaqueousN)
	aqueous.SetImass("P", u.HTLaqueousP)
	other := aqY*afdw - u.HTLaqueousC - u.HTLaqueousN - u.HTLaqueousP
	if other < 0. {
		other = 0.
	}
	aqueous.SetImass("Residual", other)
	aqueous.SetImass("H2O", water-crudeWater)
	return nil
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
