package bsm1

import "math"

// ASM1 holds the Activated Sludge Model No. 1 stoichiometric and
// kinetic constants. Rate constants are per day, concentrations g/m³.
type ASM1 struct {
	MuH  float64 // heterotrophic max growth
	KS   float64
	KOH  float64
	KNO  float64
	BH   float64 // heterotrophic decay
	EtaG float64 // anoxic growth correction
	EtaH float64 // anoxic hydrolysis correction
	Kh   float64 // hydrolysis rate
	KX   float64
	MuA  float64 // autotrophic max growth
	KNH  float64
	BA   float64 // autotrophic decay
	KOA  float64
	Ka   float64 // ammonification rate
	YH   float64
	YA   float64
	FP   float64 // inert fraction of decayed biomass
	IXB  float64 // N content of biomass
	IXP  float64 // N content of decay products

	SOSat float64 // oxygen saturation, g/m³
}

// DefaultASM1 returns the benchmark constant set (15 °C).
func DefaultASM1() ASM1 {
	return ASM1{
		MuH: 4., KS: 10., KOH: .2, KNO: .5, BH: .3,
		EtaG: .8, EtaH: .8, Kh: 3., KX: .1,
		MuA: .5, KNH: 1., BA: .05, KOA: .4, Ka: .05,
		YH: .67, YA: .24, FP: .08, IXB: .08, IXP: .06,
		SOSat: 8.,
	}
}

func pos(v float64) float64 { return math.Max(0., v) }

// Rates adds the eight-process reaction terms to dcdt [g/m³/d].
func (p ASM1) Rates(c, dcdt []float64) {
	ss, xs := pos(c[iSS]), pos(c[iXS])
	xbh, xba := pos(c[iXBH]), pos(c[iXBA])
	so, sno := pos(c[iSO]), pos(c[iSNO])
	snh, snd, xnd := pos(c[iSNH]), pos(c[iSND]), pos(c[iXND])

	aer := so / (p.KOH + so)
	anx := p.KOH / (p.KOH + so) * sno / (p.KNO + sno)

	r1 := p.MuH * ss / (p.KS + ss) * aer * xbh // aerobic heterotrophic growth
	r2 := p.MuH * ss / (p.KS + ss) * anx * p.EtaG * xbh
	r3 := p.MuA * snh / (p.KNH + snh) * so / (p.KOA + so) * xba
	r4 := p.BH * xbh
	r5 := p.BA * xba
	r6 := p.Ka * snd * xbh
	var r7, r8 float64
	if xbh > 0. {
		r7 = p.Kh * (xs / xbh) / (p.KX + xs/xbh) * (aer + p.EtaH*anx) * xbh
		if xs > 0. {
			r8 = r7 * xnd / xs
		}
	}

	dcdt[iSS] += -(r1+r2)/p.YH + r7
	dcdt[iXS] += (1.-p.FP)*(r4+r5) - r7
	dcdt[iXBH] += r1 + r2 - r4
	dcdt[iXBA] += r3 - r5
	dcdt[iXP] += p.FP * (r4 + r5)
	dcdt[iSO] += -(1.-p.YH)/p.YH*r1 - (4.57-p.YA)/p.YA*r3
	dcdt[iSNO] += -(1.-p.YH)/(2.86*p.YH)*r2 + r3/p.YA
	dcdt[iSNH] += -p.IXB*(r1+r2) - (p.IXB+1./p.YA)*r3 + r6
	dcdt[iSND] += -r6 + r8
	dcdt[iXND] += (p.IXB-p.FP*p.IXP)*(r4+r5) - r8
	dcdt[iSALK] += -p.IXB/14.*r1 +
		((1.-p.YH)/(14.*2.86*p.YH)-p.IXB/14.)*r2 -
		(p.IXB/14.+1./(7.*p.YA))*r3 + r6/14.
}
