package units

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
)

// SludgeCentrifuge dewaters sludge to a target cake moisture; all
// solids report to the cake, excess water to the supernatant.
type SludgeCentrifuge struct {
	exposan.Base
	Solids         []string
	SludgeMoisture float64
}

func NewSludgeCentrifuge(id string, in, supernatant, cake *exposan.Stream, solids []string) (*SludgeCentrifuge, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{supernatant, cake})
	if err != nil {
		return nil, err
	}
	u := &SludgeCentrifuge{Base: b, Solids: solids, SludgeMoisture: .8}
	u.Claim(u)
	return u, nil
}

func (u *SludgeCentrifuge) Simulate() error {
	in, sup, cake := u.In(0), u.Out(0), u.Out(1)
	sup.Empty()
	cake.Empty()
	dry := 0.
	for _, s := range u.Solids {
		m := in.Imass(s)
		cake.SetImass(s, m)
		dry += m
	}
	cakeWater := dry * u.SludgeMoisture / (1. - u.SludgeMoisture)
	avail := in.Imass("H2O")
	if cakeWater > avail {
		return fmt.Errorf("centrifuge %s: cake moisture %g infeasible", u.ID(), u.SludgeMoisture)
	}
	cake.SetImass("H2O", cakeWater)
	sup.CopyFlow(in)
	for _, s := range u.Solids {
		sup.SetImass(s, 0.)
	}
	sup.SetImass("H2O", avail-cakeWater)
	return nil
}

// Splitter sends a fixed fraction of the named components to the first
// outlet; everything else goes to the second.
type Splitter struct {
	exposan.Base
	Split map[string]float64
}

func NewSplitter(id string, in, top, bot *exposan.Stream, split map[string]float64) (*Splitter, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{top, bot})
	if err != nil {
		return nil, err
	}
	u := &Splitter{Base: b, Split: split}
	u.Claim(u)
	return u, nil
}

func (u *Splitter) Simulate() error {
	in, top, bot := u.In(0), u.Out(0), u.Out(1)
	top.Empty()
	bot.Empty()
	top.T, top.P = in.T, in.P
	bot.T, bot.P = in.T, in.P
	cs := in.Components()
	for i, m := range in.Mass {
		f := u.Split[cs.At(i).ID]
		top.Mass[i] = m * f
		bot.Mass[i] = m * (1. - f)
	}
	return nil
}

// Flash separates gas-phase components overhead at the given T and P.
// GasRecovery below 1 leaves the balance dissolved in the liquid for a
// downstream stabilizer column to strip.
type Flash struct {
	exposan.Base
	T, P        float64
	GasRecovery float64
}

func NewFlash(id string, in, vapor, liquid *exposan.Stream, T, P float64) (*Flash, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{vapor, liquid})
	if err != nil {
		return nil, err
	}
	u := &Flash{Base: b, T: T, P: P, GasRecovery: 1.}
	u.Claim(u)
	return u, nil
}

func (u *Flash) Simulate() error {
	in, v, l := u.In(0), u.Out(0), u.Out(1)
	v.Empty()
	l.Empty()
	v.T, v.P, v.Phase = u.T, u.P, 'g'
	l.T, l.P = u.T, u.P
	cs := in.Components()
	for i, m := range in.Mass {
		if cs.At(i).Phase == 'g' {
			v.Mass[i] = m * u.GasRecovery
			l.Mass[i] = m * (1. - u.GasRecovery)
		} else {
			l.Mass[i] = m
		}
	}
	return nil
}

// Distillation splits a light/heavy key pair: recovery of the light
// key overhead (YTop) and leakage of everything heavier (XBot), the
// split fractions of the corresponding column in the upgrading train.
type Distillation struct {
	exposan.Base
	LightKeys  []string
	YTop, XBot float64
	P          float64
}

func NewDistillation(id string, in, top, bot *exposan.Stream, lightKeys []string, yTop, xBot, P float64) (*Distillation, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{top, bot})
	if err != nil {
		return nil, err
	}
	u := &Distillation{Base: b, LightKeys: lightKeys, YTop: yTop, XBot: xBot, P: P}
	u.Claim(u)
	return u, nil
}

func (u *Distillation) Simulate() error {
	in, top, bot := u.In(0), u.Out(0), u.Out(1)
	top.Empty()
	bot.Empty()
	top.P, bot.P = u.P, u.P
	top.T, bot.T = in.T, in.T
	light := map[string]bool{}
	for _, k := range u.LightKeys {
		light[k] = true
	}
	cs := in.Components()
	for i, m := range in.Mass {
		if light[cs.At(i).ID] {
			top.Mass[i] = m * u.YTop
			bot.Mass[i] = m * (1. - u.YTop)
		} else {
			top.Mass[i] = m * u.XBot
			bot.Mass[i] = m * (1. - u.XBot)
		}
	}
	return nil
}
