// Package tea aggregates discounted cash flows over a simulated
// flowsheet: CEPCI-indexed capital, utility and feedstock costs,
// product revenues, and a goal-seek for the product price that zeroes
// the net present value.
package tea

import (
	"fmt"
	"math"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/wobrien3/EXPOsan"
)

// CapitalItem is any unit reporting an installed cost [$].
type CapitalItem interface {
	InstalledCost() float64
}

// PowerItem is any unit reporting an electric load [kW]; negative
// values are production credits.
type PowerItem interface {
	Power() float64
}

// TEA holds the economic assumptions and the cost/revenue registry of
// one system. Attach after the flowsheet is built; evaluate only after
// it has been simulated.
type TEA struct {
	Sys              *exposan.System
	IRR              float64
	LifetimeYr       int
	CEPCI, BaseCEPCI float64
	ElectricityPrice float64 // $/kWh

	capital []CapitalItem
	power   []PowerItem
	feeds   []*exposan.Stream // purchased, Price $/kg
	prods   []*exposan.Stream // sold, Price $/kg
}

func New(sys *exposan.System) *TEA {
	return &TEA{
		Sys:              sys,
		IRR:              .1,
		LifetimeYr:       30,
		CEPCI:            798.,
		BaseCEPCI:        567.5, // 2017 reference year
		ElectricityPrice: .06879,
	}
}

func (t *TEA) AddCapital(items ...CapitalItem) { t.capital = append(t.capital, items...) }
func (t *TEA) AddPower(items ...PowerItem)     { t.power = append(t.power, items...) }
func (t *TEA) AddFeed(ss ...*exposan.Stream)   { t.feeds = append(t.feeds, ss...) }
func (t *TEA) AddProduct(ss ...*exposan.Stream) {
	t.prods = append(t.prods, ss...)
}

// CAPEX returns total installed capital, indexed to the current CEPCI.
func (t *TEA) CAPEX() float64 {
	c := 0.
	for _, it := range t.capital {
		c += it.InstalledCost()
	}
	return c * t.CEPCI / t.BaseCEPCI
}

// AOC returns the annual operating cost: purchased feeds plus net
// electricity at the operating hours of the system.
func (t *TEA) AOC() float64 {
	h := t.Sys.OperatingHours
	c := 0.
	for _, s := range t.feeds {
		c += s.Price * s.FMass() * h
	}
	kw := 0.
	for _, p := range t.power {
		kw += p.Power()
	}
	c += kw * h * t.ElectricityPrice
	return c
}

// Revenue returns annual product sales.
func (t *TEA) Revenue() float64 {
	h := t.Sys.OperatingHours
	r := 0.
	for _, s := range t.prods {
		r += s.Price * s.FMass() * h
	}
	return r
}

// NPV discounts the annual net cash flow over the project lifetime
// against the capital outlay.
func (t *TEA) NPV() float64 {
	annual := t.Revenue() - t.AOC()
	pv := 0.
	for y := 1; y <= t.LifetimeYr; y++ {
		pv += annual / math.Pow(1.+t.IRR, float64(y))
	}
	return pv - t.CAPEX()
}

// SolvePrice finds the price [$ /kg] of the target product stream that
// zeroes the NPV, searching [0, maxPrice] by Fibonacci minimization of
// |NPV|. The stream must already be registered as a product.
func (t *TEA) SolvePrice(target *exposan.Stream, maxPrice float64) (float64, error) {
	if target.FMass() <= 0. {
		return math.NaN(), fmt.Errorf("SolvePrice: product stream %s carries no flow", target.ID)
	}
	found := false
	for _, s := range t.prods {
		if s == target {
			found = true
		}
	}
	if !found {
		return math.NaN(), fmt.Errorf("SolvePrice: stream %s is not a registered product", target.ID)
	}
	p0 := target.Price
	defer func() { target.Price = p0 }()
	opt := func(u float64) float64 {
		target.Price = mmaths.LinearTransform(0., maxPrice, u)
		return math.Abs(t.NPV())
	}
	u, _ := glbopt.Fibonacci(opt)
	return mmaths.LinearTransform(0., maxPrice, u), nil
}
