// Package lca aggregates life-cycle impacts over a simulated
// flowsheet: per-kg characterization factors on material streams,
// operation items for electricity and cooling, totalled over the
// project lifetime.
package lca

import (
	"fmt"

	"github.com/wobrien3/EXPOsan"
)

// Indicators is the impact-category set every item characterizes.
var Indicators = []string{
	"Acidification",
	"Ecotoxicity",
	"Eutrophication",
	"GlobalWarming",
	"OzoneDepletion",
	"PhotochemicalOxidation",
	"Carcinogenics",
	"NonCarcinogenics",
	"RespiratoryEffects",
}

// CFs maps indicator → characterization factor (impact per kg, or per
// kWh for operation items). Negative factors are displacement credits.
type CFs map[string]float64

// Item ties characterization factors to a material flow: either a
// linked stream (flow read at evaluation time) or a custom flow getter.
type Item struct {
	ID     string
	CFs    CFs
	Stream *exposan.Stream
	Flow   func() float64 // kg/h, overrides Stream when set
}

func (it *Item) flow() float64 {
	if it.Flow != nil {
		return it.Flow()
	}
	if it.Stream != nil {
		return it.Stream.FMass()
	}
	return 0.
}

// LCA is the impact registry of one system.
type LCA struct {
	Sys        *exposan.System
	LifetimeYr float64

	items       []*Item
	Electricity func() float64 // kWh over lifetime
	Cooling     func() float64 // MJ over lifetime
	ElecCFs     CFs            // per kWh
	CoolCFs     CFs            // per MJ
}

func New(sys *exposan.System, lifetimeYr float64) *LCA {
	return &LCA{Sys: sys, LifetimeYr: lifetimeYr}
}

// Add registers a stream-linked impact item; the stream must belong to
// an already-built flowsheet.
func (l *LCA) Add(it *Item) *Item {
	l.items = append(l.items, it)
	return it
}

func (l *LCA) Items() []*Item { return l.items }

// Item returns a registered item by ID.
func (l *LCA) Item(id string) (*Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// TotalImpacts sums lifetime impacts per indicator: material items at
// their converged flows times operating hours times lifetime, plus the
// electricity and cooling operation items.
func (l *LCA) TotalImpacts() (map[string]float64, error) {
	h := l.Sys.OperatingHours
	out := make(map[string]float64, len(Indicators))
	for _, ind := range Indicators {
		t := 0.
		for _, it := range l.items {
			cf, ok := it.CFs[ind]
			if !ok {
				return nil, fmt.Errorf("lca: item %s missing factor for %s", it.ID, ind)
			}
			t += cf * it.flow() * h * l.LifetimeYr
		}
		if l.Electricity != nil {
			t += l.ElecCFs[ind] * l.Electricity()
		}
		if l.Cooling != nil {
			t += l.CoolCFs[ind] * l.Cooling()
		}
		out[ind] = t
	}
	return out, nil
}

// UncertaintyParams generates the ±10% uniform parameter per (item,
// indicator) pair, the convention for characterization-factor
// uncertainty screening.
func (l *LCA) UncertaintyParams() []*exposan.Parameter {
	var ps []*exposan.Parameter
	for _, it := range l.items {
		for _, ind := range Indicators {
			base, ok := it.CFs[ind]
			if !ok || base == 0. {
				continue
			}
			lo, hi := .9*base, 1.1*base
			if lo > hi {
				lo, hi = hi, lo
			}
			it, ind := it, ind
			ps = append(ps, &exposan.Parameter{
				Name:     fmt.Sprintf("%s_%s", it.ID, ind),
				Element:  "LCA",
				Units:    "per kg",
				Baseline: base,
				Dist:     exposan.Uniform(lo, hi),
				Set:      func(v float64) { it.CFs[ind] = v },
			})
		}
	}
	return ps
}
