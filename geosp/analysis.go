package geosp

import (
	"fmt"
	"math"
)

// Record pairs a facility with its assigned refinery, distances and
// state electricity factors. DrivingKm is NaN when the routing client
// failed for the record; the record itself is kept.
type Record struct {
	Facility
	Refinery  Refinery
	LinearKm  float64
	DrivingKm float64

	ElecPriceCtPerKWh float64
	ElecGHGkgPerKWh   float64
}

// Analyze assigns each facility its nearest refinery, resolves driving
// distances through dc (nil skips routing, leaving NaN) and joins the
// state electricity table. Facilities in a state missing from the
// table are an input error.
func Analyze(facs []Facility, refs []Refinery, states []StateEnergy, dc DistanceClient) ([]Record, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("geosp: no refineries to assign")
	}
	byState := make(map[string]StateEnergy, len(states))
	for _, se := range states {
		if _, ok := byState[se.Name]; ok {
			return nil, fmt.Errorf("geosp: duplicate state %s in electricity table", se.Name)
		}
		byState[se.Name] = se
	}

	out := make([]Record, 0, len(facs))
	for i := range facs {
		f := facs[i]
		j, km := NearestRefinery(&f, refs)
		r := Record{Facility: f, Refinery: refs[j], LinearKm: km, DrivingKm: math.NaN()}

		se, ok := byState[f.State]
		if !ok {
			return nil, fmt.Errorf("geosp: facility %s: state %s not in electricity table", f.Name, f.State)
		}
		r.ElecPriceCtPerKWh, r.ElecGHGkgPerKWh = se.PriceCtPerKWh, se.GHGkgPerKWh

		if dc != nil {
			if v, err := dc.DrivingKm(f.Lat, f.Lon, r.Refinery.Lat, r.Refinery.Lon); err == nil {
				r.DrivingKm = v
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// ratio guards the per-facility intensities: zero or non-finite
// denominators yield NaN instead of Inf.
func ratio(num, den float64) float64 {
	if den == 0. || math.IsNaN(den) || math.IsInf(den, 0) {
		return math.NaN()
	}
	return num / den
}

// EmissionPerFlow is total emission per unit flow [kg CO2e/d per MGD].
func (r *Record) EmissionPerFlow() float64 {
	return ratio(r.TotalEmission(), r.FlowMGD)
}

// SludgePerFlow is total sludge per unit flow [kg/yr per MGD].
func (r *Record) SludgePerFlow() float64 {
	return ratio(r.TotalSludge(), r.FlowMGD)
}

// SludgePerKm is total sludge per driving kilometre to the assigned
// refinery [kg/yr/km]; NaN when routing failed or distance is zero.
func (r *Record) SludgePerKm() float64 {
	return ratio(r.TotalSludge(), r.DrivingKm)
}
