package units

import "math"

// Installed-cost correlations: power-law scaling from reference
// capacities (Jones-style sixth-tenths costing, 2017 dollars). The
// CAPEX factors on the reactors are the uncertainty handles used by
// the economic overlay.

func (u *Pump) InstalledCost() float64 {
	return 24800. * math.Pow(math.Max(u.PowerKW, 1e-3)/100., .6)
}

func (u *HeatExchange) InstalledCost() float64 {
	return 12000. * math.Pow(math.Max(u.AreaM2, 1e-3)/100., .65)
}

func (u *StorageTank) InstalledCost() float64 {
	return 18000. * math.Pow(math.Max(u.VolumeM3, 1e-3)/500., .57)
}

func (u *HTL) InstalledCost() float64 {
	feed := u.In(0).FMass()
	return u.CAPEXFactor * 17e6 * math.Pow(feed/61000., .77)
}

func (u *CHG) InstalledCost() float64 {
	feed := u.In(0).FMass()
	return u.CAPEXFactor * 9.6e6 * math.Pow(feed/16000., .65)
}

func (u *Hydrotreater) InstalledCost() float64 {
	feed := u.In(0).Imass("Biocrude")
	return u.CAPEXFactor * 27e6 * math.Pow(math.Max(feed, 1e-3)/5000., .6)
}

func (u *Hydrocracker) InstalledCost() float64 {
	feed := u.In(0).Imass("HeavyOil")
	return 2.5e6 * math.Pow(math.Max(feed, 1e-3)/500., .6)
}

func (u *CHP) InstalledCost() float64 {
	return u.UnitCAPEX * u.PowerKW
}

func (u *MembraneDistillation) InstalledCost() float64 {
	return u.MembranePrice * u.AreaM2 * u.M2ToM3 * 1000.
}
