// Package units provides the unit-operation models shared by the
// resource-recovery flowsheets: empirical yield correlations and
// conservation-law balances over exposan streams. All correlations use
// explicit unit conversions; no implicit coercion.
package units

const (
	PsiToPa    = 6894.76   // lbf/in² to Pa
	MGDToM3ph  = 157.7255  // million US gal/d to m³/h
	MJToMMBTU  = 1. / 1055.06 // MJ to MMBTU
	KgToG      = 1000.
	DieselLHV  = 45.5  // MJ/kg
	DieselGal  = 3.220 // kg per US gal
	GasolineLHV = 43.4 // MJ/kg

	MWStruvite = 245.41  // MgNH4PO4·6H2O g/mol
	MWAmSulf   = 132.14  // (NH4)2SO4 g/mol
	MWN        = 14.0067 // g/mol
	MWP        = 30.973  // g/mol
	MWMgCl2    = 95.211  // g/mol
	MWMgO      = 40.304  // g/mol
	MWNH4Cl    = 53.491  // g/mol
	MWH2SO4    = 98.079  // g/mol
)

// dulong estimates a higher heating value [MJ/kg] from elemental mass
// fractions (O by difference against C+H+ash+N).
func dulong(c, h, o float64) float64 {
	return 33.86*c + 144.4*(h-o/8.)
}
