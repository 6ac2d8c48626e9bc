// Package bsm1 implements the activated-sludge benchmark plant: five
// ASM1 reactors in series (two anoxic, three aerated) with nitrate and
// sludge recycles and a ten-layer double-exponential settler,
// integrated dynamically to its open-loop steady state.
package bsm1

import "github.com/wobrien3/EXPOsan"

// state variable order shared by the kinetics, reactors and settler
var stateIDs = []string{
	"S_I", "S_S", "X_I", "X_S", "X_BH", "X_BA", "X_P",
	"S_O", "S_NO", "S_NH", "S_ND", "X_ND", "S_ALK",
}

// indices into the state vector
const (
	iSI = iota
	iSS
	iXI
	iXS
	iXBH
	iXBA
	iXP
	iSO
	iSNO
	iSNH
	iSND
	iXND
	iSALK
	nStates
)

// particulate states contributing to TSS (0.75 g TSS per g COD)
var particulates = []int{iXI, iXS, iXBH, iXBA, iXP}

// CreateComponents builds the registry: water plus the thirteen ASM1
// state variables (COD, nitrogen and alkalinity units per the model).
func CreateComponents() (*exposan.Components, error) {
	cmps := make([]exposan.Component, 0, nStates+1)
	cmps = append(cmps, exposan.Component{ID: "H2O", Phase: 'l', MW: 18.02})
	for _, id := range stateIDs {
		ph := byte('l')
		if id[0] == 'X' {
			ph = 's'
		}
		cmps = append(cmps, exposan.Component{ID: id, Phase: ph})
	}
	return exposan.NewComponents(cmps...)
}
