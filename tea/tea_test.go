package tea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wobrien3/EXPOsan"
)

type fixedCost float64

func (f fixedCost) InstalledCost() float64 { return float64(f) }

type fixedPower float64

func (f fixedPower) Power() float64 { return float64(f) }

func fixture(t *testing.T) (*TEA, *exposan.Stream) {
	cs, err := exposan.NewComponents(exposan.Component{ID: "Product"}, exposan.Component{ID: "Feed"})
	require.NoError(t, err)
	sys := exposan.NewSystem("sys", cs)
	sys.OperatingHours = 8000.

	te := New(sys)
	te.CEPCI, te.BaseCEPCI = 567.5, 567.5 // no indexing in the fixture

	prod := exposan.NewStream("product", cs)
	require.NoError(t, prod.SetImass("Product", 1000.)) // kg/h
	te.AddProduct(prod)

	feed := exposan.NewStream("feed", cs)
	require.NoError(t, feed.SetImass("Feed", 500.))
	feed.Price = .1
	te.AddFeed(feed)

	te.AddCapital(fixedCost(1e7))
	te.AddPower(fixedPower(100.))
	return te, prod
}

func TestNPVComponents(t *testing.T) {
	te, prod := fixture(t)
	prod.Price = 1.

	assert.InDelta(t, 1e7, te.CAPEX(), 1e-6)
	aoc := 500.*.1*8000. + 100.*8000.*te.ElectricityPrice
	assert.InDelta(t, aoc, te.AOC(), 1e-6)
	assert.InDelta(t, 1000.*1.*8000., te.Revenue(), 1e-6)

	// 30 yr at 10%: annuity factor ~9.427
	te.IRR = .1
	npv := te.NPV()
	assert.Greater(t, npv, 0.)
}

func TestSolvePriceZeroesNPV(t *testing.T) {
	te, prod := fixture(t)
	p, err := te.SolvePrice(prod, 5.)
	require.NoError(t, err)
	prod.Price = p
	assert.InDelta(t, 0., te.NPV(), te.CAPEX()*.01, "NPV ~0 at the solved price")
	assert.Equal(t, 0., prod.Price-p) // solved price applied by caller, stream restored
}

func TestSolvePriceErrors(t *testing.T) {
	te, prod := fixture(t)
	cs := prod.Components()
	other := exposan.NewStream("other", cs)
	require.NoError(t, other.SetImass("Product", 10.))
	_, err := te.SolvePrice(other, 5.)
	assert.Error(t, err, "unregistered product")

	prod.Empty()
	_, err = te.SolvePrice(prod, 5.)
	assert.Error(t, err, "zero flow")
}
