package bsm1

import (
	"math"

	"github.com/wobrien3/EXPOsan"
)

const nLayers = 10

// Settler is a one-dimensional ten-layer secondary clarifier with the
// double-exponential settling velocity. The layer states are total
// suspended solids [g/m³]; solubles pass through with the water split
// and particulates leave scaled to the top and bottom layer profiles.
type Settler struct {
	exposan.Base
	AM2        float64 // surface area
	HM         float64 // layer height
	V0         float64 // m/d
	VMax       float64 // m/d
	Rh         float64 // m³/g
	Rp         float64 // m³/g
	Fns        float64 // non-settleable fraction
	Xt         float64 // threshold TSS, g/m³
	FeedLayer  int     // 0-based from the surface
	QUnderM3pd float64
	Init       []float64
}

func NewSettler(id string, in, eff, under *exposan.Stream, area, qUnder float64) (*Settler, error) {
	b, err := exposan.NewBase(id, []*exposan.Stream{in}, []*exposan.Stream{eff, under})
	if err != nil {
		return nil, err
	}
	u := &Settler{
		Base:       b,
		AM2:        area,
		HM:         .4,
		V0:         474.,
		VMax:       250.,
		Rh:         5.76e-4,
		Rp:         2.86e-3,
		Fns:        2.28e-3,
		Xt:         3000.,
		FeedLayer:  4,
		QUnderM3pd: qUnder,
		Init:       []float64{12.5, 18.1, 29.5, 69., 356., 356., 356., 356., 356., 6394.},
	}
	u.Claim(u)
	return u, nil
}

// feed returns the hydraulic load [m³/d] and feed TSS [g/m³].
func (u *Settler) feed() (qf, xf float64) {
	in := u.In(0)
	qf = in.Imass("H2O") / 1000. * 24.
	if qf <= 0. {
		return 0., 0.
	}
	m := 0.
	for _, i := range particulates {
		m += in.Imass(stateIDs[i])
	}
	return qf, .75 * m * 24000. / qf
}

// vs is the double-exponential settling velocity [m/d], clipped to
// [0, VMax], with the non-settleable floor xmin subtracted first.
func (u *Settler) vs(x, xmin float64) float64 {
	xs := pos(x - xmin)
	return math.Max(0., math.Min(u.VMax, u.V0*(math.Exp(-u.Rh*xs)-math.Exp(-u.Rp*xs))))
}

func (u *Settler) StateLen() int { return nLayers }

func (u *Settler) InitState() []float64 {
	y := make([]float64, nLayers)
	copy(y, u.Init)
	return y
}

func (u *Settler) Derivs(t float64, y, dydt []float64) {
	qf, xf := u.feed()
	qe := pos(qf - u.QUnderM3pd)
	vup := qe / u.AM2
	vdn := u.QUnderM3pd / u.AM2
	xmin := u.Fns * xf

	var v [nLayers]float64
	for j := range v {
		v[j] = u.vs(y[j], xmin)
	}
	// settling flux leaving layer j downward; below the feed (and above
	// it once the receiving layer passes the threshold) the flux is
	// limited by what the layer below can carry
	var js [nLayers]float64
	for j := 0; j < nLayers-1; j++ {
		js[j] = v[j] * pos(y[j])
		if j >= u.FeedLayer || pos(y[j+1]) > u.Xt {
			js[j] = math.Min(js[j], v[j+1]*pos(y[j+1]))
		}
	}

	for j := 0; j < nLayers; j++ {
		var dx float64
		switch {
		case j == 0:
			dx = vup*(y[1]-y[0]) - js[0]
		case j < u.FeedLayer:
			dx = vup*(y[j+1]-y[j]) + js[j-1] - js[j]
		case j == u.FeedLayer:
			dx = qf*xf/u.AM2 - (vup+vdn)*y[j] + js[j-1] - js[j]
		case j < nLayers-1:
			dx = vdn*(y[j-1]-y[j]) + js[j-1] - js[j]
		default:
			dx = vdn*(y[j-1]-y[j]) + js[j-1]
		}
		dydt[j] = dx / u.HM
	}
}

func (u *Settler) WriteOuts(y []float64) {
	in, eff, under := u.In(0), u.Out(0), u.Out(1)
	eff.Empty()
	under.Empty()

	qf, xf := u.feed()
	if qf <= 0. {
		return
	}
	qu := math.Min(u.QUnderM3pd, qf)
	qe := qf - qu
	eff.SetImass("H2O", qe*1000./24.)
	under.SetImass("H2O", qu*1000./24.)

	rTop, rBot := 0., 0.
	if xf > 0. {
		rTop = pos(y[0]) / xf
		rBot = pos(y[nLayers-1]) / xf
	}
	for _, id := range stateIDs {
		m := in.Imass(id)
		if id[0] == 'X' {
			eff.SetImass(id, m*rTop*qe/qf)
			under.SetImass(id, m*rBot*qu/qf)
		} else {
			eff.SetImass(id, m*qe/qf)
			under.SetImass(id, m*qu/qf)
		}
	}
}

// Simulate writes outlets from the initial state; dynamic behavior
// comes from SimulateDynamic.
func (u *Settler) Simulate() error {
	u.WriteOuts(u.InitState())
	return nil
}
