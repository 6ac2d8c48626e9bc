package exposan

import "fmt"

// Unit is a process step: a typed node with fixed inlet/outlet arity,
// named parameters set at construction (and possibly reassigned by the
// uncertainty harness), and a deterministic transformation from inlet
// stream state to outlet stream state.
type Unit interface {
	ID() string
	Ins() []*Stream
	Outs() []*Stream
	Simulate() error
}

// DynamicUnit is a unit whose outlets depend on internal state governed
// by ordinary differential equations. WriteOuts must set every outlet
// purely from the given state slice; Derivs fills dydt from the current
// state and inlet streams. Both are called repeatedly per step.
type DynamicUnit interface {
	Unit
	StateLen() int
	InitState() []float64
	WriteOuts(y []float64)
	Derivs(t float64, y, dydt []float64)
}

// Base carries the wiring shared by all unit implementations. Outlets
// are owned (created) by the producing unit; inlets are references to
// streams produced elsewhere.
type Base struct {
	id   string
	ins  []*Stream
	outs []*Stream
}

// NewBase wires a unit's ports, claiming each inlet and registering the
// unit as producer of each outlet. A nil or already-consumed inlet is a
// configuration error raised here, at wiring time.
func NewBase(id string, ins []*Stream, outs []*Stream) (Base, error) {
	b := Base{id: id, ins: ins, outs: outs}
	for i, s := range ins {
		if s == nil {
			return b, fmt.Errorf("%w: unit %s inlet %d", ErrUnwiredInlet, id, i)
		}
		if s.dst != nil {
			return b, fmt.Errorf("unit %s inlet %d: stream %s already consumed by %s", id, i, s.ID, s.dst.ID())
		}
	}
	for i, s := range outs {
		if s == nil {
			return b, fmt.Errorf("unit %s outlet %d is nil", id, i)
		}
		if s.src != nil {
			return b, fmt.Errorf("unit %s outlet %d: stream %s already produced by %s", id, i, s.ID, s.src.ID())
		}
	}
	return b, nil
}

// Claim finalizes port ownership once the embedding unit exists; it is
// called by the unit constructor after embedding Base.
func (b *Base) Claim(u Unit) {
	for _, s := range b.ins {
		s.dst = u
	}
	for _, s := range b.outs {
		s.src = u
	}
}

func (b *Base) ID() string      { return b.id }
func (b *Base) Ins() []*Stream  { return b.ins }
func (b *Base) Outs() []*Stream { return b.outs }

// In and Out panic on bad port indices: arity is fixed per unit type
// and an out-of-range port is a programming error, not runtime input.
func (b *Base) In(i int) *Stream  { return b.ins[i] }
func (b *Base) Out(i int) *Stream { return b.outs[i] }
