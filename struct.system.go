package exposan

import (
	"errors"
	"fmt"
)

var (
	// ErrUnwiredInlet flags a unit inlet that is neither a declared feed
	// nor the product of an upstream unit at wiring time.
	ErrUnwiredInlet = errors.New("unwired inlet")
	// ErrNotConverged flags a recycle loop exceeding its iteration cap.
	ErrNotConverged = errors.New("recycle loop failed to converge")
	// ErrDuplicateID flags re-registration of a unit or alias ID.
	ErrDuplicateID = errors.New("duplicate registration")
)

// System is a flowsheet: an ordered collection of units connected by
// streams, simulated sequentially in path order with bounded
// direct-substitution iteration over any declared tear streams.
type System struct {
	ID             string
	MaxRecycleIter int     // iteration cap on tear-stream convergence
	RecycleTol     float64 // relative tolerance on tear mass flows
	OperatingHours float64 // h/yr, used by the economic/impact overlays

	cs    *Components
	path  []Unit
	xr    map[string]Unit // unit IDs and aliases
	feeds map[string]*Stream
	tears []*Stream
}

// NewSystem returns an empty flowsheet over a component registry.
func NewSystem(id string, cs *Components) *System {
	return &System{
		ID:             id,
		MaxRecycleIter: 50,
		RecycleTol:     1e-6,
		OperatingHours: 7920.,
		cs:             cs,
		xr:             map[string]Unit{},
		feeds:          map[string]*Stream{},
	}
}

func (sys *System) Components() *Components { return sys.cs }

// Feed declares an externally supplied stream. Every unit inlet must be
// either a feed, a tear, or the outlet of a previously added unit.
func (sys *System) Feed(s *Stream) *Stream {
	sys.feeds[s.ID] = s
	return s
}

// Tear declares a recycle stream: its value from the previous sweep is
// used to break the cycle, and sweeps repeat until it stabilizes.
func (sys *System) Tear(s *Stream) *Stream {
	sys.tears = append(sys.tears, s)
	return s
}

// Add appends a unit to the simulation path, validating its wiring:
// duplicate IDs are rejected and every inlet must already have a
// producer, be a declared feed, or be a declared tear. This is the
// configuration-error boundary; nothing is checked again at simulation
// time.
func (sys *System) Add(u Unit) error {
	if _, ok := sys.xr[u.ID()]; ok {
		return fmt.Errorf("%w: unit %s in system %s", ErrDuplicateID, u.ID(), sys.ID)
	}
	for i, s := range u.Ins() {
		if s.src != nil && s.src != u {
			continue // produced upstream
		}
		if _, ok := sys.feeds[s.ID]; ok {
			continue
		}
		if sys.isTear(s) {
			continue
		}
		return fmt.Errorf("%w: unit %s inlet %d (stream %s)", ErrUnwiredInlet, u.ID(), i, s.ID)
	}
	sys.path = append(sys.path, u)
	sys.xr[u.ID()] = u
	return nil
}

// MustAdd is Add for fixed topologies built in code, where a wiring
// error is a bug in the builder itself.
func (sys *System) MustAdd(units ...Unit) {
	for _, u := range units {
		if err := sys.Add(u); err != nil {
			panic(err)
		}
	}
}

// Alias registers an alternative name so units remain addressable after
// construction (e.g. "HT" for "A310").
func (sys *System) Alias(name string, u Unit) error {
	if _, ok := sys.xr[name]; ok {
		return fmt.Errorf("%w: alias %s in system %s", ErrDuplicateID, name, sys.ID)
	}
	sys.xr[name] = u
	return nil
}

// Unit resolves a unit by ID or alias.
func (sys *System) Unit(id string) (Unit, bool) {
	u, ok := sys.xr[id]
	return u, ok
}

func (sys *System) Units() []Unit { return sys.path }

func (sys *System) isTear(s *Stream) bool {
	for _, t := range sys.tears {
		if t == s {
			return true
		}
	}
	return false
}

// Simulate runs every unit once in path order; with tear streams
// declared, sweeps repeat until the largest relative change across all
// tears drops below RecycleTol or the iteration cap trips.
func (sys *System) Simulate() error {
	if len(sys.tears) == 0 {
		return sys.sweep()
	}
	prev := make([]*Stream, len(sys.tears))
	for i, t := range sys.tears {
		p := NewStream(t.ID+"_prev", sys.cs)
		p.CopyFlow(t)
		prev[i] = p
	}
	for it := 0; it < sys.MaxRecycleIter; it++ {
		if err := sys.sweep(); err != nil {
			return err
		}
		worst := 0.
		for i, t := range sys.tears {
			if d := t.MaxRelDiff(prev[i]); d > worst {
				worst = d
			}
			prev[i].CopyFlow(t)
		}
		if worst < sys.RecycleTol {
			return nil
		}
	}
	return fmt.Errorf("%w: system %s after %d iterations", ErrNotConverged, sys.ID, sys.MaxRecycleIter)
}

func (sys *System) sweep() error {
	for _, u := range sys.path {
		if err := u.Simulate(); err != nil {
			return fmt.Errorf("system %s unit %s: %w", sys.ID, u.ID(), err)
		}
	}
	return nil
}

// Feeds returns the declared feed streams.
func (sys *System) Feeds() []*Stream {
	out := make([]*Stream, 0, len(sys.feeds))
	for _, s := range sys.feeds {
		out = append(out, s)
	}
	return out
}

// Products returns every stream produced inside the system that no unit
// consumes: the terminal streams crossing the battery limit.
func (sys *System) Products() []*Stream {
	var out []*Stream
	for _, u := range sys.path {
		for _, s := range u.Outs() {
			if s.dst == nil {
				out = append(out, s)
			}
		}
	}
	return out
}

// MassBalance returns total feed mass in, terminal mass out [kg/h].
func (sys *System) MassBalance() (in, out float64) {
	for _, s := range sys.feeds {
		in += s.FMass()
	}
	for _, s := range sys.Products() {
		out += s.FMass()
	}
	return
}
