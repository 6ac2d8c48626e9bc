package exposan

import (
	"fmt"
	"math"
)

// Stream is a directed material flow between two unit ports: a
// composition vector (kg/h by component) plus scalar state. A stream is
// written by exactly one producing unit and read by at most one
// consumer; fan-out is modelled with explicit splitter units.
type Stream struct {
	ID    string
	Mass  []float64 // kg/h, indexed per the component registry
	T     float64   // K
	P     float64   // Pa
	Phase byte
	Price float64 // $/kg, used by the economic overlay

	cs  *Components
	src Unit // producing unit, nil for feeds
	dst Unit // consuming unit, nil for products
}

// NewStream returns an empty liquid-phase stream at ambient conditions.
func NewStream(id string, cs *Components) *Stream {
	return &Stream{
		ID:    id,
		Mass:  make([]float64, cs.Len()),
		T:     298.15,
		P:     101325.,
		Phase: 'l',
		cs:    cs,
	}
}

func (s *Stream) Components() *Components { return s.cs }

// Imass returns the component mass flow [kg/h]; unknown IDs are zero.
func (s *Stream) Imass(id string) float64 {
	if i, ok := s.cs.Index(id); ok {
		return s.Mass[i]
	}
	return 0.
}

func (s *Stream) SetImass(id string, kgph float64) error {
	i, ok := s.cs.Index(id)
	if !ok {
		return fmt.Errorf("stream %s: unknown component %q", s.ID, id)
	}
	s.Mass[i] = kgph
	return nil
}

// FMass returns the total mass flow [kg/h].
func (s *Stream) FMass() float64 {
	f := 0.
	for _, m := range s.Mass {
		f += m
	}
	return f
}

// Empty zeros the composition vector, keeping T/P/phase.
func (s *Stream) Empty() {
	for i := range s.Mass {
		s.Mass[i] = 0.
	}
}

// CopyFlow overwrites the receiver's composition and state from src.
func (s *Stream) CopyFlow(src *Stream) {
	copy(s.Mass, src.Mass)
	s.T, s.P, s.Phase = src.T, src.P, src.Phase
}

// Mix adds src's component flows into the receiver.
func (s *Stream) Mix(src *Stream) {
	for i, m := range src.Mass {
		s.Mass[i] += m
	}
}

// TotalC returns the carbon mass flow [kg/h] carried by the stream.
func (s *Stream) TotalC() float64 { return s.elemental(func(c Component) float64 { return c.IC }) }

// TotalN returns the nitrogen mass flow [kg/h].
func (s *Stream) TotalN() float64 { return s.elemental(func(c Component) float64 { return c.IN }) }

// TotalP returns the phosphorus mass flow [kg/h].
func (s *Stream) TotalP() float64 { return s.elemental(func(c Component) float64 { return c.IP }) }

func (s *Stream) elemental(f func(Component) float64) float64 {
	t := 0.
	for i, m := range s.Mass {
		t += m * f(s.cs.At(i))
	}
	return t
}

// HHV returns the stream's higher heating value [MJ/h].
func (s *Stream) HHV() float64 {
	t := 0.
	for i, m := range s.Mass {
		t += m * s.cs.At(i).HHV
	}
	return t
}

// LHV returns the stream's lower heating value [MJ/h].
func (s *Stream) LHV() float64 {
	t := 0.
	for i, m := range s.Mass {
		t += m * s.cs.At(i).LHV
	}
	return t
}

// MaxRelDiff returns the largest relative component-flow difference
// between two streams, used for recycle-convergence checks.
func (s *Stream) MaxRelDiff(o *Stream) float64 {
	d := 0.
	for i, m := range s.Mass {
		ref := math.Max(math.Abs(m), math.Abs(o.Mass[i]))
		if ref < 1e-12 {
			continue
		}
		if r := math.Abs(m-o.Mass[i]) / ref; r > d {
			d = r
		}
	}
	return d
}
