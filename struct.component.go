package exposan

import "fmt"

// Component holds immutable reference properties of a chemical or
// biological species tracked by a model. Elemental contents are mass
// fractions of the component's dry mass.
type Component struct {
	ID    string
	Phase byte    // 'l', 'g' or 's'
	MW    float64 // g/mol
	IC    float64 // carbon mass fraction
	IN    float64 // nitrogen mass fraction
	IP    float64 // phosphorus mass fraction
	IH    float64 // hydrogen mass fraction
	HHV   float64 // higher heating value MJ/kg
	LHV   float64 // lower heating value MJ/kg
}

// Components is the registry of species shared (read-only) by every
// stream and unit of a model. Built once per model-load.
type Components struct {
	list []Component
	xr   map[string]int
}

// NewComponents builds a registry, rejecting duplicate IDs.
func NewComponents(cmps ...Component) (*Components, error) {
	cs := &Components{
		list: make([]Component, len(cmps)),
		xr:   make(map[string]int, len(cmps)),
	}
	for i, c := range cmps {
		if c.ID == "" {
			return nil, fmt.Errorf("NewComponents: component %d has empty ID", i)
		}
		if _, ok := cs.xr[c.ID]; ok {
			return nil, fmt.Errorf("NewComponents: duplicate component %q", c.ID)
		}
		cs.list[i] = c
		cs.xr[c.ID] = i
	}
	return cs, nil
}

func (cs *Components) Len() int { return len(cs.list) }

func (cs *Components) At(i int) Component { return cs.list[i] }

// Index returns the positional index of a component ID.
func (cs *Components) Index(id string) (int, bool) {
	i, ok := cs.xr[id]
	return i, ok
}

// IDs returns component IDs in registry order.
func (cs *Components) IDs() []string {
	out := make([]string, len(cs.list))
	for i, c := range cs.list {
		out[i] = c.ID
	}
	return out
}
