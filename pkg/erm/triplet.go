package erm

import "fmt"

// Triplet is a normalized (source, edge, target) unit.
//
// Each field is one value or several; a Triplet with several sources, names
// or targets stands for every combination of them.
type Triplet struct {
	Source Endpoint `json:"source" yaml:"source" msgpack:"source"`
	Edge   Label    `json:"edge" yaml:"edge" msgpack:"edge"`
	Target Endpoint `json:"target" yaml:"target" msgpack:"target"`
}

// T is a compact Triplet constructor for single-valued endpoints.
func T(source *Entity, edge string, target *Entity) Triplet {
	return Triplet{Source: Entities(source), Edge: Names(edge), Target: Entities(target)}
}

// String formats the triplet as "source -edge-> target".
func (t Triplet) String() string {
	return fmt.Sprintf("%v -%v-> %v", t.Source, t.Edge, t.Target)
}

// Equal reports whether t and o have the same endpoints (by identity) and names.
func (t Triplet) Equal(o Triplet) bool {
	return t.Source.Equal(o.Source) && t.Edge.Equal(o.Edge) && t.Target.Equal(o.Target)
}

// hasEdgeIn reports whether any of the triplet's names is in names.
func (t Triplet) hasEdgeIn(names []string) bool {
	return t.Edge.ContainsAny(names)
}
