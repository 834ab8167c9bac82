package erm

import (
	"github.com/matzehuels/erm/pkg/oneormany"
)

// Entity is a node in the model, identified by its Name.
//
// Entities are handled by pointer: two mentions of the same *Entity are the
// same node for [EdgesOfNode], while [EdgesOfNodes] only compares names.
type Entity struct {
	Name string         `json:"name" yaml:"name" msgpack:"name"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// NewEntity returns an entity with the given name and no metadata.
func NewEntity(name string) *Entity {
	return &Entity{Name: name}
}

// String returns the entity name.
func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.Name
}

func (*Entity) item() {}

// Endpoint is one entity or a non-empty ordered list of entities.
type Endpoint = oneormany.Value[*Entity]

// Label is one relationship name or several sharing one slot.
type Label = oneormany.Value[string]

// Entities returns an Endpoint over es in order.
func Entities(es ...*Entity) Endpoint {
	return oneormany.Of(es...)
}

// Names returns a Label over names in order.
func Names(names ...string) Label {
	return oneormany.Of(names...)
}
