package io

import (
	"fmt"
	"maps"
	"slices"

	errs "github.com/matzehuels/erm/pkg/errors"
	"github.com/matzehuels/erm/pkg/erm"
)

// nameField is the key that marks a map as an entity.
const nameField = "name"

// modelField is the document key holding the literal when the top level is a table.
const modelField = "model"

type shape int

const (
	shapeUnknown shape = iota
	shapeEntities
	shapePair
)

// classify decides whether a loose value is one-or-many entities or a pair.
//
// A map carrying a name is one entity. A list is entities when it has a
// single element or when its second element is not a list: the second slot
// of a pair is always a relation, which is itself a list. Anything else is
// unknown.
func classify(v any) shape {
	switch x := v.(type) {
	case map[string]any:
		if _, ok := x[nameField]; ok {
			return shapeEntities
		}
	case []any:
		if len(x) < 2 {
			return shapeEntities
		}
		if _, ok := x[1].([]any); !ok {
			return shapeEntities
		}
		return shapePair
	}
	return shapeUnknown
}

// Decoder converts loosely typed literals into models, interning entities by
// name across every document it decodes. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	entities map[string]*erm.Entity
}

// NewDecoder returns a decoder with an empty entity table.
func NewDecoder() *Decoder {
	return &Decoder{entities: make(map[string]*erm.Entity)}
}

// Decode converts a loosely typed literal with a fresh [Decoder].
func Decode(doc any) (erm.Model, error) {
	return NewDecoder().Decode(doc)
}

// Decode converts a loosely typed literal, as produced by a JSON, YAML or
// TOML decoder, into a model.
//
// doc is either the literal itself or a map holding it under "model". The
// literal is one pair when its first element classifies as entities, and a
// list of pairs otherwise. Every mention of a name resolves to the same
// *erm.Entity, including mentions in documents decoded earlier by d.
func (d *Decoder) Decode(doc any) (erm.Model, error) {
	if m, ok := doc.(map[string]any); ok {
		lit, ok := m[modelField]
		if !ok {
			return nil, errs.Malformed("", "document has no %q key", modelField)
		}
		doc = lit
	}

	lit, ok := doc.([]any)
	if !ok {
		return nil, errs.Malformed("model", "literal must be a list, got %s", kind(doc))
	}
	if len(lit) == 0 {
		return nil, errs.Malformed("model", "at least one pair is required")
	}

	if classify(lit[0]) == shapeEntities {
		p, err := d.pair(lit, "model")
		if err != nil {
			return nil, err
		}
		return erm.Model{p}, nil
	}

	model := make(erm.Model, 0, len(lit))
	for i, v := range lit {
		path := fmt.Sprintf("model[%d]", i)
		x, ok := v.([]any)
		if !ok {
			return nil, errs.Malformed(path, "expected a pair, got %s", kind(v))
		}
		p, err := d.pair(x, path)
		if err != nil {
			return nil, err
		}
		model = append(model, p)
	}
	return model, nil
}

func (d *Decoder) pair(x []any, path string) (*erm.Pair, error) {
	if len(x) == 0 {
		return nil, errs.Malformed(path, "pair is empty")
	}

	anchor, err := d.entityList(x[0], path+"[0]")
	if err != nil {
		return nil, err
	}

	p := &erm.Pair{Anchor: erm.Entities(anchor...)}
	for i, v := range x[1:] {
		rel, err := d.relation(v, fmt.Sprintf("%s[%d]", path, i+1))
		if err != nil {
			return nil, err
		}
		p.Relations = append(p.Relations, rel)
	}
	return p, nil
}

func (d *Decoder) relation(v any, path string) (erm.Relation, error) {
	x, ok := v.([]any)
	if !ok || len(x) == 0 {
		return erm.Relation{}, errs.Malformed(path, "relation must be a non-empty list, got %s", kind(v))
	}

	names, err := relationNames(x[0], path+"[0]")
	if err != nil {
		return erm.Relation{}, err
	}

	rel := erm.Relation{Names: erm.Names(names...)}
	for i, it := range x[1:] {
		item, err := d.item(it, fmt.Sprintf("%s[%d]", path, i+1))
		if err != nil {
			return erm.Relation{}, err
		}
		rel.Items = append(rel.Items, item)
	}
	return rel, nil
}

func (d *Decoder) item(v any, path string) (erm.Item, error) {
	switch classify(v) {
	case shapeEntities:
		if m, ok := v.(map[string]any); ok {
			return d.entity(m, path)
		}
		es, err := d.entityList(v, path)
		if err != nil {
			return nil, err
		}
		return erm.Group(es...), nil
	case shapePair:
		return d.pair(v.([]any), path)
	default:
		return nil, errs.Malformed(path, "expected an entity or a pair, got %s", kind(v))
	}
}

// entityList reads one entity or a list of entities.
func (d *Decoder) entityList(v any, path string) ([]*erm.Entity, error) {
	switch x := v.(type) {
	case map[string]any:
		e, err := d.entity(x, path)
		if err != nil {
			return nil, err
		}
		return []*erm.Entity{e}, nil
	case []any:
		if len(x) == 0 {
			return nil, errs.Malformed(path, "at least one entity is required")
		}
		out := make([]*erm.Entity, 0, len(x))
		for i, ev := range x {
			m, ok := ev.(map[string]any)
			if !ok {
				return nil, errs.Malformed(fmt.Sprintf("%s[%d]", path, i), "expected an entity, got %s", kind(ev))
			}
			e, err := d.entity(m, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	default:
		return nil, errs.Malformed(path, "expected one or more entities, got %s", kind(v))
	}
}

func (d *Decoder) entity(m map[string]any, path string) (*erm.Entity, error) {
	name, ok := m[nameField].(string)
	if !ok {
		return nil, errs.Malformed(path, "entity %q must be a string", nameField)
	}
	if err := errs.ValidateEntityName(name); err != nil {
		return nil, errs.Malformed(path, "%s", errs.UserMessage(err))
	}

	e, seen := d.entities[name]
	if !seen {
		e = erm.NewEntity(name)
		d.entities[name] = e
	}
	for k, v := range m {
		if k == nameField {
			continue
		}
		if e.Meta == nil {
			e.Meta = make(map[string]any, len(m)-1)
		}
		if _, exists := e.Meta[k]; !exists {
			e.Meta[k] = v
		}
	}
	return e, nil
}

func relationNames(v any, path string) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []any:
		if len(x) == 0 {
			return nil, errs.Malformed(path, "at least one relationship name is required")
		}
		names := make([]string, 0, len(x))
		for i, nv := range x {
			s, ok := nv.(string)
			if !ok {
				return nil, errs.Malformed(fmt.Sprintf("%s[%d]", path, i), "relationship name must be a string, got %s", kind(nv))
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, errs.Malformed(path, "relationship name must be a string or a list of strings, got %s", kind(v))
	}
}

func kind(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", x)
	case []any:
		return fmt.Sprintf("list of %d", len(x))
	case map[string]any:
		return fmt.Sprintf("map with keys %v", sortedKeys(x))
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
