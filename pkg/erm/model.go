package erm

import "strings"

// Model is one or more top-level pairs.
type Model []*Pair

// Pair anchors one or more entities and attaches relations to them.
//
// A Pair with no relations used as an [Item] is an entity group: its anchor
// entities become sub-entities of the enclosing relation.
type Pair struct {
	Anchor    Endpoint
	Relations []Relation
}

// Relation names one or more relationships and lists the sub-entities they
// reach from the enclosing anchor.
type Relation struct {
	Names Label
	Items []Item
}

// Item is a sub-entity slot: either an *Entity or a nested *Pair.
type Item interface {
	item()
}

func (*Pair) item() {}

// Of returns a pair anchored at a single entity.
func Of(anchor *Entity, rels ...Relation) *Pair {
	return &Pair{Anchor: Entities(anchor), Relations: rels}
}

// OfAll returns a pair anchored at several entities that share the relations.
func OfAll(anchors []*Entity, rels ...Relation) *Pair {
	return &Pair{Anchor: Entities(anchors...), Relations: rels}
}

// Group returns a relation-less pair, used as an item to list several
// sub-entities in one slot.
func Group(es ...*Entity) *Pair {
	return &Pair{Anchor: Entities(es...)}
}

// Rel returns a relation with a single relationship name.
func Rel(name string, items ...Item) Relation {
	return Relation{Names: Names(name), Items: items}
}

// Rels returns a relation whose names share one slot, e.g. an upstream and a
// downstream name between the same entities.
func Rels(names []string, items ...Item) Relation {
	return Relation{Names: Names(names...), Items: items}
}

// Direction is the edge direction encoded by a relationship glyph.
type Direction int

const (
	// DirectionNone marks a token without a glyph. It yields no triplet.
	DirectionNone Direction = iota
	// Upstream ("<name") points from the sub-entities to the anchor.
	Upstream
	// Downstream ("name>") points from the anchor to the sub-entities.
	Downstream
)

const (
	upstreamGlyph   = "<"
	downstreamGlyph = ">"
)

// String returns "upstream", "downstream" or "none".
func (d Direction) String() string {
	switch d {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	default:
		return "none"
	}
}

// ParseRelationshipName splits an authored token into its name and direction.
// A leading "<" takes precedence over a trailing ">", so "<a>" is the
// upstream name "a>". Tokens without a glyph return DirectionNone and the
// token unchanged.
func ParseRelationshipName(token string) (string, Direction) {
	switch {
	case strings.HasPrefix(token, upstreamGlyph):
		return token[len(upstreamGlyph):], Upstream
	case strings.HasSuffix(token, downstreamGlyph):
		return token[:len(token)-len(downstreamGlyph)], Downstream
	default:
		return token, DirectionNone
	}
}
