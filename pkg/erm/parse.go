package erm

import (
	"fmt"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/erm/pkg/errors"
)

// Options configures a [Parser].
type Options struct {
	// Strict rejects relationship tokens without a direction glyph, tokens
	// whose name is empty once the glyph is stripped, and tokens that fail
	// [errs.ValidateRelationshipToken], with a MALFORMED_INPUT error. By
	// default only the glyph decides: unglyphed tokens are dropped and any
	// glyphed token is kept as written.
	Strict bool

	// Logger receives debug traces of dropped tokens. Nil disables logging.
	Logger *log.Logger
}

// Parser flattens models into triplets. The zero value is a permissive
// parser without logging.
type Parser struct {
	opts Options
}

// NewParser returns a parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse flattens model with default options. See [Parser.Parse].
func Parse(model Model) ([]Triplet, error) {
	return (&Parser{}).Parse(model)
}

// Parse flattens model into triplets, depth first.
//
// For each relation of each pair, in authoring order, Parse emits the
// upstream triplet (sub-entities -> anchor), then the downstream triplet
// (anchor -> sub-entities), then the triplets of any nested pairs among the
// relation's items.
//
// A structurally invalid model (no pairs, an empty anchor, an unnamed entity,
// a relation without names or items) yields a MALFORMED_INPUT error naming
// the offending location. The returned slice is freshly allocated and never
// nil on success.
func (p *Parser) Parse(model Model) ([]Triplet, error) {
	if len(model) == 0 {
		return nil, errs.Malformed("model", "at least one pair is required")
	}

	out := []Triplet{}
	for i, pair := range model {
		var err error
		if out, err = p.appendPair(out, pair, fmt.Sprintf("model[%d]", i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Parser) appendPair(out []Triplet, pair *Pair, path string) ([]Triplet, error) {
	if pair == nil {
		return nil, errs.Malformed(path, "pair is nil")
	}
	if err := checkEndpoint(pair.Anchor, path+".anchor"); err != nil {
		return nil, err
	}

	for j, rel := range pair.Relations {
		relPath := fmt.Sprintf("%s.relations[%d]", path, j)

		subentities, subpairs, err := splitItems(rel.Items, relPath)
		if err != nil {
			return nil, err
		}
		upstream, downstream, err := p.splitNames(rel.Names, relPath)
		if err != nil {
			return nil, err
		}

		if len(upstream) > 0 {
			out = append(out, Triplet{Source: Entities(subentities...), Edge: Names(upstream...), Target: pair.Anchor})
		}
		if len(downstream) > 0 {
			out = append(out, Triplet{Source: pair.Anchor, Edge: Names(downstream...), Target: Entities(subentities...)})
		}

		for _, sub := range subpairs {
			if out, err = p.appendPair(out, sub.pair, sub.path); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

type subpair struct {
	pair *Pair
	path string
}

// splitItems flattens a relation's items into the sub-entity list and queues
// nested pairs that carry relations of their own.
func splitItems(items []Item, path string) ([]*Entity, []subpair, error) {
	if len(items) == 0 {
		return nil, nil, errs.Malformed(path, "relation has no subentities")
	}

	var (
		entities []*Entity
		pairs    []subpair
	)
	for k, it := range items {
		itemPath := fmt.Sprintf("%s.items[%d]", path, k)
		switch v := it.(type) {
		case *Entity:
			if err := checkEntity(v, itemPath); err != nil {
				return nil, nil, err
			}
			entities = append(entities, v)
		case *Pair:
			if v == nil {
				return nil, nil, errs.Malformed(itemPath, "pair is nil")
			}
			if err := checkEndpoint(v.Anchor, itemPath+".anchor"); err != nil {
				return nil, nil, err
			}
			entities = append(entities, v.Anchor.Items()...)
			if len(v.Relations) > 0 {
				pairs = append(pairs, subpair{pair: v, path: itemPath})
			}
		default:
			return nil, nil, errs.Malformed(itemPath, "item must be an entity or a pair, got %T", it)
		}
	}
	return entities, pairs, nil
}

// splitNames partitions a relation's tokens by direction, stripping glyphs.
func (p *Parser) splitNames(names Label, path string) (upstream, downstream []string, err error) {
	if names.IsZero() {
		return nil, nil, errs.Malformed(path, "relation has no relationship names")
	}

	for _, token := range names.Items() {
		name, dir := ParseRelationshipName(token)
		if p.opts.Strict {
			if err := errs.ValidateRelationshipToken(token); err != nil {
				return nil, nil, errs.Malformed(path, "%s", errs.UserMessage(err))
			}
			if dir == DirectionNone {
				return nil, nil, errs.Malformed(path, "relationship %q has no direction glyph (want %q prefix or %q suffix)", token, upstreamGlyph, downstreamGlyph)
			}
			if name == "" {
				return nil, nil, errs.Malformed(path, "relationship %q has an empty name", token)
			}
		}

		switch dir {
		case Upstream:
			upstream = append(upstream, name)
		case Downstream:
			downstream = append(downstream, name)
		default:
			if p.opts.Logger != nil {
				p.opts.Logger.Debug("dropping relationship without glyph", "token", token, "at", path)
			}
		}
	}
	return upstream, downstream, nil
}

func checkEndpoint(ep Endpoint, path string) error {
	if ep.IsZero() {
		return errs.Malformed(path, "at least one entity is required")
	}
	for i, e := range ep.Items() {
		if err := checkEntity(e, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkEntity(e *Entity, path string) error {
	if e == nil {
		return errs.Malformed(path, "entity is nil")
	}
	if err := errs.ValidateEntityName(e.Name); err != nil {
		return errs.Malformed(path, "%s", errs.UserMessage(err))
	}
	return nil
}
