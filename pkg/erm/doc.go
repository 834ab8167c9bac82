// Package erm describes entity–relationship graphs as compact nested literals
// and flattens them into source–edge–target triplets.
//
// # Notation
//
// A model is a list of pairs. Each [Pair] anchors one or more entities and
// attaches relationships to them; each [Relation] names the relationship and
// lists the sub-entities it reaches. A sub-entity is either a bare [Entity]
// or a nested [Pair], which gives arbitrary-depth hierarchies:
//
//	bank := erm.NewEntity("Big Bank plc")
//	ibs := erm.NewEntity("Internet Banking System")
//	mail := erm.NewEntity("E-mail System")
//
//	model := erm.Model{
//	    erm.Of(bank,
//	        erm.Rel("<Software system of",
//	            erm.Of(ibs, erm.Rel("Sends e-mail using>", mail)),
//	            mail,
//	        ),
//	    ),
//	}
//
// Relationship names carry their direction as a glyph:
//
//	"uses>"   downstream: anchor -uses-> sub-entities
//	"<part of" upstream:  sub-entities -part of-> anchor
//
// A name without a glyph is inert: it produces no triplet and, unless
// [Options.Strict] is set, no error either.
//
// # Parsing
//
// [Parse] walks the model depth first and emits, for every relation, at most
// one upstream and one downstream [Triplet]; names of the same direction in
// one slot merge into a multi-valued edge label. Nested pairs are visited
// after the triplets of the relation that contains them.
//
//	triplets, err := erm.Parse(model)
//
// # Queries
//
// [EdgesOfName], [EdgesOfNode] and [EdgesOfNodes] filter a triplet list and
// narrow multi-valued endpoints to the matching members. EdgesOfNode matches
// by entity identity and keeps a triplet when either endpoint matches;
// EdgesOfNodes matches by entity name and requires both endpoints to match.
// The two are deliberately distinct.
//
// # Concurrency
//
// Models, entities and triplets are never mutated by this package. All
// functions are safe for concurrent use on shared inputs.
package erm
