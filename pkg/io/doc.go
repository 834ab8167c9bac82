// Package io reads model literals from JSON, YAML and TOML documents and
// writes triplets back out.
//
// # Model Documents
//
// A model document is the literal itself, or a table holding it under the
// "model" key. Entities are objects with a "name" field; any other fields are
// kept as entity metadata. Relations are lists whose first element is a
// relationship name (or list of names) carrying its direction glyph:
//
//	[
//	  {"name": "Customer"},
//	  ["Uses>", {"name": "Banking"}],
//	  ["<Accesses", [{"name": "Mainframe"}, {"name": "Email"}]]
//	]
//
// A literal whose first element is an entity (or list of entities) is a
// single pair. Otherwise each element is a pair of its own.
//
// Because documents carry no pointer identity, entities are interned by name
// within a document: two objects with the same name decode to the same
// *erm.Entity, and metadata from later mentions fills in missing keys only.
//
// # Triplet Documents
//
// [Write] and [Export] emit a single "triplets" array. Each triplet has
// source, edge and target fields; single-valued fields are written as
// scalars and multi-valued ones as arrays.
//
// # Dictionaries
//
// [ReadDictionary] and [ImportDictionary] read flat one-to-many maps of
// string keys to string lists, as consumed by the dict package.
package io
