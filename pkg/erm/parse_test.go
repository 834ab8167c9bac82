package erm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/erm/pkg/errors"
)

var (
	A = NewEntity("A")
	B = NewEntity("B")
	C = NewEntity("C")
	D = NewEntity("D")
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		want  []Triplet
	}{
		{
			name:  "Downstream",
			model: Model{Of(A, Rel("rel>", B))},
			want:  []Triplet{T(A, "rel", B)},
		},
		{
			name:  "DownstreamMultipleTargets",
			model: Model{Of(A, Rel("rel>", B, C))},
			want:  []Triplet{{Source: Entities(A), Edge: Names("rel"), Target: Entities(B, C)}},
		},
		{
			name:  "UpstreamReversesOrder",
			model: Model{Of(A, Rel("<rel", B))},
			want:  []Triplet{T(B, "rel", A)},
		},
		{
			name:  "UpstreamMultipleSources",
			model: Model{Of(A, Rel("<rel", B, C))},
			want:  []Triplet{{Source: Entities(B, C), Edge: Names("rel"), Target: Entities(A)}},
		},
		{
			name:  "MultipleAnchors",
			model: Model{OfAll([]*Entity{A, B}, Rel("rel>", C))},
			want:  []Triplet{{Source: Entities(A, B), Edge: Names("rel"), Target: Entities(C)}},
		},
		{
			name:  "MultipleAnchorsAndTargets",
			model: Model{OfAll([]*Entity{A, B}, Rel("rel>", C, D))},
			want:  []Triplet{{Source: Entities(A, B), Edge: Names("rel"), Target: Entities(C, D)}},
		},
		{
			name:  "NestedPair",
			model: Model{Of(A, Rel("parent>", Of(B, Rel("child>", C))))},
			want:  []Triplet{T(A, "parent", B), T(B, "child", C)},
		},
		{
			name: "DeeplyNested",
			model: Model{Of(A,
				Rel("level1>", Of(B,
					Rel("level2>", Of(C,
						Rel("level3>", D))))))},
			want: []Triplet{T(A, "level1", B), T(B, "level2", C), T(C, "level3", D)},
		},
		{
			name:  "MixedDirectionsSameSlot",
			model: Model{Of(A, Rels([]string{"<up", "down>"}, B))},
			want:  []Triplet{T(B, "up", A), T(A, "down", B)},
		},
		{
			name:  "SameDirectionNamesMerge",
			model: Model{Of(A, Rels([]string{"reads>", "writes>"}, B))},
			want:  []Triplet{{Source: Entities(A), Edge: Names("reads", "writes"), Target: Entities(B)}},
		},
		{
			name:  "MultipleRelations",
			model: Model{Of(A, Rel("rel1>", B), Rel("rel2>", C))},
			want:  []Triplet{T(A, "rel1", B), T(A, "rel2", C)},
		},
		{
			name:  "MultipleRootPairs",
			model: Model{Of(A, Rel("rel1>", B)), Of(C, Rel("rel2>", D))},
			want:  []Triplet{T(A, "rel1", B), T(C, "rel2", D)},
		},
		{
			name:  "NestedPairAnchorsJoinSubentities",
			model: Model{Of(A, Rel("has>", B, Of(C, Rel("uses>", D))))},
			want: []Triplet{
				{Source: Entities(A), Edge: Names("has"), Target: Entities(B, C)},
				T(C, "uses", D),
			},
		},
		{
			name:  "GroupFlattensIntoSubentities",
			model: Model{Of(A, Rel("has>", Group(B, C), D))},
			want:  []Triplet{{Source: Entities(A), Edge: Names("has"), Target: Entities(B, C, D)}},
		},
		{
			name:  "BareNameIsInert",
			model: Model{Of(A, Rel("inert", B))},
			want:  []Triplet{},
		},
		{
			name:  "BareNameStillRecurses",
			model: Model{Of(A, Rel("inert", Of(B, Rel("child>", C))))},
			want:  []Triplet{T(B, "child", C)},
		},
		{
			name:  "BareNameDroppedAmongGlyphed",
			model: Model{Of(A, Rels([]string{"inert", "uses>"}, B))},
			want:  []Triplet{T(A, "uses", B)},
		},
		{
			name:  "UpstreamGlyphWinsOverDownstream",
			model: Model{Of(A, Rel("<both>", B))},
			want:  []Triplet{T(B, "both>", A)},
		},
		{
			name:  "PairWithoutRelations",
			model: Model{Of(A)},
			want:  []Triplet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.model)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	model := Model{Of(A, Rel("<up", B, C), Rel("down>", Of(D, Rel("again>", A))))}

	first, err := Parse(model)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(model)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		model    Model
		wantPath string
	}{
		{"EmptyModel", Model{}, "model"},
		{"NilPair", Model{nil}, "model[0]"},
		{"EmptyAnchor", Model{{Relations: []Relation{Rel("r>", B)}}}, "model[0].anchor"},
		{"UnnamedAnchor", Model{Of(NewEntity(""), Rel("r>", B))}, "model[0].anchor[0]"},
		{"NilAnchor", Model{Of(nil, Rel("r>", B))}, "model[0].anchor[0]"},
		{"NoItems", Model{Of(A, Rel("r>"))}, "model[0].relations[0]"},
		{"NoNames", Model{Of(A, Relation{Items: []Item{B}})}, "model[0].relations[0]"},
		{"NilItem", Model{Of(A, Rel("r>", nil))}, "model[0].relations[0].items[0]"},
		{"NilEntityItem", Model{Of(A, Rel("r>", (*Entity)(nil)))}, "model[0].relations[0].items[0]"},
		{"EmptyGroup", Model{Of(A, Rel("r>", Group()))}, "model[0].relations[0].items[0].anchor"},
		{"NestedError", Model{Of(A, Rel("r>", Of(B, Rel("s>"))))}, "model[0].relations[0].items[0].relations[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.model)
			if err == nil {
				t.Fatalf("Parse() = %v, want error", got)
			}
			if !errs.Is(err, errs.ErrCodeMalformedInput) {
				t.Errorf("Parse() code = %v, want %v", errs.GetCode(err), errs.ErrCodeMalformedInput)
			}
			if !strings.HasPrefix(errs.UserMessage(err), tt.wantPath+":") {
				t.Errorf("Parse() message = %q, want prefix %q", errs.UserMessage(err), tt.wantPath)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	strict := NewParser(Options{Strict: true})

	tests := []struct {
		name    string
		model   Model
		wantErr bool
	}{
		{"Glyphed", Model{Of(A, Rels([]string{"<up", "down>"}, B))}, false},
		{"BareName", Model{Of(A, Rel("inert", B))}, true},
		{"BareNameAmongGlyphed", Model{Of(A, Rels([]string{"uses>", "inert"}, B))}, true},
		{"EmptyUpstreamName", Model{Of(A, Rel("<", B))}, true},
		{"EmptyDownstreamName", Model{Of(A, Rel(">", B))}, true},
		{"NestedBareName", Model{Of(A, Rel("r>", Of(B, Rel("inert", C))))}, true},
		{"EmptyToken", Model{Of(A, Rel("", B))}, true},
		{"MultiLineToken", Model{Of(A, Rel("multi\nline>", B))}, true},
		{"LongToken", Model{Of(A, Rel(strings.Repeat("x", 300)+">", B))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := strict.Parse(tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeMalformedInput) {
				t.Errorf("Parse() code = %v, want %v", errs.GetCode(err), errs.ErrCodeMalformedInput)
			}
		})
	}
}

func TestParsePermissiveKeepsEmptyNames(t *testing.T) {
	got, err := Parse(Model{Of(A, Rel(">", B))})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff([]Triplet{T(A, "", B)}, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePermissiveGlyphDecides(t *testing.T) {
	long := strings.Repeat("x", 300)
	longEntity := NewEntity(long)

	tests := []struct {
		name  string
		model Model
		want  []Triplet
	}{
		{"EmptyToken", Model{Of(A, Rel("", B))}, []Triplet{}},
		{"EmptyTokenAmongGlyphed", Model{Of(A, Rels([]string{"", "uses>"}, B))}, []Triplet{T(A, "uses", B)}},
		{"MultiLineToken", Model{Of(A, Rel("multi\nline>", B))}, []Triplet{T(A, "multi\nline", B)}},
		{"LongToken", Model{Of(A, Rel(long+">", B))}, []Triplet{T(A, long, B)}},
		{"LongEntityName", Model{Of(longEntity, Rel("uses>", B))}, []Triplet{T(longEntity, "uses", B)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.model)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLogsDroppedTokens(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	p := NewParser(Options{Logger: logger})

	if _, err := p.Parse(Model{Of(A, Rel("inert", B))}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !strings.Contains(buf.String(), "inert") {
		t.Errorf("expected debug log for dropped token, got %q", buf.String())
	}
}

func TestParseRelationshipName(t *testing.T) {
	tests := []struct {
		token    string
		wantName string
		wantDir  Direction
	}{
		{"uses>", "uses", Downstream},
		{"<part of", "part of", Upstream},
		{"inert", "inert", DirectionNone},
		{"<both>", "both>", Upstream},
		{"<", "", Upstream},
		{">", "", Downstream},
		{"a > b", "a > b", DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			name, dir := ParseRelationshipName(tt.token)
			if name != tt.wantName || dir != tt.wantDir {
				t.Errorf("ParseRelationshipName(%q) = (%q, %v), want (%q, %v)", tt.token, name, dir, tt.wantName, tt.wantDir)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	if Upstream.String() != "upstream" || Downstream.String() != "downstream" || DirectionNone.String() != "none" {
		t.Errorf("unexpected Direction strings: %v %v %v", Upstream, Downstream, DirectionNone)
	}
}
