package erm

// EdgesOfName returns the triplets carrying the relationship name, with each
// kept triplet's edge narrowed to that one name. Order follows triplets.
// An empty name matches nothing.
func EdgesOfName(name string, triplets []Triplet) []Triplet {
	out := []Triplet{}
	if name == "" {
		return out
	}
	for _, t := range triplets {
		if t.Edge.Contains(name) {
			out = append(out, Triplet{Source: t.Source, Edge: Names(name), Target: t.Target})
		}
	}
	return out
}

// EdgesOfNode returns the triplets in which node (compared by identity) is a
// source or a target, skipping any triplet that carries a name in exclude.
//
// On a kept triplet, each endpoint that contains node is narrowed to the
// matching members; an endpoint without a match is left untouched.
func EdgesOfNode(exclude []string, node *Entity, triplets []Triplet) []Triplet {
	same := func(e *Entity) bool { return e == node }

	out := []Triplet{}
	for _, t := range triplets {
		sources, inSource := t.Source.Filter(same)
		targets, inTarget := t.Target.Filter(same)
		if !inSource && !inTarget {
			continue
		}
		if t.hasEdgeIn(exclude) {
			continue
		}
		out = append(out, narrow(t, sources, inSource, targets, inTarget))
	}
	return out
}

// EdgesOfNodes returns the triplets whose source and target both contain a
// member named like one of nodes, skipping any triplet that carries a name in
// exclude. Unlike [EdgesOfNode], entities are compared by name and both
// endpoints must match.
//
// Kept triplets have both endpoints narrowed to their matching members.
func EdgesOfNodes(exclude []string, nodes []*Entity, triplets []Triplet) []Triplet {
	names := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n != nil {
			names[n.Name] = struct{}{}
		}
	}
	named := func(e *Entity) bool {
		if e == nil {
			return false
		}
		_, ok := names[e.Name]
		return ok
	}

	out := []Triplet{}
	for _, t := range triplets {
		sources, inSource := t.Source.Filter(named)
		targets, inTarget := t.Target.Filter(named)
		if !inSource || !inTarget {
			continue
		}
		if t.hasEdgeIn(exclude) {
			continue
		}
		out = append(out, narrow(t, sources, inSource, targets, inTarget))
	}
	return out
}

func narrow(t Triplet, sources Endpoint, keepSources bool, targets Endpoint, keepTargets bool) Triplet {
	if keepSources {
		t.Source = sources
	}
	if keepTargets {
		t.Target = targets
	}
	return t
}
