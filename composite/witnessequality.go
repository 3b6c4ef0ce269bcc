package composite

// disjointPartition is the disjoint equality partition computed (by
// computeDisjointPartition) from a MetaStatements bag: sets that share any WitnessRef are merged by
// transitive closure (SPEC_FULL.md §4.6, §9). The result is a slice of
// pairwise-disjoint EqualWitnesses plus a reverse lookup map so any
// WitnessRef resolves to its class index in O(1).
type disjointPartition struct {
	classes []EqualWitnesses
	index   map[WitnessRef]int
}

func (d *disjointPartition) classFor(w WitnessRef) (int, bool) {
	i, ok := d.index[w]
	return i, ok
}

// computeDisjointPartition builds the canonical partition. Order of the
// input equality sets does not affect the resulting partition up to
// permutation (SPEC_FULL.md §8 property 8): the union-find merges purely by
// shared membership, never by input order.
func computeDisjointPartition(meta *MetaStatements) *disjointPartition {
	parent := map[WitnessRef]*WitnessRef{}
	rank := map[WitnessRef]int{}

	var find func(w WitnessRef) WitnessRef
	find = func(w WitnessRef) WitnessRef {
		p, ok := parent[w]
		if !ok {
			parent[w] = &w
			return w
		}
		if *p == w {
			return w
		}
		root := find(*p)
		parent[w] = &root
		return root
	}

	union := func(a, b WitnessRef) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rank[ra] < rank[rb] {
			ra, rb = rb, ra
		}
		parent[rb] = &ra
		if rank[ra] == rank[rb] {
			rank[ra]++
		}
	}

	for _, eq := range meta.equalities {
		if len(eq) == 0 {
			continue
		}
		first := eq[0]
		find(first)
		for _, w := range eq[1:] {
			find(w)
			union(first, w)
		}
	}

	groups := map[WitnessRef][]WitnessRef{}
	for w := range parent {
		root := find(w)
		groups[root] = append(groups[root], w)
	}

	d := &disjointPartition{index: map[WitnessRef]int{}}
	for _, members := range groups {
		if len(members) < 2 {
			// A class with a single member constrains nothing; it is
			// dropped, mirroring the Rust original's treatment of trivial
			// equality sets.
			continue
		}
		idx := len(d.classes)
		d.classes = append(d.classes, EqualWitnesses(members))
		for _, w := range members {
			d.index[w] = idx
		}
	}
	return d
}
