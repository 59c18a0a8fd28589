package bom

import (
	"slices"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/refdes"
)

// Group is a non-empty set of equivalent components, ordered by reference
type Group []Component

// Representative returns the first component; its fields describe the group
func (g Group) Representative() Component {
	return g[0]
}

// Refs returns the reference designators in group order
func (g Group) Refs() []string {
	refs := make([]string, len(g))
	for i, c := range g {
		refs[i] = c.GetRef()
	}
	return refs
}

// GroupComponents partitions comps into equivalence classes under eq. Each
// group is ordered by reference, and groups are ordered by their first
// reference; equal keys keep first-seen order. comps is not modified.
func GroupComponents(comps []Component, eq Equivalence, coll *refdes.Collation) []Group {
	var groups []Group
	if keyer, ok := eq.(Keyer); ok {
		groups = partitionByKey(comps, keyer)
	} else {
		groups = partitionByScan(comps, eq)
	}

	for _, g := range groups {
		slices.SortStableFunc(g, func(a, b Component) int {
			return coll.Compare(a.GetRef(), b.GetRef())
		})
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return coll.Compare(a[0].GetRef(), b[0].GetRef())
	})

	return groups
}

// partitionByKey is a linear-time partition using the equivalence key
func partitionByKey(comps []Component, keyer Keyer) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, c := range comps {
		key := keyer.Key(c)
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], c)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{c})
	}

	return groups
}

// partitionByScan compares each component against every group's first
// member. Quadratic, but works for any Equivalence.
func partitionByScan(comps []Component, eq Equivalence) []Group {
	var groups []Group

	for _, c := range comps {
		found := false
		for i := range groups {
			if eq.Equal(groups[i][0], c) {
				groups[i] = append(groups[i], c)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, Group{c})
		}
	}

	return groups
}
