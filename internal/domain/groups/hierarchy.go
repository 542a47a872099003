package groups

import "fmt"

// BuildReport summarizes a BuildHierarchy run.
type BuildReport struct {
	Total    int      // groups indexed before the build
	Roots    int      // roots indexed after the build
	Dangling []string // groups whose parent id was not registered
	Promoted []string // groups promoted to root to break a cycle
}

// BuildHierarchy rearranges the indexed groups into a forest in place.
//
// Every group whose parent is none, or names a group that is not registered,
// becomes a root. Each remaining group is attached to its parent's children.
// Groups that cannot be reached from any root sit on (or hang off) a parent
// cycle; each cycle is cut by promoting one member to root. Iteration follows
// insertion order throughout, so the same input always yields the same forest.
//
// When the build finishes the registry indexes only the roots; every other
// group is reachable through exactly one parent's children.
//
// Parents must have been translated with UpdateParentIDsToGUIDs first. If any
// reference is still unresolved an error wrapping ErrUnresolvedParent is
// returned and nothing is modified.
func (r *Registry) BuildHierarchy() (*BuildReport, error) {
	population := r.population()
	for _, g := range population {
		if !g.parent.IsResolved() {
			return nil, fmt.Errorf("%w: group %s has parent %s", ErrUnresolvedParent, g.id, g.parent)
		}
	}

	byID := make(map[string]*Group, len(population))
	for _, g := range population {
		byID[g.id] = g
	}
	report := &BuildReport{Total: len(population)}

	// Bucket every group under the parent it claims; unknown parents count as none.
	buckets := make(map[string][]*Group)
	var roots []*Group
	for _, g := range population {
		parentID, ok := g.parent.InternalID()
		if _, known := byID[parentID]; !ok || !known {
			if ok {
				report.Dangling = append(report.Dangling, g.id)
				g.SetParent(NoParent())
			}
			roots = append(roots, g)
			continue
		}
		buckets[parentID] = append(buckets[parentID], g)
	}
	for _, g := range population {
		g.SetChildren(buckets[g.id])
	}

	valid := make(map[string]bool, len(population))
	for _, root := range roots {
		collectTree(root, valid)
	}

	// Anything left over loops back on itself without reaching a root.
	// Walks that cut nothing cover subtrees hanging off a cycle; those
	// groups are cleared so no later walk enters them again.
	cleared := make(map[string]bool)
	for _, g := range population {
		if valid[g.id] || cleared[g.id] {
			continue
		}
		for _, promoted := range breakCycle(g, byID, cleared) {
			report.Promoted = append(report.Promoted, promoted.id)
			roots = append(roots, promoted)
			collectTree(promoted, valid)
		}
	}

	r.Reset()
	for _, root := range roots {
		r.insert(root)
	}
	report.Roots = len(roots)
	return report, nil
}

// population lists every group the registry can reach: each indexed group in
// insertion order followed by its descendants. Before a build that is just
// the indexed groups; after one it is the whole forest, which makes a second
// build a no-op.
func (r *Registry) population() []*Group {
	seen := make(map[string]bool, len(r.order))
	all := make([]*Group, 0, len(r.order))
	Walk(r.Values(), func(g *Group, _ int) bool {
		if seen[g.id] {
			return false
		}
		seen[g.id] = true
		all = append(all, g)
		return true
	})
	return all
}

// collectTree marks every group reachable from root, pre-order.
func collectTree(root *Group, valid map[string]bool) {
	stack := []*Group{root}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if valid[g.id] {
			continue
		}
		valid[g.id] = true
		for i := len(g.children) - 1; i >= 0; i-- {
			stack = append(stack, g.children[i])
		}
	}
}

// breakCycle walks down from start and cuts every edge that leads back to a
// group already seen in this walk. The cut group is detached from its parent
// and returned as a new root. The visited set is local to the call; cleared
// groups are not entered. When nothing is cut every visited group is added
// to cleared, since none of them can sit on a cycle.
func breakCycle(start *Group, byID map[string]*Group, cleared map[string]bool) []*Group {
	var promoted []*Group
	visited := make(map[string]bool)
	stack := []*Group{start}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cleared[g.id] {
			continue
		}
		if visited[g.id] {
			if parentID, ok := g.parent.InternalID(); ok {
				if parent, ok := byID[parentID]; ok {
					parent.Detach(g)
				}
			}
			g.SetParent(NoParent())
			promoted = append(promoted, g)
			continue
		}
		visited[g.id] = true
		for i := len(g.children) - 1; i >= 0; i-- {
			stack = append(stack, g.children[i])
		}
	}
	if len(promoted) == 0 {
		for id := range visited {
			cleared[id] = true
		}
	}
	return promoted
}

// Walk visits every group of the forest rooted at roots in pre-order,
// siblings in order. fn receives the depth of the group (0 for roots);
// returning false skips the group's descendants.
func Walk(roots []*Group, fn func(g *Group, depth int) bool) {
	type frame struct {
		group *Group
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.group, f.depth) {
			continue
		}
		children := f.group.children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], f.depth + 1})
		}
	}
}

// Count returns the number of groups in the forest rooted at roots.
func Count(roots []*Group) int {
	n := 0
	Walk(roots, func(*Group, int) bool {
		n++
		return true
	})
	return n
}
