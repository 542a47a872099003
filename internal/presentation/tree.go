package presentation

import (
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// Label is the text shown for a group in a rendered tree: the name followed
// by the external id, or just the external id when the group is unnamed.
// Groups without either fall back to the internal id.
func Label(g *groups.Group) string {
	switch {
	case g.Name() == "" && g.ExternalID() == "":
		return g.ID()
	case g.Name() == "":
		return g.ExternalID()
	case g.Name() == g.ExternalID():
		return g.Name()
	default:
		return g.Name() + " [" + g.ExternalID() + "]"
	}
}

// RenderTree draws the forest rooted at roots with box-drawing connectors,
// one group per line. An empty forest renders as the empty string.
func RenderTree(roots []*groups.Group) string {
	if len(roots) == 0 {
		return ""
	}

	forest := tree.New()
	// path[d] is the tree node that receives children at depth d.
	path := []*tree.Tree{forest}
	groups.Walk(roots, func(g *groups.Group, depth int) bool {
		node := tree.Root(Label(g))
		path = path[:depth+1]
		path[depth].Child(node)
		path = append(path, node)
		return true
	})
	return forest.String()
}
