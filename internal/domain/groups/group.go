package groups

import "strings"

// parentState tags which identifier space a ParentRef lives in.
type parentState int

const (
	parentUnresolved parentState = iota // id is an external id from the source system
	parentResolved                      // id is an internal id (or empty for none)
)

// ParentRef is a group's reference to its parent. Before translation it holds
// the external id named by the source record; after translation it holds the
// parent's internal id, or nothing when the parent is unknown.
// An empty id means "no parent" in both states.
type ParentRef struct {
	state parentState
	id    string
}

// Unresolved returns a parent reference that still names an external id.
func Unresolved(externalID string) ParentRef {
	return ParentRef{state: parentUnresolved, id: externalID}
}

// Resolved returns a parent reference to an internal id.
func Resolved(internalID string) ParentRef {
	return ParentRef{state: parentResolved, id: internalID}
}

// NoParent returns the resolved "none" reference carried by roots.
func NoParent() ParentRef {
	return ParentRef{state: parentResolved}
}

// IsResolved reports whether the reference has been translated to internal ids.
func (p ParentRef) IsResolved() bool {
	return p.state == parentResolved
}

// IsNone reports whether the reference names no parent at all.
func (p ParentRef) IsNone() bool {
	return p.id == ""
}

// ExternalID returns the external parent id while the reference is unresolved.
func (p ParentRef) ExternalID() (string, bool) {
	if p.state != parentUnresolved || p.id == "" {
		return "", false
	}
	return p.id, true
}

// InternalID returns the internal parent id once the reference is resolved.
func (p ParentRef) InternalID() (string, bool) {
	if p.state != parentResolved || p.id == "" {
		return "", false
	}
	return p.id, true
}

func (p ParentRef) String() string {
	switch {
	case p.id == "":
		return "<none>"
	case p.state == parentUnresolved:
		return "ext:" + p.id
	default:
		return p.id
	}
}

// Group is one element of the hierarchy.
type Group struct {
	id         string    // internal id, immutable
	externalID string    // id in the source system, immutable
	name       string    // display name
	desc       string    // display description
	parent     ParentRef // non-owning back reference, looked up through the registry
	children   []*Group  // owned, ordered
}

// NewGroup creates a group whose parent is still named by external id.
// Name and description are trimmed of surrounding whitespace.
func NewGroup(id, externalID, name, desc string, parent ParentRef) *Group {
	return &Group{
		id:         id,
		externalID: externalID,
		name:       strings.TrimSpace(name),
		desc:       strings.TrimSpace(desc),
		parent:     parent,
		children:   []*Group{},
	}
}

// ID returns the internal id.
func (g *Group) ID() string {
	return g.id
}

// ExternalID returns the id the source system knows this group by.
func (g *Group) ExternalID() string {
	return g.externalID
}

// Name returns the display name.
func (g *Group) Name() string {
	return g.name
}

// Description returns the display description.
func (g *Group) Description() string {
	return g.desc
}

// Parent returns the current parent reference.
func (g *Group) Parent() ParentRef {
	return g.parent
}

// SetParent replaces the parent reference unconditionally.
func (g *Group) SetParent(ref ParentRef) {
	g.parent = ref
}

// Children returns the live ordered child list.
func (g *Group) Children() []*Group {
	return g.children
}

// SetChildren replaces the child list wholesale. The slice is copied.
func (g *Group) SetChildren(children []*Group) {
	g.children = append(make([]*Group, 0, len(children)), children...)
}

// Detach removes child from this group's children, preserving sibling order.
// Returns false if child is not a direct child.
func (g *Group) Detach(child *Group) bool {
	if child == nil {
		return false
	}
	for i, c := range g.children {
		if c.id == child.id {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

// IsRoot reports whether the group has no resolved parent.
func (g *Group) IsRoot() bool {
	return g.parent.IsResolved() && g.parent.IsNone()
}

// IsLeaf reports whether the group has no children.
func (g *Group) IsLeaf() bool {
	return len(g.children) == 0
}
