package groups

import "slices"

// UnknownGroupID is the reserved internal id of the sentinel group that
// collects items whose group is missing or unrelated to the loaded groups.
const UnknownGroupID = "6120-31c2-4177-ad03-6d93a3a87976-unknown_id"

const unknownGroupName = "Unknown Group"

// guidEntry is a slot in the external id index. Removed entries are kept as
// tombstones so lookups report "absent" instead of a stale internal id.
type guidEntry struct {
	id      string
	removed bool
}

// Registry indexes groups by internal id and maps external ids to internal
// ids. It is not safe for concurrent use; callers serialize construction per
// instance.
type Registry struct {
	groups map[string]*Group    // internal id -> group
	order  []string             // internal ids in insertion order
	guids  map[string]guidEntry // external id -> internal id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset clears both indices so the registry can be reused.
func (r *Registry) Reset() {
	r.groups = make(map[string]*Group)
	r.order = make([]string, 0)
	r.guids = make(map[string]guidEntry)
}

// Has reports whether a group with the internal id is indexed.
// The empty id is never present.
func (r *Registry) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := r.groups[id]
	return ok
}

// Assign indexes a group. Assigning an internal id that is already present
// is a no-op and leaves the external id index untouched. A group without an
// internal id is rejected.
func (r *Registry) Assign(g *Group) error {
	if g == nil {
		return &TypeConstraintError{Expected: "*groups.Group", Actual: "nil"}
	}
	if g.ID() == "" {
		return &TypeConstraintError{Expected: "group with an internal id", Actual: "empty id"}
	}
	if r.Has(g.ID()) {
		return nil
	}
	r.insert(g)
	return nil
}

func (r *Registry) insert(g *Group) {
	r.groups[g.id] = g
	r.order = append(r.order, g.id)
	if g.externalID != "" {
		r.guids[g.externalID] = guidEntry{id: g.id}
	}
}

// Remove drops the group with the internal id and tombstones its external id
// entry. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	g, ok := r.Get(id)
	if !ok {
		return
	}
	delete(r.groups, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	if g.externalID != "" {
		r.guids[g.externalID] = guidEntry{removed: true}
	}
}

// Get returns the group with the internal id.
func (r *Registry) Get(id string) (*Group, bool) {
	if !r.Has(id) {
		return nil, false
	}
	return r.groups[id], true
}

// GUID returns the internal id registered for an external id.
func (r *Registry) GUID(externalID string) (string, bool) {
	if externalID == "" {
		return "", false
	}
	entry, ok := r.guids[externalID]
	if !ok || entry.removed {
		return "", false
	}
	return entry.id, true
}

// IsEmpty reports whether no group is indexed.
func (r *Registry) IsEmpty() bool {
	return len(r.groups) == 0
}

// Len returns the number of indexed groups.
func (r *Registry) Len() int {
	return len(r.groups)
}

// Keys returns a snapshot of the indexed internal ids in insertion order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// Values returns a snapshot of the indexed groups in insertion order.
func (r *Registry) Values() []*Group {
	values := make([]*Group, 0, len(r.order))
	for _, id := range r.order {
		values = append(values, r.groups[id])
	}
	return values
}

// UnknownGroup returns the sentinel group, creating and indexing it on the
// first call.
func (r *Registry) UnknownGroup() *Group {
	if g, ok := r.Get(UnknownGroupID); ok {
		return g
	}
	unknown := NewGroup(UnknownGroupID, UnknownGroupID, unknownGroupName, unknownGroupName, NoParent())
	r.insert(unknown)
	return unknown
}

// UpdateParentIDsToGUIDs translates every unresolved parent reference from
// an external id to the internal id registered for it. External ids that are
// unknown, tombstoned or empty translate to no parent. References that are
// already resolved are left alone, so repeated calls are harmless.
func (r *Registry) UpdateParentIDsToGUIDs() {
	for _, id := range r.order {
		g := r.groups[id]
		if g.parent.IsResolved() {
			continue
		}
		g.SetParent(r.translate(g.parent))
	}
}

func (r *Registry) translate(ref ParentRef) ParentRef {
	externalID, ok := ref.ExternalID()
	if !ok {
		return NoParent()
	}
	guid, ok := r.GUID(externalID)
	if !ok {
		return NoParent()
	}
	return Resolved(guid)
}
