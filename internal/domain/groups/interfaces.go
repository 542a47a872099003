package groups

import "context"

// Record is one flat group record as supplied by a source system.
type Record struct {
	// GUID is the internal id. When empty it is derived from ExternalID.
	GUID string
	// ExternalID identifies the group in the source system.
	ExternalID string
	Name       string
	Desc       string
	// Parent is the external id of the parent, empty for none.
	Parent string
}

// Loader supplies flat group records in source order.
// Implementations report a missing source and a malformed source as
// distinct errors; neither is handled by the registry.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)
}

// Forest is read-only access to a built hierarchy.
type Forest interface {
	// Values returns the roots in insertion order.
	Values() []*Group

	// Get returns an indexed root by internal id.
	Get(id string) (*Group, bool)

	// GUID returns the internal id for an external id of an indexed root.
	GUID(externalID string) (string, bool)

	// Len returns the number of roots.
	Len() int
}

// Compile-time check that Registry implements Forest.
var _ Forest = (*Registry)(nil)
