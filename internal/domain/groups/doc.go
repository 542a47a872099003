// Package groups implements the domain layer for consolidating flat,
// externally sourced group records into a forest.
//
// The package is pure Go with standard library imports only. It knows
// nothing about files, databases or logging; loaders and the application
// service live elsewhere.
//
// # Core Types
//
// Group is one hierarchy element: internal id, external id, display strings,
// a ParentRef and an ordered list of children.
//
// ParentRef is a tagged reference. Source records name parents by external
// id (Unresolved); the registry rewrites them to internal ids (Resolved) or
// to NoParent when the external id is unknown.
//
// Registry indexes groups by internal id and external id, keeps insertion
// order, and owns the lazily created UnknownGroup sentinel.
//
// # Building a Forest
//
//	reg := groups.NewRegistry()
//	for _, g := range loaded {
//	    _ = reg.Assign(g)
//	}
//	reg.UpdateParentIDsToGUIDs()
//	report, err := reg.BuildHierarchy()
//
// BuildHierarchy attaches every group to its parent, treats groups with an
// unknown parent as roots, and breaks parent cycles by promoting one member
// of each cycle to root. Afterwards the registry indexes only the roots.
//
// All traversals use explicit stacks, so arbitrarily deep or adversarial
// input cannot exhaust the goroutine stack.
package groups
