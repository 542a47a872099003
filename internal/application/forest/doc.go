// Package forest implements the application layer that turns a source of
// flat group records into a built forest.
//
// Service runs the pipeline the domain layer leaves to its callers:
//   - load records through a groups.Loader
//   - derive internal ids (the record GUID, or idgen.Generate of the external id)
//   - assign every group to a fresh groups.Registry, skipping duplicate ids
//   - optionally index the reserved unknown group
//   - translate parent references and build the hierarchy
//
// Each step is logged and traced. BuildCached keeps finished snapshots in a
// read-through cache keyed by the caller, and Rebuild publishes the outcome
// of a build to subscribers such as the watch command.
package forest
