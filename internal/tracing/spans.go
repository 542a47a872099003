package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanBuild     = "forest.build"
	SpanLoad      = "forest.load"
	SpanAssign    = "forest.assign"
	SpanTranslate = "forest.translate"
	SpanHierarchy = "forest.hierarchy"
)

// Span attribute keys.
const (
	AttrSource    = "source.path"
	AttrFormat    = "source.format"
	AttrRecords   = "source.records"
	AttrGroups    = "forest.groups"
	AttrRoots     = "forest.roots"
	AttrDangling  = "forest.dangling"
	AttrPromoted  = "forest.promoted"
	AttrDuplicate = "forest.duplicates"
	AttrCacheHit  = "cache.hit"
	AttrCacheKey  = "cache.key"
)

// Span event names.
const (
	EventDuplicateSkipped = "duplicate.skipped"
	EventCycleBroken      = "cycle.broken"
)

// EndSpan records err on span, sets the status and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
