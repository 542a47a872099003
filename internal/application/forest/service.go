package forest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/pulsar/internal/cachemanager"
	"github.com/zjrosen/pulsar/internal/domain/groups"
	"github.com/zjrosen/pulsar/internal/idgen"
	"github.com/zjrosen/pulsar/internal/log"
	"github.com/zjrosen/pulsar/internal/pubsub"
	"github.com/zjrosen/pulsar/internal/tracing"
)

// DefaultCacheTTL is how long a cached snapshot lives when no TTL is set.
const DefaultCacheTTL = 10 * time.Minute

// Snapshot is the result of one build. The forest must be treated as
// read-only once returned, since cached snapshots are shared.
type Snapshot struct {
	Source     string
	Forest     *groups.Registry
	Report     *groups.BuildReport
	Records    int      // records returned by the loader
	Duplicates []string // internal ids skipped because they were already assigned
	BuiltAt    time.Time
}

// Roots returns the roots of the built forest in order.
func (s *Snapshot) Roots() []*groups.Group {
	return s.Forest.Values()
}

// Update is the payload published after each Rebuild. Exactly one of
// Snapshot and Err is set.
type Update struct {
	Source   string
	Snapshot *Snapshot
	Err      error
}

// Request names a source and the loader that reads it.
type Request struct {
	Source string
	Loader groups.Loader
}

// Service builds forests from loaders.
type Service struct {
	tracer         trace.Tracer
	includeUnknown bool
	cacheTTL       time.Duration
	cache          *cachemanager.ReadThroughCache[string, *Snapshot, Request]
	publisher      pubsub.Publisher[Update]
	now            func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTracer sets the tracer used for build spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithUnknownGroup indexes the reserved unknown group in every build.
func WithUnknownGroup(include bool) Option {
	return func(s *Service) { s.includeUnknown = include }
}

// WithCache stores snapshots in cache for ttl. Without it BuildCached
// always builds.
func WithCache(cache cachemanager.CacheManager[string, *Snapshot], ttl time.Duration, opts ...cachemanager.ReadThroughOption) Option {
	return func(s *Service) {
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		s.cacheTTL = ttl
		s.cache = cachemanager.NewReadThroughCache[string, *Snapshot, Request](cache, s.load, opts...)
	}
}

// WithPublisher publishes the outcome of every Rebuild.
func WithPublisher(publisher pubsub.Publisher[Update]) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithClock overrides the time source used for BuiltAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a forest service.
func NewService(opts ...Option) *Service {
	s := &Service{
		tracer: noop.NewTracerProvider().Tracer("noop"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build loads the records for source and builds a fresh forest.
func (s *Service) Build(ctx context.Context, source string, loader groups.Loader) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanBuild,
		trace.WithAttributes(attribute.String(tracing.AttrSource, source)))

	snap, err := s.build(ctx, source, loader)
	if err == nil {
		span.SetAttributes(
			attribute.Int(tracing.AttrRecords, snap.Records),
			attribute.Int(tracing.AttrGroups, snap.Report.Total),
			attribute.Int(tracing.AttrRoots, snap.Report.Roots),
		)
	}
	tracing.EndSpan(span, err)
	return snap, err
}

// BuildCached returns the snapshot cached under key, building it on a miss.
// hit reports whether the snapshot came from the cache. Without a cache it
// behaves like Build.
func (s *Service) BuildCached(ctx context.Context, key, source string, loader groups.Loader) (snap *Snapshot, hit bool, err error) {
	if s.cache == nil {
		snap, err = s.Build(ctx, source, loader)
		return snap, false, err
	}

	snap, hit, err = s.cache.Get(ctx, key, Request{Source: source, Loader: loader}, s.cacheTTL)
	if err != nil {
		return nil, false, err
	}
	log.Debug(log.CatCache, "forest lookup", "key", key, "hit", hit)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String(tracing.AttrCacheKey, key),
		attribute.Bool(tracing.AttrCacheHit, hit),
	)
	return snap, hit, nil
}

// Invalidate drops cached snapshots so the next BuildCached rebuilds them.
func (s *Service) Invalidate(ctx context.Context, keys ...string) error {
	if s.cache == nil || len(keys) == 0 {
		return nil
	}
	log.Debug(log.CatCache, "invalidating forests", "keys", strings.Join(keys, ","))
	return s.cache.Invalidate(ctx, keys...)
}

// Rebuild drops key from the cache, builds the source again and publishes
// the outcome.
func (s *Service) Rebuild(ctx context.Context, key, source string, loader groups.Loader) (*Snapshot, error) {
	if err := s.Invalidate(ctx, key); err != nil {
		return nil, fmt.Errorf("invalidating %s: %w", key, err)
	}

	snap, _, err := s.BuildCached(ctx, key, source, loader)
	if s.publisher != nil {
		if err != nil {
			s.publisher.Publish(pubsub.FailedEvent, Update{Source: source, Err: err})
		} else {
			s.publisher.Publish(pubsub.BuiltEvent, Update{Source: source, Snapshot: snap})
		}
	}
	return snap, err
}

func (s *Service) load(ctx context.Context, req Request) (*Snapshot, error) {
	return s.Build(ctx, req.Source, req.Loader)
}

func (s *Service) build(ctx context.Context, source string, loader groups.Loader) (*Snapshot, error) {
	records, err := s.loadRecords(ctx, source, loader)
	if err != nil {
		return nil, err
	}

	reg, duplicates := s.assign(ctx, records)

	_, span := s.tracer.Start(ctx, tracing.SpanTranslate)
	reg.UpdateParentIDsToGUIDs()
	span.End()

	report, err := s.hierarchy(ctx, reg)
	if err != nil {
		return nil, err
	}

	log.Info(log.CatHierarchy, "built forest",
		"source", source,
		"records", len(records),
		"groups", report.Total,
		"roots", report.Roots,
		"dangling", len(report.Dangling),
		"promoted", len(report.Promoted))

	return &Snapshot{
		Source:     source,
		Forest:     reg,
		Report:     report,
		Records:    len(records),
		Duplicates: duplicates,
		BuiltAt:    s.now(),
	}, nil
}

func (s *Service) loadRecords(ctx context.Context, source string, loader groups.Loader) ([]groups.Record, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanLoad)

	records, err := loader.Load(ctx)
	if err != nil {
		err = fmt.Errorf("loading %s: %w", source, err)
		log.ErrorErr(log.CatLoad, "Failed to load records", err, "source", source)
		tracing.EndSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int(tracing.AttrRecords, len(records)))
	tracing.EndSpan(span, nil)
	return records, nil
}

// assign indexes one group per record in a fresh registry. Records whose
// internal id is already indexed are skipped and returned as duplicates.
func (s *Service) assign(ctx context.Context, records []groups.Record) (*groups.Registry, []string) {
	_, span := s.tracer.Start(ctx, tracing.SpanAssign)
	defer span.End()

	reg := groups.NewRegistry()
	var duplicates []string
	for _, rec := range records {
		g := groupFromRecord(rec)
		if reg.Has(g.ID()) {
			duplicates = append(duplicates, g.ID())
			log.Warn(log.CatRegistry, "duplicate group skipped", "id", g.ID(), "external_id", rec.ExternalID)
			span.AddEvent(tracing.EventDuplicateSkipped, trace.WithAttributes(
				attribute.String("group.id", g.ID()),
				attribute.String("group.external_id", rec.ExternalID),
			))
			continue
		}
		// groupFromRecord never yields a nil group or an empty id.
		_ = reg.Assign(g)
	}
	if s.includeUnknown {
		reg.UnknownGroup()
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrGroups, reg.Len()),
		attribute.Int(tracing.AttrDuplicate, len(duplicates)),
	)
	return reg, duplicates
}

func (s *Service) hierarchy(ctx context.Context, reg *groups.Registry) (*groups.BuildReport, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanHierarchy)

	report, err := reg.BuildHierarchy()
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, fmt.Errorf("building hierarchy: %w", err)
	}

	for _, id := range report.Promoted {
		log.Warn(log.CatHierarchy, "parent cycle broken", "promoted", id)
		span.AddEvent(tracing.EventCycleBroken, trace.WithAttributes(attribute.String("group.id", id)))
	}
	if len(report.Dangling) > 0 {
		log.Debug(log.CatHierarchy, "groups with unregistered parents became roots", "ids", strings.Join(report.Dangling, ","))
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrRoots, report.Roots),
		attribute.Int(tracing.AttrDangling, len(report.Dangling)),
		attribute.Int(tracing.AttrPromoted, len(report.Promoted)),
	)
	tracing.EndSpan(span, nil)
	return report, nil
}

// groupFromRecord converts a record into an unattached group. The internal
// id is the record GUID when present, otherwise derived from the external id.
func groupFromRecord(rec groups.Record) *groups.Group {
	id := strings.TrimSpace(rec.GUID)
	if id == "" {
		id = idgen.Generate(rec.ExternalID)
	}
	parent := groups.NoParent()
	if p := strings.TrimSpace(rec.Parent); p != "" {
		parent = groups.Unresolved(p)
	}
	return groups.NewGroup(id, rec.ExternalID, rec.Name, rec.Desc, parent)
}
