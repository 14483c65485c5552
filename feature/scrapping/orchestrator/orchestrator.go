package orchestrator

import (
	"context"
	"fmt"

	"scrapper/core/notify"
	"scrapper/core/pipeline"
	"scrapper/core/retry"
	"scrapper/core/source"
	"scrapper/feature/scrapping/classify"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Classifier resolves the category of polymorphic records.
type Classifier interface {
	Classify(typeID int) classify.Decision
	Observe(ctx context.Context, typeID int) error
}

// Converter maps raw records to the target model.
type Converter interface {
	Convert(raw source.RawRecord, kind, category models.EntityKind) (*models.ConvertedRecord, []models.Warning, error)
}

// Integrator writes converted records.
type Integrator interface {
	IntegrateBundle(ctx context.Context, b integrate.Bundle) (*models.IntegrationResult, error)
	Missing(ctx context.Context, kind models.EntityKind, externalIDs []int) ([]int, error)
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Source     source.Client
	Classifier Classifier
	Converter  Converter
	Integrator Integrator
	// Notifier receives job events. Nil discards them.
	Notifier notify.Publisher
	Logger   *zap.Logger
}

// Options tune one job.
type Options struct {
	// SkipCache bypasses cached source pages.
	SkipCache bool `json:"skip_cache"`
	// IncludeRelations imports the records an entity links to.
	IncludeRelations bool `json:"include_relations"`
}

func (o Options) fetch() source.FetchOptions {
	return source.FetchOptions{SkipCache: o.SkipCache}
}

// Orchestrator coordinates the pipeline components.
type Orchestrator struct {
	deps      Deps
	cfg       pipeline.Config
	policies  retry.Policies
	fallbacks retry.FallbackTable
	procs     *semaphore.Weighted
	newID     func() string
}

// New creates an orchestrator. The concurrency budget is read once here.
func New(deps Deps, cfg pipeline.Config) (*Orchestrator, error) {
	if deps.Source == nil || deps.Converter == nil || deps.Integrator == nil {
		return nil, fmt.Errorf("orchestrator needs a source, a converter and an integrator")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Orchestrator{
		deps:      deps,
		cfg:       cfg,
		policies:  cfg.Retry.Policies(),
		fallbacks: retry.DefaultFallbacks(),
		procs:     semaphore.NewWeighted(int64(cfg.Concurrency.MaxConcurrentProcesses)),
		newID:     uuid.NewString,
	}, nil
}

// ImportOne imports a single entity. The job fails when the entity fails.
func (o *Orchestrator) ImportOne(ctx context.Context, kind models.EntityKind, id int, opts Options) *models.BatchResult {
	j, ctx, cancel := o.startJob(ctx, kind, 1)
	defer cancel()

	res := o.importEntity(ctx, j, models.EntityRef{Kind: kind, ID: id}, opts)
	j.record(res)
	return o.finishJob(ctx, j, []models.ImportResult{res}, nil)
}

// ImportBatch imports refs concurrently. Results keep the order of refs. A ref
// listed twice is imported once and its result repeated at every position.
func (o *Orchestrator) ImportBatch(ctx context.Context, refs []models.EntityRef, opts Options) *models.BatchResult {
	if max := o.cfg.Concurrency.Resources.MaxRecordsPerJob; max > 0 && len(refs) > max {
		o.deps.Logger.Warn("Batch truncated to the job record limit",
			zap.Int("requested", len(refs)),
			zap.Int("limit", max),
		)
		refs = refs[:max]
	}

	unique, slot := dedupeRefs(refs)
	if len(unique) < len(refs) {
		o.deps.Logger.Debug("Duplicate refs merged",
			zap.Int("requested", len(refs)),
			zap.Int("unique", len(unique)),
		)
	}

	j, ctx, cancel := o.startJob(ctx, "", len(unique))
	defer cancel()

	done := make([]models.ImportResult, len(unique))
	g := o.entityGroup()
	for i, ref := range unique {
		g.Go(func() error {
			done[i] = o.importEntity(ctx, j, ref, opts)
			j.record(done[i])
			return nil
		})
	}
	_ = g.Wait()

	results := make([]models.ImportResult, len(refs))
	for i := range refs {
		results[i] = done[slot[i]]
	}
	return o.finishJob(ctx, j, results, nil)
}

// dedupeRefs returns the distinct refs in first-seen order and, for every
// position of refs, the index of its distinct ref.
func dedupeRefs(refs []models.EntityRef) ([]models.EntityRef, []int) {
	seen := make(map[models.EntityRef]int, len(refs))
	unique := make([]models.EntityRef, 0, len(refs))
	slot := make([]int, len(refs))
	for i, ref := range refs {
		idx, ok := seen[ref]
		if !ok {
			idx = len(unique)
			seen[ref] = idx
			unique = append(unique, ref)
		}
		slot[i] = idx
	}
	return unique, slot
}

// Preview collects, classifies and converts one entity without writing it.
func (o *Orchestrator) Preview(ctx context.Context, kind models.EntityKind, id int, opts Options) models.ImportResult {
	j := o.newJob(kind, 1)
	return o.run(ctx, j, models.EntityRef{Kind: kind, ID: id}, nil, opts, false)
}

// Config returns the pipeline configuration.
func (o *Orchestrator) Config() pipeline.Config {
	return o.cfg
}
