package orchestrator

import (
	"context"
	"sync"

	"scrapper/core/source"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImportCategory imports every record of kind, page by page. Records of the
// resource and consumable categories are listed from the shared items
// endpoint; those the classifier puts in another category are left out.
// Results are ordered by external id.
func (o *Orchestrator) ImportCategory(ctx context.Context, kind models.EntityKind, opts Options) *models.BatchResult {
	resources := o.cfg.Concurrency.Resources
	j, ctx, cancel := o.startJob(ctx, kind, 0)
	defer cancel()

	var (
		mu      sync.Mutex
		results []models.ImportResult
	)
	batches := new(errgroup.Group)
	batches.SetLimit(o.cfg.Concurrency.MaxConcurrentBatches)

	fetch := opts.fetch()
	fetch.MaxPages = resources.MaxPagesPerCategory

	if err := j.state.advance(models.JobCollecting); err != nil {
		j.logger.Error("Job state rejected", zap.Error(err))
	}

	pages := 0
	err := o.deps.Source.FetchAll(ctx, kind.ResourceType(), nil, resources.MaxRecordsPerJob, fetch, func(p *source.Page) error {
		pages++
		records := append([]source.RawRecord(nil), p.Data...)
		j.logger.Debug("Category page collected",
			zap.Int("page", pages),
			zap.Int("skip", p.Skip),
			zap.Int("records", len(records)),
			zap.Int("total", p.Total),
		)

		// Go blocks while MaxConcurrentBatches pages are in flight.
		batches.Go(func() error {
			out := o.runPage(ctx, j, kind, records, opts)
			mu.Lock()
			results = append(results, out...)
			mu.Unlock()
			return nil
		})
		return ctx.Err()
	})
	_ = batches.Wait()

	var jobErr *models.ErrorInfo
	if err != nil {
		jobErr = errorInfo(models.PhaseCollect, 0, err)
		j.logger.Error("Category listing failed", zap.Int("pages", pages), zap.Error(err))
	}

	sortResults(results)
	return o.finishJob(ctx, j, results, jobErr)
}

// runPage imports the records of one page with the entity bound of the job.
func (o *Orchestrator) runPage(ctx context.Context, j *job, kind models.EntityKind, records []source.RawRecord, opts Options) []models.ImportResult {
	slots := make([]*models.ImportResult, len(records))
	g := o.entityGroup()
	for i := range records {
		raw := records[i]
		if !o.inCategory(kind, raw) {
			continue
		}
		g.Go(func() error {
			res := o.run(ctx, j, models.EntityRef{Kind: kind, ID: raw.ID}, &raw, opts, true)
			j.record(res)
			slots[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.ImportResult, 0, len(records))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// inCategory filters the shared items endpoint down to one category.
func (o *Orchestrator) inCategory(kind models.EntityKind, raw source.RawRecord) bool {
	if !kind.Polymorphic() || kind == models.KindItem || o.deps.Classifier == nil {
		return true
	}
	typeID, ok := raw.Number("typeId")
	if !ok {
		return false
	}
	return o.deps.Classifier.Classify(int(typeID)).Kind == kind
}
