package orchestrator

import (
	"context"
	"fmt"
	"time"

	"scrapper/core/retry"
	"scrapper/core/source"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// importEntity runs the whole pipeline of one entity.
func (o *Orchestrator) importEntity(ctx context.Context, j *job, ref models.EntityRef, opts Options) models.ImportResult {
	return o.run(ctx, j, ref, nil, opts, true)
}

// run processes one entity. When raw is nil the record is collected first.
// When write is false the pipeline stops after conversion.
func (o *Orchestrator) run(ctx context.Context, j *job, ref models.EntityRef, raw *source.RawRecord, opts Options, write bool) (res models.ImportResult) {
	res = models.ImportResult{Kind: ref.Kind, ExternalID: ref.ID}
	log := j.logger.With(zap.Int("external_id", ref.ID))

	state := newLifecycle(log, zapcore.DebugLevel)
	defer func() {
		final := models.JobSucceeded
		if !res.Success {
			final = models.JobFailed
		}
		j.move(state, final)
		res.States = state.states()
	}()

	if err := o.procs.Acquire(ctx, 1); err != nil {
		res.Error = errorInfo(models.PhaseCollect, 0, err)
		return res
	}
	defer o.procs.Release(1)

	if raw == nil {
		j.move(state, models.JobCollecting)
		rec, attempts, err := o.collect(ctx, ref, opts)
		if err != nil {
			return o.fail(log, res, models.PhaseCollect, attempts, err)
		}
		raw = &rec
	}
	if raw.ID != 0 {
		res.ExternalID = raw.ID
	}

	category := ref.Kind
	if ref.Kind.Polymorphic() {
		j.move(state, models.JobClassifying)
		var warnings []models.Warning
		category, warnings = o.classify(ctx, log, ref.Kind, *raw)
		res.Warnings = append(res.Warnings, warnings...)
	}

	j.move(state, models.JobConverting)
	rec, warnings, attempts, err := o.convert(ctx, *raw, ref.Kind, category)
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return o.fail(log, res, models.PhaseConvert, attempts, err)
	}
	res.Converted = rec
	if !write {
		res.Success = true
		return res
	}

	toWrite := *rec
	bundle := integrate.Bundle{Record: &toWrite}
	if opts.IncludeRelations {
		related, results, relWarnings := o.relations(ctx, j, rec, opts)
		bundle.Related = related
		res.Related = results
		res.Warnings = append(res.Warnings, relWarnings...)
	} else {
		toWrite.Relations = nil
	}

	j.move(state, models.JobIntegrating)
	data, attempts, err := o.integrate(ctx, bundle)
	if err != nil {
		return o.fail(log, res, models.PhaseIntegrate, attempts, err)
	}
	res.Data = data
	res.Success = true
	attachLinks(res.Related, data.Links)

	log.Debug("Entity imported",
		zap.String("table", data.Table),
		zap.Uint("id", data.ID),
		zap.String("action", string(data.Action)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res
}

func (o *Orchestrator) fail(log *zap.Logger, res models.ImportResult, phase models.Phase, attempts int, err error) models.ImportResult {
	res.Error = errorInfo(phase, attempts, err)
	log.Warn("Entity import failed",
		zap.String("phase", string(phase)),
		zap.String("condition", string(res.Error.Condition)),
		zap.Int("attempts", res.Error.Attempts),
		zap.Error(err),
	)
	return res
}

// attempt runs op under the timeout and retry policy of class.
func (o *Orchestrator) attempt(ctx context.Context, class retry.Class, timeout time.Duration, op func(context.Context) error) (int, error) {
	retryable := func(err error) bool {
		return ctx.Err() == nil && o.fallbacks.Retryable(conditionOf(err))
	}
	return retry.Do(ctx, o.policies.For(class), retryable, func(ctx context.Context) error {
		pctx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		err := op(pctx)
		if err != nil && ctx.Err() == nil && pctx.Err() == context.DeadlineExceeded {
			return &timeoutError{class: class, timeout: timeout, err: err}
		}
		return err
	})
}

func (o *Orchestrator) collect(ctx context.Context, ref models.EntityRef, opts Options) (source.RawRecord, int, error) {
	resourceType := ref.Kind.ResourceType()
	if resourceType == "" {
		return source.RawRecord{}, 0, fmt.Errorf("unknown entity kind %q", ref.Kind)
	}

	var raw source.RawRecord
	attempts, err := o.attempt(ctx, retry.ClassCollection, o.cfg.Timeouts.Collection, func(ctx context.Context) error {
		r, err := o.deps.Source.FetchOne(ctx, resourceType, ref.ID, opts.fetch())
		if err != nil {
			return err
		}
		raw = r
		return nil
	})
	return raw, attempts, err
}

// classify resolves the category of a polymorphic record. Registry failures
// are logged and never fail the entity.
func (o *Orchestrator) classify(ctx context.Context, log *zap.Logger, kind models.EntityKind, raw source.RawRecord) (models.EntityKind, []models.Warning) {
	if o.deps.Classifier == nil {
		return kind, nil
	}
	n, ok := raw.Number("typeId")
	if !ok {
		return models.KindItem, nil
	}
	typeID := int(n)

	if err := o.deps.Classifier.Observe(ctx, typeID); err != nil {
		log.Warn("Failed to record source type", zap.Int("type_id", typeID), zap.Error(err))
	}

	d := o.deps.Classifier.Classify(typeID)
	if !d.Ambiguous() {
		return d.Kind, nil
	}
	return d.Kind, []models.Warning{{
		Field:   "typeId",
		Code:    models.WarningClassificationAmbiguity,
		Message: fmt.Sprintf("type %d matches %v, classified as %s", typeID, d.Matches, d.Kind),
	}}
}

func (o *Orchestrator) convert(ctx context.Context, raw source.RawRecord, kind, category models.EntityKind) (*models.ConvertedRecord, []models.Warning, int, error) {
	var (
		rec      *models.ConvertedRecord
		warnings []models.Warning
	)
	attempts, err := o.attempt(ctx, retry.ClassConversion, o.cfg.Timeouts.Conversion, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		rec, warnings, err = o.deps.Converter.Convert(raw, kind, category)
		return err
	})
	return rec, warnings, attempts, err
}

func (o *Orchestrator) integrate(ctx context.Context, b integrate.Bundle) (*models.IntegrationResult, int, error) {
	var data *models.IntegrationResult
	attempts, err := o.attempt(ctx, retry.ClassIntegration, o.cfg.Timeouts.Integration, func(ctx context.Context) error {
		var err error
		data, err = o.deps.Integrator.IntegrateBundle(ctx, b)
		return err
	})
	return data, attempts, err
}

// relations collects and converts the related records that are not stored
// yet. Failures become failed related results and relation_failed warnings.
func (o *Orchestrator) relations(ctx context.Context, j *job, rec *models.ConvertedRecord, opts Options) ([]*models.ConvertedRecord, []models.ImportResult, []models.Warning) {
	var (
		related  []*models.ConvertedRecord
		results  []models.ImportResult
		warnings []models.Warning
	)
	for _, ref := range rec.Relations {
		missing, err := o.deps.Integrator.Missing(ctx, ref.Kind, ref.ExternalIDs)
		if err != nil {
			j.logger.Warn("Failed to look up related records, collecting all of them",
				zap.String("related_kind", string(ref.Kind)),
				zap.Error(err),
			)
			missing = ref.ExternalIDs
		}

		for _, id := range missing {
			entry := o.relatedRecord(ctx, j, ref.Kind, id, opts)
			results = append(results, entry.result)
			if entry.rec != nil {
				related = append(related, entry.rec)
				continue
			}
			warnings = append(warnings, models.Warning{
				Field:   string(ref.Kind),
				Code:    models.WarningRelationFailed,
				Message: fmt.Sprintf("%s %d not imported: %s", ref.Kind, id, entry.result.Error.Message),
			})
		}
	}
	return related, results, warnings
}

// relatedRecord collects and converts a related record once per job. Its own
// relations are dropped so recursion stops at one level.
func (o *Orchestrator) relatedRecord(ctx context.Context, j *job, kind models.EntityKind, id int, opts Options) *relatedEntry {
	v, _ := j.related.LoadOrStore(relKey{kind: kind, id: id}, &relatedEntry{})
	entry := v.(*relatedEntry)

	entry.once.Do(func() {
		entry.result = models.ImportResult{Kind: kind, ExternalID: id}
		log := j.logger.With(zap.String("related_kind", string(kind)), zap.Int("external_id", id))

		raw, attempts, err := o.collect(ctx, models.EntityRef{Kind: kind, ID: id}, opts)
		if err != nil {
			entry.result = o.fail(log, entry.result, models.PhaseCollect, attempts, err)
			return
		}

		category := kind
		if kind.Polymorphic() {
			var warnings []models.Warning
			category, warnings = o.classify(ctx, log, kind, raw)
			entry.result.Warnings = append(entry.result.Warnings, warnings...)
		}

		rec, warnings, attempts, err := o.convert(ctx, raw, kind, category)
		entry.result.Warnings = append(entry.result.Warnings, warnings...)
		if err != nil {
			entry.result = o.fail(log, entry.result, models.PhaseConvert, attempts, err)
			return
		}
		rec.Relations = nil
		entry.rec = rec
		entry.result.Success = true
	})
	return entry
}

// attachLinks fills the Data of related results from the links written with
// the owner.
func attachLinks(results []models.ImportResult, links []models.Link) {
	for i := range results {
		if !results[i].Success {
			continue
		}
		for _, l := range links {
			if l.Kind == results[i].Kind && l.ExternalID == results[i].ExternalID {
				results[i].Data = &models.IntegrationResult{Table: l.Table, ID: l.ID, Action: l.Action}
				break
			}
		}
	}
}
