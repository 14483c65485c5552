package orchestrator

import (
	"context"
	"sort"
	"sync"
	"time"

	"scrapper/core/logger"
	"scrapper/core/notify"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// job is the state shared by the entities of one import job.
type job struct {
	id      string
	kind    models.EntityKind
	total   int
	started time.Time
	logger  *zap.Logger
	state   *lifecycle

	// related memoizes related records collected by the job, keyed by
	// kind and external id, so each is fetched and converted once.
	related sync.Map

	mu        sync.Mutex
	processed int
	failed    int
	alerted   bool
	onRate    func(processed, failed int)
	threshold float64
	minSample int
}

type relKey struct {
	kind models.EntityKind
	id   int
}

// relatedEntry is filled once by the first entity that needs it.
type relatedEntry struct {
	once   sync.Once
	rec    *models.ConvertedRecord
	result models.ImportResult
}

func (o *Orchestrator) newJob(kind models.EntityKind, total int) *job {
	id := o.newID()
	log := logger.ForJob(o.deps.Logger, id, string(kind))
	return &job{
		id:        id,
		kind:      kind,
		total:     total,
		started:   time.Now().UTC(),
		logger:    log,
		state:     newLifecycle(log, zapcore.InfoLevel),
		threshold: o.cfg.ErrorRate.Threshold,
		minSample: o.cfg.ErrorRate.MinSamples,
	}
}

// startJob creates a job bounded by the job timeout and announces it.
func (o *Orchestrator) startJob(ctx context.Context, kind models.EntityKind, total int) (*job, context.Context, context.CancelFunc) {
	j := o.newJob(kind, total)
	j.onRate = func(processed, failed int) {
		o.deps.Notifier.Publish(notify.EventJobHighErrorRate, j.id, map[string]any{
			"kind":      string(j.kind),
			"processed": processed,
			"failed":    failed,
		})
	}

	jctx, cancel := withTimeout(ctx, o.cfg.Timeouts.Job)
	j.logger.Info("Import job started", zap.Int("entities", total))
	o.deps.Notifier.Publish(notify.EventJobStarted, j.id, map[string]any{
		"kind":     string(kind),
		"entities": total,
	})
	return j, jctx, cancel
}

// record counts a finished entity and raises the error rate alert once.
func (j *job) record(res models.ImportResult) {
	j.mu.Lock()
	j.processed++
	if !res.Success {
		j.failed++
	}
	processed, failed := j.processed, j.failed
	fire := !j.alerted && j.onRate != nil && processed >= j.minSample && processed > 0 &&
		float64(failed)/float64(processed) >= j.threshold
	if fire {
		j.alerted = true
	}
	j.mu.Unlock()

	if fire {
		j.logger.Warn("High error rate",
			zap.Int("processed", processed),
			zap.Int("failed", failed),
		)
		j.onRate(processed, failed)
	}
}

// finishJob builds the result of a job and publishes its terminal event.
func (o *Orchestrator) finishJob(ctx context.Context, j *job, results []models.ImportResult, jobErr *models.ErrorInfo) *models.BatchResult {
	summary := models.Summarize(results)
	status := models.StatusFor(summary)
	switch {
	case ctx.Err() != nil && summary.Errors > 0:
		status = models.JobCancelled
	case jobErr != nil && summary.Success > 0:
		status = models.JobPartial
	case jobErr != nil:
		status = models.JobFailed
	case summary.Total == 0:
		status = models.JobSucceeded
	}
	if err := j.state.transition(status); err != nil {
		j.logger.Error("Job state rejected", zap.Error(err))
	}

	result := &models.BatchResult{
		JobID:      j.id,
		Kind:       j.kind,
		Status:     status,
		States:     j.state.states(),
		Results:    results,
		Summary:    summary,
		Error:      jobErr,
		StartedAt:  j.started,
		FinishedAt: time.Now().UTC(),
	}

	payload := map[string]any{
		"kind":    string(j.kind),
		"status":  string(status),
		"total":   summary.Total,
		"success": summary.Success,
		"errors":  summary.Errors,
	}
	fields := []zap.Field{
		zap.String("status", string(status)),
		zap.Int("total", summary.Total),
		zap.Int("success", summary.Success),
		zap.Int("errors", summary.Errors),
		zap.Duration("duration", result.FinishedAt.Sub(j.started)),
	}

	switch status {
	case models.JobCancelled:
		j.logger.Warn("Import job cancelled", fields...)
		o.deps.Notifier.Publish(notify.EventJobCancelled, j.id, payload)
	case models.JobFailed:
		j.logger.Error("Import job failed", fields...)
		o.deps.Notifier.Publish(notify.EventJobFailed, j.id, payload)
	default:
		j.logger.Info("Import job completed", fields...)
		o.deps.Notifier.Publish(notify.EventJobCompleted, j.id, payload)
	}
	return result
}

// entityGroup bounds the entities running at once within a job.
func (o *Orchestrator) entityGroup() *errgroup.Group {
	g := new(errgroup.Group)
	g.SetLimit(o.cfg.Concurrency.MaxConcurrentEntities)
	return g
}

func sortResults(results []models.ImportResult) {
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].ExternalID < results[b].ExternalID
	})
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
