package scrapping

import (
	"context"

	"scrapper/core/errors"
	"scrapper/feature/scrapping/classify"
	"scrapper/feature/scrapping/models"
	"scrapper/feature/scrapping/orchestrator"

	"go.uber.org/zap"
)

// Options tune an import. See orchestrator.Options.
type Options = orchestrator.Options

// Service validates requests, runs jobs and archives their reports.
type Service struct {
	orch       *orchestrator.Orchestrator
	classifier *classify.Classifier
	archive    *Archive
	logger     *zap.Logger
}

// NewService creates a new scrapping service.
func NewService(orch *orchestrator.Orchestrator, classifier *classify.Classifier, archive *Archive, logger *zap.Logger) *Service {
	return &Service{
		orch:       orch,
		classifier: classifier,
		archive:    archive,
		logger:     logger,
	}
}

// ImportOne imports a single entity.
func (s *Service) ImportOne(ctx context.Context, kind models.EntityKind, id int, opts Options) (*models.BatchResult, error) {
	if err := validateRef(models.EntityRef{Kind: kind, ID: id}); err != nil {
		return nil, err
	}
	return s.keep(ctx, s.orch.ImportOne(ctx, kind, id, opts)), nil
}

// ImportBatch imports a list of entities.
func (s *Service) ImportBatch(ctx context.Context, refs []models.EntityRef, opts Options) (*models.BatchResult, error) {
	if len(refs) == 0 {
		return nil, errors.NewInvalidRequest("no entities to import")
	}
	for _, ref := range refs {
		if err := validateRef(ref); err != nil {
			return nil, err
		}
	}
	return s.keep(ctx, s.orch.ImportBatch(ctx, refs, opts)), nil
}

// ImportCategory imports every record of a kind.
func (s *Service) ImportCategory(ctx context.Context, kind models.EntityKind, opts Options) (*models.BatchResult, error) {
	if !kind.Valid() {
		return nil, errors.NewInvalidRequest("unknown entity kind %q", kind)
	}
	return s.keep(ctx, s.orch.ImportCategory(ctx, kind, opts)), nil
}

// Preview converts an entity without writing it.
func (s *Service) Preview(ctx context.Context, kind models.EntityKind, id int, opts Options) (models.ImportResult, error) {
	if err := validateRef(models.EntityRef{Kind: kind, ID: id}); err != nil {
		return models.ImportResult{}, err
	}
	return s.orch.Preview(ctx, kind, id, opts), nil
}

// Report returns an archived job report.
func (s *Service) Report(ctx context.Context, jobID string) (*models.BatchResult, error) {
	return s.archive.Get(ctx, jobID)
}

// Types lists the source type registry, optionally filtered by decision.
func (s *Service) Types(ctx context.Context, decision string) ([]models.SourceType, error) {
	if !s.classifier.HasRegistry() {
		return nil, errors.Wrap(errors.ErrServiceUnavailable, "source type registry is not configured")
	}
	switch decision {
	case "", models.DecisionAllowed, models.DecisionBlocked, models.DecisionPending:
	default:
		return nil, errors.NewInvalidRequest("invalid decision %q", decision)
	}
	return s.classifier.Types(ctx, decision)
}

// SetTypeDecision allows or blocks a source type id for a kind.
func (s *Service) SetTypeDecision(ctx context.Context, typeID int, kind models.EntityKind, decision string) error {
	if !s.classifier.HasRegistry() {
		return errors.Wrap(errors.ErrServiceUnavailable, "source type registry is not configured")
	}
	if typeID <= 0 {
		return errors.NewInvalidRequest("invalid source type id %d", typeID)
	}
	switch decision {
	case models.DecisionAllowed, models.DecisionBlocked, models.DecisionPending:
	default:
		return errors.NewInvalidRequest("invalid decision %q", decision)
	}
	if kind != "" && kind != models.KindResource && kind != models.KindConsumable {
		return errors.NewInvalidRequest("%q is not a classifiable kind", kind)
	}
	if decision == models.DecisionAllowed && kind == "" {
		return errors.NewInvalidRequest("an allowed source type needs a kind")
	}

	if err := s.classifier.SetDecision(ctx, typeID, kind, decision); err != nil {
		return err
	}
	s.logger.Info("Source type decision updated",
		zap.Int("type_id", typeID),
		zap.String("kind", string(kind)),
		zap.String("decision", decision),
	)
	return nil
}

// keep archives a report. Archive failures are logged, the report is still returned.
func (s *Service) keep(ctx context.Context, report *models.BatchResult) *models.BatchResult {
	if err := s.archive.Save(ctx, report); err != nil {
		s.logger.Warn("Failed to archive job report", zap.String("job_id", report.JobID), zap.Error(err))
	}
	return report
}

func validateRef(ref models.EntityRef) error {
	if !ref.Kind.Valid() {
		return errors.NewInvalidRequest("unknown entity kind %q", ref.Kind)
	}
	if ref.ID <= 0 {
		return errors.NewInvalidRequest("invalid %s id %d", ref.Kind, ref.ID)
	}
	return nil
}
