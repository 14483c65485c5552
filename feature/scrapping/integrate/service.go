package integrate

import (
	"context"
	"fmt"

	"scrapper/core/pipeline"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
)

// Bundle is a top-level record with the related records to create if absent.
type Bundle struct {
	Record  *models.ConvertedRecord
	Related []*models.ConvertedRecord
}

// Service writes converted records with a conflict strategy.
type Service struct {
	backend  Backend
	strategy string
	logger   *zap.Logger
}

// NewService creates a service. An empty strategy means update.
func NewService(backend Backend, strategy string, logger *zap.Logger) (*Service, error) {
	if strategy == "" {
		strategy = pipeline.ConflictUpdate
	}
	switch strategy {
	case pipeline.ConflictUpdate, pipeline.ConflictSkip, pipeline.ConflictDuplicate, pipeline.ConflictError:
	default:
		return nil, fmt.Errorf("unknown conflict strategy %q", strategy)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, strategy: strategy, logger: logger}, nil
}

// Strategy returns the conflict strategy.
func (s *Service) Strategy() string {
	return s.strategy
}

// Integrate writes one record without relations.
func (s *Service) Integrate(ctx context.Context, rec *models.ConvertedRecord) (*models.IntegrationResult, error) {
	return s.IntegrateBundle(ctx, Bundle{Record: rec})
}

// IntegrateBundle writes the record, creates the related records that are
// still absent and links them, in one transaction. Relations whose record is
// neither stored nor bundled are not linked.
func (s *Service) IntegrateBundle(ctx context.Context, b Bundle) (*models.IntegrationResult, error) {
	if b.Record == nil {
		return nil, fmt.Errorf("integrate: nil record")
	}

	related := make(map[relKey]*models.ConvertedRecord, len(b.Related))
	for _, r := range b.Related {
		related[relKey{r.Kind, r.ExternalID}] = r
	}

	var result *models.IntegrationResult
	err := s.backend.WithinTx(ctx, func(store Store) error {
		res, err := s.write(ctx, store, b.Record)
		if err != nil {
			return err
		}
		if res.Action == models.ActionSkipped {
			result = res
			return nil
		}

		for _, ref := range b.Record.Relations {
			for _, extID := range ref.ExternalIDs {
				table, id, action, ok, err := s.resolve(ctx, store, ref.Kind, extID, related)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if err := store.AttachRelation(ctx, res.Table, res.ID, table, id); err != nil {
					return err
				}
				res.RelatedIDs = append(res.RelatedIDs, id)
				res.Links = append(res.Links, models.Link{
					Kind:       ref.Kind,
					ExternalID: extID,
					Table:      table,
					ID:         id,
					Action:     action,
				})
			}
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Record integrated",
		zap.String("table", result.Table),
		zap.Uint("id", result.ID),
		zap.String("action", string(result.Action)),
		zap.Int("relations", len(result.RelatedIDs)),
	)
	return result, nil
}

type relKey struct {
	kind models.EntityKind
	id   int
}

// resolve finds a related row, creating it from the bundle when absent.
func (s *Service) resolve(ctx context.Context, store Store, kind models.EntityKind, extID int, related map[relKey]*models.ConvertedRecord) (string, uint, models.Action, bool, error) {
	rec, bundled := related[relKey{kind, extID}]

	tables := CandidateTables(kind)
	if bundled {
		tables = []string{rec.Table()}
	}
	for _, table := range tables {
		id, found, err := store.FindByExternalID(ctx, table, extID)
		if err != nil {
			return "", 0, "", false, err
		}
		if found {
			return table, id, models.ActionSkipped, true, nil
		}
	}
	if !bundled {
		return "", 0, "", false, nil
	}

	id, err := store.Upsert(ctx, rec.Table(), 0, rec.ExternalID, rec.Fields)
	if err != nil {
		return "", 0, "", false, err
	}
	return rec.Table(), id, models.ActionCreated, true, nil
}

// write applies the conflict strategy to one record.
func (s *Service) write(ctx context.Context, store Store, rec *models.ConvertedRecord) (*models.IntegrationResult, error) {
	table := rec.Table()
	if table == "" {
		return nil, fmt.Errorf("integrate: no table for kind %q", rec.Category)
	}

	existing, found, err := store.FindByExternalID(ctx, table, rec.ExternalID)
	if err != nil {
		return nil, err
	}

	action := models.ActionCreated
	var id uint
	if found {
		switch s.strategy {
		case pipeline.ConflictSkip:
			return &models.IntegrationResult{Table: table, ID: existing, Action: models.ActionSkipped}, nil
		case pipeline.ConflictError:
			return nil, &ConflictError{Table: table, ExternalID: rec.ExternalID, ExistingID: existing}
		case pipeline.ConflictUpdate:
			id, action = existing, models.ActionUpdated
		}
	}

	id, err = store.Upsert(ctx, table, id, rec.ExternalID, rec.Fields)
	if err != nil {
		return nil, err
	}
	return &models.IntegrationResult{Table: table, ID: id, Action: action}, nil
}

// Missing returns the ids of kind that no candidate table holds yet.
func (s *Service) Missing(ctx context.Context, kind models.EntityKind, externalIDs []int) ([]int, error) {
	present := make(map[int]bool, len(externalIDs))
	for _, table := range CandidateTables(kind) {
		found, err := s.backend.ExistingIDs(ctx, table, externalIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range found {
			present[id] = true
		}
	}

	var missing []int
	for _, id := range externalIDs {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// CandidateTables lists the tables a record of kind may live in. Records of
// the items endpoint may have been classified into any of its kinds.
func CandidateTables(kind models.EntityKind) []string {
	if !kind.Polymorphic() {
		return []string{kind.Table()}
	}
	out := []string{kind.Table()}
	for _, k := range []models.EntityKind{models.KindItem, models.KindResource, models.KindConsumable} {
		if k != kind {
			out = append(out, k.Table())
		}
	}
	return out
}
