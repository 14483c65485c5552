package classify

import (
	"context"
	"fmt"
	"time"

	"scrapper/feature/scrapping/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry persists per source type decisions and usage.
type Registry interface {
	// Load returns every registry row.
	Load(ctx context.Context) ([]models.SourceType, error)
	// Observe counts one more sighting of typeID. Unknown ids become pending.
	Observe(ctx context.Context, typeID int, at time.Time) error
	// SetDecision records the decision and target kind of typeID.
	SetDecision(ctx context.Context, typeID int, kind models.EntityKind, decision string, at time.Time) error
}

// GormRegistry stores the registry in the source_type_registry table.
type GormRegistry struct {
	db *gorm.DB
}

// NewGormRegistry creates a registry over db.
func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

func (r *GormRegistry) Load(ctx context.Context) ([]models.SourceType, error) {
	var rows []models.SourceType
	if err := r.db.WithContext(ctx).Order("source_type_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load source type registry: %w", err)
	}
	return rows, nil
}

func (r *GormRegistry) Observe(ctx context.Context, typeID int, at time.Time) error {
	row := models.SourceType{
		SourceTypeID: typeID,
		Decision:     models.DecisionPending,
		SeenCount:    1,
		LastSeen:     at,
		UpdatedAt:    at,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_type_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"seen_count": gorm.Expr("seen_count + 1"),
			"last_seen":  at,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to observe source type %d: %w", typeID, err)
	}
	return nil
}

func (r *GormRegistry) SetDecision(ctx context.Context, typeID int, kind models.EntityKind, decision string, at time.Time) error {
	row := models.SourceType{
		SourceTypeID: typeID,
		Kind:         kind,
		Decision:     decision,
		UpdatedAt:    at,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_type_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"kind":       kind,
			"decision":   decision,
			"updated_at": at,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set decision of source type %d: %w", typeID, err)
	}
	return nil
}
