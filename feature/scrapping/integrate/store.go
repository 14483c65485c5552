package integrate

import (
	"context"
	"time"

	"scrapper/feature/scrapping/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store reads and writes entity rows.
type Store interface {
	// FindByExternalID returns the oldest row with the external id.
	FindByExternalID(ctx context.Context, table string, externalID int) (uint, bool, error)
	// ExistingIDs returns the external ids of ids present in the table.
	ExistingIDs(ctx context.Context, table string, externalIDs []int) ([]int, error)
	// Upsert inserts a row when id is 0 and updates row id otherwise.
	Upsert(ctx context.Context, table string, id uint, externalID int, fields map[string]any) (uint, error)
	// AttachRelation links two rows. Linking twice is a no-op.
	AttachRelation(ctx context.Context, ownerTable string, ownerID uint, relatedTable string, relatedID uint) error
}

// Backend is a Store that can open transactions.
type Backend interface {
	Store
	// WithinTx runs fn in a transaction. The transaction is rolled back when
	// fn returns an error.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

// GormStore implements Backend with gorm.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, now: s.now})
	})
}

func (s *GormStore) FindByExternalID(ctx context.Context, table string, externalID int) (uint, bool, error) {
	var row struct{ ID uint }
	res := s.db.WithContext(ctx).
		Table(table).
		Select("id").
		Where("external_id = ?", externalID).
		Order("id").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return 0, false, &Error{Op: "find in", Table: table, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return row.ID, true, nil
}

func (s *GormStore) ExistingIDs(ctx context.Context, table string, externalIDs []int) ([]int, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var found []int
	err := s.db.WithContext(ctx).
		Table(table).
		Distinct("external_id").
		Where("external_id IN ?", externalIDs).
		Pluck("external_id", &found).Error
	if err != nil {
		return nil, &Error{Op: "list", Table: table, Err: err}
	}
	return found, nil
}

func (s *GormStore) Upsert(ctx context.Context, table string, id uint, externalID int, fields map[string]any) (uint, error) {
	now := s.now()
	values := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		values[k] = v
	}
	values["external_id"] = externalID
	values["updated_at"] = now

	db := s.db.WithContext(ctx)
	if id != 0 {
		if err := db.Table(table).Where("id = ?", id).Updates(values).Error; err != nil {
			return 0, &Error{Op: "update", Table: table, Err: err}
		}
		return id, nil
	}

	values["created_at"] = now
	if err := db.Table(table).Create(values).Error; err != nil {
		return 0, &Error{Op: "insert into", Table: table, Err: err}
	}

	// Map inserts do not back fill the primary key.
	var row struct{ ID uint }
	err := db.Table(table).
		Select("id").
		Where("external_id = ?", externalID).
		Order("id DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, &Error{Op: "read back", Table: table, Err: err}
	}
	return row.ID, nil
}

func (s *GormStore) AttachRelation(ctx context.Context, ownerTable string, ownerID uint, relatedTable string, relatedID uint) error {
	rel := models.EntityRelation{
		OwnerTable:   ownerTable,
		OwnerID:      ownerID,
		RelatedTable: relatedTable,
		RelatedID:    relatedID,
		CreatedAt:    s.now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rel).Error
	if err != nil {
		return &Error{Op: "link", Table: models.EntityRelation{}.TableName(), Err: err}
	}
	return nil
}

// Migrate creates or updates every pipeline table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return &Error{Op: "migrate", Table: "pipeline tables", Err: err}
	}
	return nil
}
