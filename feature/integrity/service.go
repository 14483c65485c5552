package integrity

import (
	"context"

	"scrapper/core/storage"
	"scrapper/feature/integrity/checks"
	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. prefix is the object prefix
// job reports are archived under.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
	}
}

// CheckServer compares the database schema against the pipeline models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, models.AllModels())
}

// CheckStorage inspects the report bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefix)
}

// FixStorage creates the report bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger)
}
