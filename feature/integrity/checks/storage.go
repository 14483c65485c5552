package checks

import (
	"context"
	"fmt"
	"strings"

	"scrapper/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the report bucket.
type StorageReport struct {
	Bucket     string `json:"bucket"`
	Exists     bool   `json:"exists"`
	Prefix     string `json:"prefix"`
	HasReports bool   `json:"has_reports"`
}

// CheckStorage reports whether the bucket exists and already holds objects
// under prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &StorageReport{Bucket: bucket, Exists: exists, Prefix: prefix}
	if !exists {
		return report, nil
	}

	folderPath := prefix
	if !strings.HasSuffix(folderPath, "/") {
		folderPath += "/"
	}
	opts := minio.ListObjectsOptions{
		Prefix:    folderPath,
		Recursive: true,
		MaxKeys:   1,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folderPath, obj.Err)
		}
		report.HasReports = true
		break
	}

	return report, nil
}

// FixStorage creates the bucket.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
