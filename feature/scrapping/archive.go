package scrapping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sync"

	"scrapper/core/errors"
	"scrapper/core/storage"
	"scrapper/feature/scrapping/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReportPrefix is the object prefix of archived job reports.
const ReportPrefix = "reports/scrapping"

// Archive keeps the latest job reports in memory and, when a storage client
// is set, every report in object storage.
type Archive struct {
	client storage.Client
	bucket string
	keep   int
	logger *zap.Logger

	mu     sync.RWMutex
	recent map[string]*models.BatchResult
	order  []string
}

// NewArchive creates an archive keeping keep reports in memory. client may
// be nil.
func NewArchive(client storage.Client, bucket string, keep int, logger *zap.Logger) *Archive {
	if keep <= 0 {
		keep = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		client: client,
		bucket: bucket,
		keep:   keep,
		logger: logger,
		recent: make(map[string]*models.BatchResult),
	}
}

// ReportKey returns the object name of a job report.
func ReportKey(jobID string) string {
	return path.Join(ReportPrefix, jobID+".json")
}

// Save stores a report. The in-memory copy is kept even when the upload fails.
func (a *Archive) Save(ctx context.Context, report *models.BatchResult) error {
	a.mu.Lock()
	if _, ok := a.recent[report.JobID]; !ok {
		a.order = append(a.order, report.JobID)
	}
	a.recent[report.JobID] = report
	for len(a.order) > a.keep {
		delete(a.recent, a.order[0])
		a.order = a.order[1:]
	}
	a.mu.Unlock()

	if a.client == nil {
		return nil
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := storage.PutBytes(ctx, a.client, a.bucket, ReportKey(report.JobID), data, "application/json"); err != nil {
		return fmt.Errorf("failed to archive report %s: %w", report.JobID, err)
	}
	return nil
}

// Get returns a report from memory, then from object storage.
func (a *Archive) Get(ctx context.Context, jobID string) (*models.BatchResult, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, errors.NewInvalidRequest("invalid job id %q", jobID)
	}

	a.mu.RLock()
	report, ok := a.recent[jobID]
	a.mu.RUnlock()
	if ok {
		return report, nil
	}
	if a.client == nil {
		return nil, errors.NewNotFound("report %s", jobID)
	}

	obj, err := a.client.GetObject(ctx, a.bucket, ReportKey(jobID), minio.GetObjectOptions{})
	if err != nil {
		return nil, a.readError(jobID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, a.readError(jobID, err)
	}
	var out models.BatchResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", jobID, err)
	}
	return &out, nil
}

// Recent lists the job ids held in memory, newest first.
func (a *Archive) Recent() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, len(a.order))
	for i, id := range a.order {
		out[len(a.order)-1-i] = id
	}
	return out
}

func (a *Archive) readError(jobID string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.NewNotFound("report %s", jobID)
	}
	return fmt.Errorf("failed to read report %s: %w", jobID, err)
}
