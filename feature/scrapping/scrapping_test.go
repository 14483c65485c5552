package scrapping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"scrapper/core/database"
	"scrapper/core/errors"
	"scrapper/core/pipeline"
	"scrapper/core/source"
	"scrapper/core/storage/mocks"
	"scrapper/feature/scrapping/classify"
	"scrapper/feature/scrapping/convert"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/limits"
	"scrapper/feature/scrapping/models"
	"scrapper/feature/scrapping/orchestrator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memorySource serves a fixed set of records.
type memorySource struct {
	records map[string]map[int]source.RawRecord
}

func (m *memorySource) Fetch(_ context.Context, resourceType string, _ source.Query, page source.PageRequest, _ source.FetchOptions) (*source.Page, error) {
	out := &source.Page{Total: len(m.records[resourceType]), Limit: 50, Skip: page.Skip}
	for _, r := range m.records[resourceType] {
		out.Data = append(out.Data, r)
	}
	return out, nil
}

func (m *memorySource) FetchOne(_ context.Context, resourceType string, id int, _ source.FetchOptions) (source.RawRecord, error) {
	if r, ok := m.records[resourceType][id]; ok {
		return r, nil
	}
	return source.RawRecord{}, &source.CollectionError{Resource: resourceType, Status: 404, Attempts: 1}
}

func (m *memorySource) FetchAll(ctx context.Context, resourceType string, q source.Query, _ int, opts source.FetchOptions, fn func(*source.Page) error) error {
	page, err := m.Fetch(ctx, resourceType, q, source.PageRequest{}, opts)
	if err != nil || len(page.Data) == 0 {
		return err
	}
	return fn(page)
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, integrate.Migrate(db))

	src := &memorySource{records: map[string]map[int]source.RawRecord{
		"spells": {7: {ID: 7, Fields: map[string]any{"id": 7.0, "name": "Fire"}}},
	}}

	classifier, err := classify.New(pipeline.ClassifierLists, classify.Lists{}, classify.NewGormRegistry(db), nil)
	require.NoError(t, err)
	integrator, err := integrate.NewService(integrate.NewGormStore(db), "", nil)
	require.NoError(t, err)
	orch, err := orchestrator.New(orchestrator.Deps{
		Source:     src,
		Classifier: classifier,
		Converter:  convert.NewEngine(limits.Defaults(), "fr", "en"),
		Integrator: integrator,
	}, pipeline.Default())
	require.NoError(t, err)

	feature := NewFeature(orch, classifier, NewArchive(nil, "", 10, nil), zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, db
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleImportOne(t *testing.T) {
	app, db := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/scrapping/import/spell/7", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := decode[models.BatchResult](t, resp.Body)
	assert.Equal(t, models.JobSucceeded, report.Status)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "spells", report.Results[0].Data.Table)

	var n int64
	require.NoError(t, db.Table("spells").Count(&n).Error)
	assert.Equal(t, int64(1), n)

	resp, err = app.Test(httptest.NewRequest("GET", "/scrapping/reports/"+report.JobID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, report.JobID, decode[models.BatchResult](t, resp.Body).JobID)
}

func TestHandleImportOne_InvalidInput(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/scrapping/import/vehicle/7", "/scrapping/import/spell/abc", "/scrapping/import/spell/0"} {
		resp, err := app.Test(httptest.NewRequest("POST", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestHandleImportBatch(t *testing.T) {
	app, _ := setupApp(t)

	body := `{"entities": [{"kind": "spell", "id": 7}, {"kind": "spell", "id": 8}]}`
	req := httptest.NewRequest("POST", "/scrapping/import/batch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := decode[models.BatchResult](t, resp.Body)
	assert.Equal(t, models.JobPartial, report.Status)
	assert.Equal(t, models.Summary{Total: 2, Success: 1, Errors: 1}, report.Summary)

	req = httptest.NewRequest("POST", "/scrapping/import/batch", strings.NewReader(`{"entities": []}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImportCategory(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/scrapping/import/spell", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[models.BatchResult](t, resp.Body).Summary.Success)
}

func TestHandlePreview(t *testing.T) {
	app, db := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/scrapping/preview/spell/7", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	res := decode[models.ImportResult](t, resp.Body)
	assert.True(t, res.Success)
	assert.Equal(t, "Fire", res.Converted.Fields["name"])

	var n int64
	require.NoError(t, db.Table("spells").Count(&n).Error)
	assert.Zero(t, n)
}

func TestHandleReport_Errors(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/scrapping/reports/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/scrapping/reports/..%2Fsecret", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlerFail_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"InvalidRequest", errors.NewInvalidRequest("bad id"), fiber.StatusBadRequest},
		{"NotFound", errors.NewNotFound("job %s", "x"), fiber.StatusNotFound},
		{"Conflict", &integrate.ConflictError{Table: "monsters", ExternalID: 1, ExistingID: 4}, fiber.StatusConflict},
		{"Timeout", errors.Wrap(errors.ErrTimeout, "collection"), fiber.StatusGatewayTimeout},
		{"Unavailable", errors.Wrap(errors.ErrServiceUnavailable, "registry"), fiber.StatusServiceUnavailable},
		{"Internal", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	h := NewHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return h.fail(c, zap.NewNop(), tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleTypes(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("PUT", "/scrapping/types/15", strings.NewReader(`{"kind": "resource", "decision": "allowed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/scrapping/types?decision=allowed", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	types := decode[[]models.SourceType](t, resp.Body)
	require.Len(t, types, 1)
	assert.Equal(t, 15, types[0].SourceTypeID)
	assert.Equal(t, models.KindResource, types[0].Kind)

	req = httptest.NewRequest("PUT", "/scrapping/types/15", strings.NewReader(`{"kind": "monster", "decision": "allowed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/scrapping/types?decision=maybe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestArchive_Storage(t *testing.T) {
	mockClient := new(mocks.Client)
	archive := NewArchive(mockClient, "scrapper", 1, nil)
	ctx := context.Background()

	first := &models.BatchResult{JobID: uuid.NewString(), Status: models.JobSucceeded}
	second := &models.BatchResult{JobID: uuid.NewString(), Status: models.JobFailed}

	mockClient.On("PutObject", mock.Anything, "scrapper", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, ReportPrefix+"/")
	}), mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil).Twice()

	require.NoError(t, archive.Save(ctx, first))
	require.NoError(t, archive.Save(ctx, second))
	assert.Equal(t, []string{second.JobID}, archive.Recent(), "only the latest report stays in memory")

	data, err := json.Marshal(first)
	require.NoError(t, err)
	mockClient.On("GetObject", mock.Anything, "scrapper", ReportKey(first.JobID), mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	got, err := archive.Get(ctx, first.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobSucceeded, got.Status)

	missing := uuid.NewString()
	mockClient.On("GetObject", mock.Anything, "scrapper", ReportKey(missing), mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	_, err = archive.Get(ctx, missing)
	assert.True(t, errors.IsNotFound(err))

	mockClient.AssertExpectations(t)
}

func TestArchive_UploadFailureKeepsMemoryCopy(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, fmt.Errorf("bucket gone"))
	archive := NewArchive(mockClient, "scrapper", 5, nil)

	report := &models.BatchResult{JobID: uuid.NewString()}
	assert.Error(t, archive.Save(context.Background(), report))

	got, err := archive.Get(context.Background(), report.JobID)
	require.NoError(t, err)
	assert.Same(t, report, got)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, nil, NewArchive(nil, "", 0, nil), zap.NewNop())

	assert.Equal(t, "scrapping", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
	assert.NoError(t, feature.Load(fiber.New()))
}
