package checks

import (
	"context"
	"errors"
	"testing"

	"scrapper/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket with reports", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		client.On("ListObjects", mock.Anything, "reports", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "reports/scrapping/" && o.MaxKeys == 1
		})).Return(objects(minio.ObjectInfo{Key: "reports/scrapping/a.json"}))

		report, err := CheckStorage(ctx, client, "reports", "reports/scrapping")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.True(t, report.HasReports)
		client.AssertExpectations(t)
	})

	t.Run("empty bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(objects())

		report, err := CheckStorage(ctx, client, "reports", "reports/scrapping/")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.False(t, report.HasReports)
	})

	t.Run("missing bucket skips listing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, nil)

		report, err := CheckStorage(ctx, client, "reports", "reports/scrapping")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

		_, err := CheckStorage(ctx, client, "reports", "reports/scrapping")
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("bucket check error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("offline"))

		_, err := CheckStorage(ctx, client, "reports", "reports/scrapping")
		assert.ErrorContains(t, err, "offline")
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := CheckStorage(ctx, nil, "reports", "reports/scrapping")
		assert.Error(t, err)
	})
}

func TestFixStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil).Once()
	assert.NoError(t, FixStorage(context.Background(), client, "reports", zap.NewNop()))

	failing := new(mocks.Client)
	failing.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(errors.New("exists"))
	assert.Error(t, FixStorage(context.Background(), failing, "reports", zap.NewNop()))
}
