package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scrapper/core/source"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/models"

	"github.com/stretchr/testify/require"
)

// fakeSource serves records from memory.
type fakeSource struct {
	mu       sync.Mutex
	records  map[string]map[int]source.RawRecord
	failures map[int]error
	calls    map[string]int
	pageSize int
	delay    time.Duration

	inflight    atomic.Int32
	maxInflight atomic.Int32
	pages       atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		records:  make(map[string]map[int]source.RawRecord),
		failures: make(map[int]error),
		calls:    make(map[string]int),
		pageSize: 50,
	}
}

func (f *fakeSource) add(t *testing.T, resourceType, body string) {
	t.Helper()
	var r source.RawRecord
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records[resourceType] == nil {
		f.records[resourceType] = make(map[int]source.RawRecord)
	}
	f.records[resourceType][r.ID] = r
}

func (f *fakeSource) callCount(resourceType string, id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[fmt.Sprintf("%s/%d", resourceType, id)]
}

func (f *fakeSource) sortedIDs(resourceType string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.records[resourceType]))
	for id := range f.records[resourceType] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (f *fakeSource) Fetch(ctx context.Context, resourceType string, _ source.Query, page source.PageRequest, _ source.FetchOptions) (*source.Page, error) {
	f.pages.Add(1)
	ids := f.sortedIDs(resourceType)
	limit := page.Limit
	if limit <= 0 || limit > f.pageSize {
		limit = f.pageSize
	}

	out := &source.Page{Total: len(ids), Limit: limit, Skip: page.Skip}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := page.Skip; i < len(ids) && i < page.Skip+limit; i++ {
		out.Data = append(out.Data, f.records[resourceType][ids[i]])
	}
	return out, ctx.Err()
}

func (f *fakeSource) FetchOne(ctx context.Context, resourceType string, id int, _ source.FetchOptions) (source.RawRecord, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		max := f.maxInflight.Load()
		if n <= max || f.maxInflight.CompareAndSwap(max, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[fmt.Sprintf("%s/%d", resourceType, id)]++
	err, failing := f.failures[id]
	rec, found := f.records[resourceType][id]
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return source.RawRecord{}, &source.CollectionError{Resource: resourceType, Attempts: 1, Err: ctx.Err()}
		case <-time.After(f.delay):
		}
	}
	if failing {
		return source.RawRecord{}, err
	}
	if !found {
		return source.RawRecord{}, &source.CollectionError{Resource: resourceType, Status: 404, Body: "not found", Attempts: 1}
	}
	return rec, nil
}

func (f *fakeSource) FetchAll(ctx context.Context, resourceType string, q source.Query, limit int, opts source.FetchOptions, fn func(*source.Page) error) error {
	skip, seen, pages := 0, 0, 0
	for {
		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			return nil
		}
		req := source.PageRequest{Skip: skip}
		if limit > 0 {
			req.Limit = limit - seen
		}
		page, err := f.Fetch(ctx, resourceType, q, req, opts)
		if err != nil {
			return err
		}
		pages++
		if len(page.Data) == 0 {
			return nil
		}
		seen += len(page.Data)
		if err := fn(page); err != nil {
			return err
		}
		skip += page.Limit
		if skip >= page.Total || (limit > 0 && seen >= limit) {
			return nil
		}
	}
}

// flakyIntegrator fails the first calls with a storage error.
type flakyIntegrator struct {
	failures int
	calls    atomic.Int32
}

func (f *flakyIntegrator) IntegrateBundle(_ context.Context, b integrate.Bundle) (*models.IntegrationResult, error) {
	n := int(f.calls.Add(1))
	if n <= f.failures {
		return nil, &integrate.Error{Op: "insert into", Table: b.Record.Table(), Err: fmt.Errorf("deadlock")}
	}
	return &models.IntegrationResult{Table: b.Record.Table(), ID: 1, Action: models.ActionCreated}, nil
}

func (f *flakyIntegrator) Missing(_ context.Context, _ models.EntityKind, ids []int) ([]int, error) {
	return ids, nil
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(name, _ string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.names() {
		if e == name {
			n++
		}
	}
	return n
}
