package edu

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/studioerp/odoo.go"
	"github.com/studioerp/odoo.go/internal/domainmatch"
	"github.com/studioerp/odoo.go/pkg/constants"
	"github.com/studioerp/odoo.go/pkg/models"
)

// Repository is the capability an entity service needs from its backing
// store. Remote repositories hit the backend; fixture repositories serve
// in-memory demo data. Services never know which they hold, so swapping the
// backing once the backend grows real schema changes no callers.
type Repository[T any] interface {
	List(ctx context.Context, limit, offset int) (*models.RecordSet[T], error)
	Find(ctx context.Context, q models.Query) (*models.RecordSet[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, values map[string]any) (int64, error)
	Update(ctx context.Context, id int64, values map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// RemoteRepository serves one model through the generic record API, fixing
// its projection, base domain and ordering.
type RemoteRepository[T any] struct {
	client *odoo.Client
	model  string
	fields []string
	domain models.Domain
	order  string
}

func NewRemoteRepository[T any](client *odoo.Client, model string, fields []string, domain models.Domain, order string) *RemoteRepository[T] {
	return &RemoteRepository[T]{
		client: client,
		model:  model,
		fields: fields,
		domain: domain,
		order:  order,
	}
}

func (r *RemoteRepository[T]) List(ctx context.Context, limit, offset int) (*models.RecordSet[T], error) {
	return r.Find(ctx, models.Query{Limit: limit, Offset: offset})
}

func (r *RemoteRepository[T]) Find(ctx context.Context, q models.Query) (*models.RecordSet[T], error) {
	merged := make(models.Domain, 0, len(r.domain)+len(q.Domain))
	merged = append(merged, r.domain...)
	merged = append(merged, q.Domain...)
	q.Domain = merged
	if q.Fields == nil {
		q.Fields = r.fields
	}
	if q.Order == "" {
		q.Order = r.order
	}
	return odoo.SearchRead[T](ctx, r.client, r.model, q)
}

func (r *RemoteRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	return odoo.GetByID[T](ctx, r.client, r.model, id, r.fields...)
}

func (r *RemoteRepository[T]) Create(ctx context.Context, values map[string]any) (int64, error) {
	return r.client.Create(ctx, r.model, values)
}

func (r *RemoteRepository[T]) Update(ctx context.Context, id int64, values map[string]any) (bool, error) {
	return r.client.Update(ctx, r.model, id, values)
}

func (r *RemoteRepository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return r.client.Delete(ctx, r.model, id)
}

// FixtureRepository serves scripted records for the entities the backend has
// no schema for. It honors the same query contract as the remote one,
// including domain filtering and the server-side total count.
type FixtureRepository[T any] struct {
	mu      sync.Mutex
	records []map[string]any
	nextID  int64
}

func NewFixtureRepository[T any](records []map[string]any) *FixtureRepository[T] {
	var maxID int64
	for _, rec := range records {
		if id, ok := rec["id"].(int64); ok && id > maxID {
			maxID = id
		}
		if id, ok := rec["id"].(int); ok && int64(id) > maxID {
			maxID = int64(id)
		}
	}
	return &FixtureRepository[T]{records: records, nextID: maxID}
}

func (r *FixtureRepository[T]) List(ctx context.Context, limit, offset int) (*models.RecordSet[T], error) {
	return r.Find(ctx, models.Query{Limit: limit, Offset: offset})
}

func (r *FixtureRepository[T]) Find(_ context.Context, q models.Query) (*models.RecordSet[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]map[string]any, 0, len(r.records))
	for _, rec := range r.records {
		if domainmatch.Match(q.Domain, rec) {
			matched = append(matched, rec)
		}
	}
	total := len(matched)

	offset := q.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	set := &models.RecordSet[T]{Records: make([]T, 0, len(matched)), TotalCount: total}
	for _, rec := range matched {
		item, err := decodeRecord[T](rec)
		if err != nil {
			return nil, err
		}
		set.Records = append(set.Records, *item)
	}
	return set, nil
}

func (r *FixtureRepository[T]) Get(_ context.Context, id int64) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if domainmatch.Equal(rec["id"], id) {
			return decodeRecord[T](rec)
		}
	}
	return nil, nil
}

func (r *FixtureRepository[T]) Create(_ context.Context, values map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec := map[string]any{"id": r.nextID}
	for k, v := range values {
		rec[k] = v
	}
	r.records = append(r.records, rec)
	return r.nextID, nil
}

func (r *FixtureRepository[T]) Update(_ context.Context, id int64, values map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if domainmatch.Equal(rec["id"], id) {
			for k, v := range values {
				rec[k] = v
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *FixtureRepository[T]) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if domainmatch.Equal(rec["id"], id) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func decodeRecord[T any](rec map[string]any) (*T, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}
	item := new(T)
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}
	return item, nil
}
