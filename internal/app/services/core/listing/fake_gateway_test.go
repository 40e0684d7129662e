package listing

import (
	"context"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"net/url"
	"strconv"
	"sync"
)

// fakeGateway serves items page by page and records every call.
type fakeGateway[T any] struct {
	mu sync.Mutex

	items   []T
	listErr error
	// beforeList runs at the start of each List call outside the lock.
	beforeList func(call int)

	getFn    func(id string) (T, error)
	createFn func(payload T) (T, error)
	updateFn func(id string, payload T) (T, error)
	deleteFn func(id string) error

	listQueries []url.Values
	created     []T
	updated     []T
	deleted     []string
}

func (g *fakeGateway[T]) List(ctx context.Context, query url.Values) (*responses.Page[T], error) {
	g.mu.Lock()
	call := len(g.listQueries)
	g.listQueries = append(g.listQueries, query)
	hook := g.beforeList
	g.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}

	page, _ := strconv.Atoi(query.Get(constvars.QueryParamPage))
	limit, _ := strconv.Atoi(query.Get(constvars.QueryParamLimit))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(g.items) + 1
	}
	start := (page - 1) * limit
	end := start + limit
	if start > len(g.items) {
		start = len(g.items)
	}
	if end > len(g.items) {
		end = len(g.items)
	}
	totalPages := (len(g.items) + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	return &responses.Page[T]{
		Items:      append([]T{}, g.items[start:end]...),
		Total:      len(g.items),
		TotalPages: totalPages,
	}, nil
}

func (g *fakeGateway[T]) Get(ctx context.Context, id string) (T, error) {
	if g.getFn != nil {
		return g.getFn(id)
	}
	var zero T
	return zero, errNotStubbed
}

func (g *fakeGateway[T]) Create(ctx context.Context, payload T) (T, error) {
	g.mu.Lock()
	g.created = append(g.created, payload)
	g.mu.Unlock()
	return g.createFn(payload)
}

func (g *fakeGateway[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	g.mu.Lock()
	g.updated = append(g.updated, payload)
	g.mu.Unlock()
	return g.updateFn(id, payload)
}

func (g *fakeGateway[T]) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	g.deleted = append(g.deleted, id)
	g.mu.Unlock()
	if g.deleteFn != nil {
		return g.deleteFn(id)
	}
	return nil
}

type stubError string

func (e stubError) Error() string { return string(e) }

const errNotStubbed = stubError("not stubbed")
