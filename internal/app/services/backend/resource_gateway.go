package backend

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"net/url"

	"go.uber.org/zap"
)

// Resource is the gateway for one backend collection, bound to the token of
// one dashboard session.
type Resource[T any] struct {
	client *Client
	tokens contracts.TokenSource
	path   string
	name   string
}

func NewResource[T any](client *Client, tokens contracts.TokenSource, path, name string) *Resource[T] {
	return &Resource[T]{
		client: client,
		tokens: tokens,
		path:   path,
		name:   name,
	}
}

var _ contracts.ResourceGateway[struct{}] = (*Resource[struct{}])(nil)

func (r *Resource[T]) token() string {
	if r.tokens == nil {
		return ""
	}
	return r.tokens.Token()
}

func (r *Resource[T]) logCall(ctx context.Context, method string, fields ...zap.Field) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fields = append(fields,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, r.name),
	)
	r.client.Log.Info("backend.Resource."+method+" called", fields...)
}

// List returns one page. When the backend omits pagination the page is
// treated as the whole collection.
func (r *Resource[T]) List(ctx context.Context, query url.Values) (*responses.Page[T], error) {
	r.logCall(ctx, "List", zap.String(constvars.LoggingQueryKey, query.Encode()))

	envelope, _, err := send[[]T](ctx, r.client, call{
		method: constvars.MethodGet,
		path:   r.path,
		token:  r.token(),
		query:  query,
	})
	if err != nil {
		return nil, err
	}

	page := &responses.Page[T]{
		Items:      envelope.Data,
		Total:      len(envelope.Data),
		TotalPages: 1,
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if envelope.Pagination != nil {
		page.Total = envelope.Pagination.TotalItems
		page.TotalPages = envelope.Pagination.TotalPages
	}
	return page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	r.logCall(ctx, "Get", zap.String(constvars.LoggingResourceIDKey, id))

	envelope, _, err := send[T](ctx, r.client, call{
		method: constvars.MethodGet,
		path:   r.path + "/" + url.PathEscape(id),
		token:  r.token(),
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return envelope.Data, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	r.logCall(ctx, "Create")

	envelope, _, err := send[T](ctx, r.client, call{
		method: constvars.MethodPost,
		path:   r.path,
		token:  r.token(),
		body:   payload,
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return envelope.Data, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	r.logCall(ctx, "Update", zap.String(constvars.LoggingResourceIDKey, id))

	envelope, _, err := send[T](ctx, r.client, call{
		method: constvars.MethodPut,
		path:   r.path + "/" + url.PathEscape(id),
		token:  r.token(),
		body:   payload,
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return envelope.Data, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	r.logCall(ctx, "Delete", zap.String(constvars.LoggingResourceIDKey, id))

	_, _, err := send[struct{}](ctx, r.client, call{
		method: constvars.MethodDelete,
		path:   r.path + "/" + url.PathEscape(id),
		token:  r.token(),
	})
	return err
}
