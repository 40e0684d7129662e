package listing

import (
	"context"
	"errors"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/app/services/core/confirm"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 100
	maxPages        = 1000
)

var errMissingID = errors.New("backend returned a record without id")

// Result is the observable state of a list screen.
type Result[T any] struct {
	Items           []T
	BaseTotal       int
	CategoryOptions map[string][]string
	Scope           access.Scope
	LoadErr         error
}

// Controller owns the base collection of one resource type for one session.
// The mutex guards local state only and is never held across a gateway call.
type Controller[T any] struct {
	descriptor Descriptor[T]
	gateway    contracts.ResourceGateway[T]
	observers  []contracts.MutationObserver
	log        *zap.Logger
	pageSize   int
	now        func() time.Time

	mu         sync.Mutex
	identity   *models.Identity
	scope      access.Scope
	generation uint64
	loadSeq    uint64
	appliedSeq uint64
	loaded     bool
	loadErr    error
	base       []T
	criteria   Criteria
	displayed  []T
}

type Option[T any] func(*Controller[T])

func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func WithObservers[T any](observers ...contracts.MutationObserver) Option[T] {
	return func(c *Controller[T]) {
		c.observers = append(c.observers, observers...)
	}
}

func NewController[T any](descriptor Descriptor[T], gateway contracts.ResourceGateway[T], identity *models.Identity, log *zap.Logger, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		descriptor: descriptor,
		gateway:    gateway,
		log:        log,
		pageSize:   defaultPageSize,
		now:        time.Now,
		identity:   identity,
		scope:      access.Resolve(identity, descriptor.Resource),
		base:       []T{},
		displayed:  []T{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller[T]) Resource() access.ResourceType {
	return c.descriptor.Resource
}

func (c *Controller[T]) Scope() access.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// SetIdentity swaps the identity after a session change. The base collection
// is dropped and results of calls started under the old identity are ignored.
func (c *Controller[T]) SetIdentity(identity *models.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.identity = identity
	c.scope = access.Resolve(identity, c.descriptor.Resource)
	c.generation++
	c.loaded = false
	c.loadErr = nil
	c.base = []T{}
	c.criteria = Criteria{}
	c.displayed = []T{}
}

func (c *Controller[T]) scopeQuery(scope access.Scope) url.Values {
	query := url.Values{}
	if scope.Class == access.OwnInstitutionOnly && c.descriptor.ScopeQuery != nil {
		c.descriptor.ScopeQuery(scope, query)
	}
	return query
}

// Load fetches every page of the candidate collection, applies the scope
// predicate and replaces the base collection. On failure the base collection
// becomes empty and the error is returned. A result is dropped when a newer
// load already completed.
func (c *Controller[T]) Load(ctx context.Context) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	generation := c.generation
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	if !scope.CanRead() {
		return exceptions.ErrScopeForbidden("read", c.descriptor.name(), roleOf(identity))
	}

	c.log.Info("listing.Controller.Load called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, c.descriptor.name()),
		zap.String(constvars.LoggingScopeKey, scope.Class.String()),
		zap.Uint64(constvars.LoggingLoadSequenceKey, seq),
	)

	items, err := c.fetchAll(ctx, scope)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation || c.appliedSeq > seq {
		c.log.Debug("listing.Controller.Load discarded stale result",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, c.descriptor.name()),
			zap.Uint64(constvars.LoggingLoadSequenceKey, seq),
		)
		if err != nil {
			return exceptions.ErrFetch(err, c.descriptor.name())
		}
		return nil
	}
	c.appliedSeq = seq

	if err != nil {
		c.log.Error("listing.Controller.Load failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, c.descriptor.name()),
			zap.Error(err),
		)
		fetchErr := exceptions.ErrFetch(err, c.descriptor.name())
		c.base = []T{}
		c.loaded = true
		c.loadErr = fetchErr
		c.displayed = filter(&c.descriptor, c.base, c.criteria)
		return fetchErr
	}

	visible := make([]T, 0, len(items))
	for _, item := range items {
		if c.descriptor.allowed(scope, item) {
			visible = append(visible, item)
		}
	}
	c.base = visible
	c.loaded = true
	c.loadErr = nil
	c.displayed = filter(&c.descriptor, c.base, c.criteria)

	c.log.Info("listing.Controller.Load succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, c.descriptor.name()),
		zap.Int(constvars.LoggingCountKey, len(visible)),
	)
	return nil
}

func (c *Controller[T]) fetchAll(ctx context.Context, scope access.Scope) ([]T, error) {
	items := make([]T, 0)
	for page := 1; page <= maxPages; page++ {
		query := c.scopeQuery(scope)
		query.Set(constvars.QueryParamPage, strconv.Itoa(page))
		query.Set(constvars.QueryParamLimit, strconv.Itoa(c.pageSize))

		result, err := c.gateway.List(ctx, query)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}
	return items, nil
}

// ApplyFilter stores criteria and returns the displayed collection.
func (c *Controller[T]) ApplyFilter(criteria Criteria) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria
	c.displayed = filter(&c.descriptor, c.base, criteria)
	return append([]T(nil), c.displayed...)
}

func (c *Controller[T]) Displayed() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.displayed...)
}

func (c *Controller[T]) Result() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resultLocked()
}

// ResultFor applies criteria and snapshots the outcome under one lock, so a
// concurrent filter from the same session cannot leak into the returned items.
func (c *Controller[T]) ResultFor(criteria Criteria) Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria
	c.displayed = filter(&c.descriptor, c.base, criteria)
	return c.resultLocked()
}

func (c *Controller[T]) resultLocked() Result[T] {
	return Result[T]{
		Items:           append([]T{}, c.displayed...),
		BaseTotal:       len(c.base),
		CategoryOptions: categoryOptions(&c.descriptor, c.base),
		Scope:           c.scope,
		LoadErr:         c.loadErr,
	}
}

// Find looks id up in the base collection.
func (c *Controller[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(id)
}

func (c *Controller[T]) findLocked(id string) (T, bool) {
	for _, item := range c.base {
		if c.descriptor.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Get returns one record visible under the current scope, preferring the
// base collection over a backend round trip.
func (c *Controller[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	item, found := c.findLocked(id)
	c.mu.Unlock()

	if !scope.CanRead() {
		return zero, exceptions.ErrScopeForbidden("read", c.descriptor.name(), roleOf(identity))
	}
	if found {
		return item, nil
	}

	item, err := c.gateway.Get(ctx, id)
	if err != nil {
		return zero, exceptions.ErrFetch(err, c.descriptor.name())
	}
	if !c.descriptor.allowed(scope, item) {
		return zero, exceptions.ErrRecordNotFound(c.descriptor.name(), id)
	}
	return item, nil
}

// Visible reports whether id can be read under the current scope.
func (c *Controller[T]) Visible(ctx context.Context, id string) error {
	_, err := c.Get(ctx, id)
	return err
}

// Create submits payload and appends the server's record once confirmed.
// Under an own-institution scope the caller's institution replaces whatever
// the payload carried.
func (c *Controller[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T

	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	generation := c.generation
	c.mu.Unlock()

	if !scope.CanMutate() {
		return zero, exceptions.ErrScopeForbidden("create", c.descriptor.name(), roleOf(identity))
	}
	if scope.Class == access.OwnInstitutionOnly && c.descriptor.AssignInstitution != nil {
		payload = c.descriptor.AssignInstitution(payload, scope.InstitutionID)
	}

	created, err := c.gateway.Create(ctx, payload)
	if err == nil && c.descriptor.ID(created) == "" {
		err = errMissingID
	}
	if err != nil {
		return zero, c.mutationFailed(ctx, err, models.MutationActionCreate, "")
	}

	c.mu.Lock()
	if generation == c.generation && c.descriptor.allowed(c.scope, created) {
		c.base = append(c.base, created)
		c.displayed = filter(&c.descriptor, c.base, c.criteria)
	}
	c.mu.Unlock()

	c.notify(ctx, identity, models.MutationActionCreate, c.descriptor.ID(created))
	return created, nil
}

// Update submits payload for id and replaces the base entry once confirmed.
func (c *Controller[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	var zero T

	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	generation := c.generation
	c.mu.Unlock()

	if !scope.CanMutate() {
		return zero, exceptions.ErrScopeForbidden("update", c.descriptor.name(), roleOf(identity))
	}

	existing, err := c.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if c.descriptor.isProtected(existing) {
		return zero, exceptions.ErrProtectedRecord(c.descriptor.name(), id, string(models.MutationActionUpdate))
	}
	if c.descriptor.Preserve != nil {
		payload = c.descriptor.Preserve(existing, payload)
	}
	if scope.Class == access.OwnInstitutionOnly && c.descriptor.KeepInstitutions != nil {
		payload = c.descriptor.KeepInstitutions(existing, payload)
	}

	updated, err := c.gateway.Update(ctx, id, payload)
	if err != nil {
		return zero, c.mutationFailed(ctx, err, models.MutationActionUpdate, id)
	}

	c.mu.Lock()
	if generation == c.generation {
		next := make([]T, 0, len(c.base))
		for _, item := range c.base {
			if c.descriptor.ID(item) != id {
				next = append(next, item)
				continue
			}
			if c.descriptor.allowed(c.scope, updated) {
				next = append(next, updated)
			}
		}
		c.base = next
		c.displayed = filter(&c.descriptor, c.base, c.criteria)
	}
	c.mu.Unlock()

	c.notify(ctx, identity, models.MutationActionUpdate, id)
	return updated, nil
}

// Delete removes the entity the approval was issued for. Only the
// confirmation gate can produce an approval.
func (c *Controller[T]) Delete(ctx context.Context, approval confirm.Approval) error {
	id := approval.Target().ID
	if !approval.Covers(c.descriptor.name(), id) {
		return exceptions.ErrConfirmationMismatch()
	}

	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	generation := c.generation
	c.mu.Unlock()

	if !scope.CanMutate() {
		return exceptions.ErrScopeForbidden("delete", c.descriptor.name(), roleOf(identity))
	}

	existing, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.descriptor.isProtected(existing) {
		return exceptions.ErrProtectedRecord(c.descriptor.name(), id, string(models.MutationActionDelete))
	}

	if err := c.gateway.Delete(ctx, id); err != nil {
		return c.mutationFailed(ctx, err, models.MutationActionDelete, id)
	}

	c.mu.Lock()
	if generation == c.generation {
		next := make([]T, 0, len(c.base))
		for _, item := range c.base {
			if c.descriptor.ID(item) != id {
				next = append(next, item)
			}
		}
		c.base = next
		c.displayed = filter(&c.descriptor, c.base, c.criteria)
	}
	c.mu.Unlock()

	c.notify(ctx, identity, models.MutationActionDelete, id)
	return nil
}

// DeleteTarget describes id for the confirmation gate.
func (c *Controller[T]) DeleteTarget(ctx context.Context, id string) (confirm.Target, error) {
	c.mu.Lock()
	scope := c.scope
	identity := c.identity
	c.mu.Unlock()

	if !scope.CanMutate() {
		return confirm.Target{}, exceptions.ErrScopeForbidden("delete", c.descriptor.name(), roleOf(identity))
	}
	existing, err := c.Get(ctx, id)
	if err != nil {
		return confirm.Target{}, err
	}
	if c.descriptor.isProtected(existing) {
		return confirm.Target{}, exceptions.ErrProtectedRecord(c.descriptor.name(), id, string(models.MutationActionDelete))
	}
	return confirm.Target{
		Resource:    c.descriptor.name(),
		ID:          id,
		DisplayName: c.descriptor.DisplayName(existing),
	}, nil
}

func (c *Controller[T]) mutationFailed(ctx context.Context, err error, action models.MutationAction, id string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.log.Error("listing.Controller mutation failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, c.descriptor.name()),
		zap.String(constvars.LoggingActionKey, string(action)),
		zap.String(constvars.LoggingResourceIDKey, id),
		zap.Error(err),
	)
	return exceptions.ErrMutation(err, string(action), c.descriptor.name())
}

func (c *Controller[T]) notify(ctx context.Context, identity *models.Identity, action models.MutationAction, id string) {
	mutation := models.Mutation{
		Resource:   c.descriptor.name(),
		Action:     action,
		RecordID:   id,
		OccurredAt: c.now().UTC(),
	}
	if identity != nil {
		mutation.ActorID = identity.ID
		mutation.ActorRole = identity.Role
	}
	for _, observer := range c.observers {
		observer.OnMutation(ctx, mutation)
	}
}

func roleOf(identity *models.Identity) string {
	if identity == nil {
		return constvars.ResponseUnknown
	}
	return string(identity.Role)
}
