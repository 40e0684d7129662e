package session

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/shared/ratelimiter"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

// Provider owns the identity and bearer token of one dashboard session. It is
// the only writer of the persisted session slots.
type Provider struct {
	sessionID string
	store     contracts.SessionStore
	auth      contracts.AuthGateway
	limiter   *ratelimiter.KeyedLimiter
	log       *zap.Logger

	mu          sync.RWMutex
	token       string
	identity    *models.Identity
	subscribers []func(*models.Identity)
}

func NewProvider(sessionID string, store contracts.SessionStore, auth contracts.AuthGateway, limiter *ratelimiter.KeyedLimiter, log *zap.Logger) *Provider {
	return &Provider{
		sessionID: sessionID,
		store:     store,
		auth:      auth,
		limiter:   limiter,
		log:       log,
	}
}

func (p *Provider) SessionID() string {
	return p.sessionID
}

func (p *Provider) Identity() *models.Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.identity
}

func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// Subscribe registers fn to receive every identity change, nil on logout.
func (p *Provider) Subscribe(fn func(*models.Identity)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Restore activates a previously persisted session. A missing or unreadable
// session leaves the provider logged out and is not reported.
func (p *Provider) Restore(ctx context.Context) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("session.Provider.Restore called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, p.sessionID),
	)

	token, identity, err := p.store.Load(ctx, p.sessionID)
	if err != nil {
		p.log.Warn("session.Provider.Restore could not read persisted session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, p.sessionID),
			zap.Error(err),
		)
		return
	}
	if token == "" || identity == nil || !identity.Role.IsValid() {
		return
	}
	p.activate(token, identity)
}

// Login checks the credentials with the backend. Nothing is persisted or
// activated unless sign in and persistence both succeed.
func (p *Provider) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("session.Provider.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, p.sessionID),
	)

	if !p.limiter.Allow(email) {
		return nil, exceptions.ErrAuthThrottled(email)
	}

	result, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		p.log.Warn("session.Provider.Login rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := p.store.Save(ctx, p.sessionID, result.Token, result.User); err != nil {
		p.log.Error("session.Provider.Login could not persist session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, p.sessionID),
			zap.Error(err),
		)
		if clearErr := p.store.Clear(ctx, p.sessionID); clearErr != nil {
			p.log.Warn("session.Provider.Login could not clear partial session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(clearErr),
			)
		}
		return nil, err
	}

	p.activate(result.Token, result.User)
	return result.User, nil
}

// Logout always ends the session. Backend and storage failures are logged only.
func (p *Provider) Logout(ctx context.Context) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("session.Provider.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, p.sessionID),
	)

	if token := p.Token(); token != "" {
		if err := p.auth.SignOut(ctx, token); err != nil {
			p.log.Warn("session.Provider.Logout backend notification failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
	if err := p.store.Clear(ctx, p.sessionID); err != nil {
		p.log.Warn("session.Provider.Logout could not clear persisted session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	p.activate("", nil)
}

func (p *Provider) activate(token string, identity *models.Identity) {
	p.mu.Lock()
	p.token = token
	p.identity = identity
	subscribers := append([]func(*models.Identity){}, p.subscribers...)
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(identity)
	}
}
