package contracts

import (
	"context"
	"medicalcv-service/internal/app/models"
)

// SessionStore persists the token and identity slots of one dashboard session.
// A missing slot is not an error: Load returns empty values.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (token string, identity *models.Identity, err error)
	Save(ctx context.Context, sessionID, token string, identity *models.Identity) error
	Clear(ctx context.Context, sessionID string) error
}

// TokenSource hands the gateway the bearer credential of the active session.
type TokenSource interface {
	Token() string
}

type IdentitySource interface {
	Identity() *models.Identity
}
