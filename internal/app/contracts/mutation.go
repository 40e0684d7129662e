package contracts

import (
	"context"
	"medicalcv-service/internal/app/models"
)

// MutationObserver is told about every mutation the backend confirmed.
// Implementations must not fail the caller.
type MutationObserver interface {
	OnMutation(ctx context.Context, mutation models.Mutation)
}

type AuditRepository interface {
	Insert(ctx context.Context, entry *models.AuditEntry) (string, error)
	FindByRecord(ctx context.Context, resource, recordID string) ([]models.AuditEntry, error)
}

type MessagePublisher interface {
	Publish(ctx context.Context, queueName string, message interface{}) error
}
