package audit

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

const insertTimeout = 5 * time.Second

type auditObserver struct {
	repository contracts.AuditRepository
	log        *zap.Logger
}

func NewAuditObserver(repository contracts.AuditRepository, log *zap.Logger) contracts.MutationObserver {
	return &auditObserver{
		repository: repository,
		log:        log,
	}
}

// OnMutation records the entry. A failed insert is logged and dropped.
func (o *auditObserver) OnMutation(ctx context.Context, mutation models.Mutation) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()

	entry := &models.AuditEntry{
		SessionID: sessionID,
		RequestID: requestID,
		Mutation:  mutation,
	}
	if _, err := o.repository.Insert(ctx, entry); err != nil {
		o.log.Warn("auditObserver.OnMutation insert failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, mutation.Resource),
			zap.String(constvars.LoggingResourceIDKey, mutation.RecordID),
			zap.Error(err),
		)
	}
}
