package events

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// MutationEvent is the message body consumers of the mutation queue receive.
type MutationEvent struct {
	models.Mutation
	SessionID string `json:"sessionId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type mutationObserver struct {
	publisher contracts.MessagePublisher
	queueName string
	log       *zap.Logger
}

func NewMutationObserver(publisher contracts.MessagePublisher, queueName string, log *zap.Logger) contracts.MutationObserver {
	return &mutationObserver{
		publisher: publisher,
		queueName: queueName,
		log:       log,
	}
}

// OnMutation publishes the event. A failed publish is logged and dropped.
func (o *mutationObserver) OnMutation(ctx context.Context, mutation models.Mutation) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := MutationEvent{
		Mutation:  mutation,
		SessionID: sessionID,
		RequestID: requestID,
	}
	if err := o.publisher.Publish(ctx, o.queueName, event); err != nil {
		o.log.Warn("mutationObserver.OnMutation publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, mutation.Resource),
			zap.String(constvars.LoggingActionKey, string(mutation.Action)),
			zap.Error(err),
		)
	}
}
