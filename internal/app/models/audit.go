package models

import "time"

type MutationAction string

const (
	MutationActionCreate MutationAction = "create"
	MutationActionUpdate MutationAction = "update"
	MutationActionDelete MutationAction = "delete"
)

// Mutation describes one create, update or delete the backend confirmed.
type Mutation struct {
	Resource   string         `json:"resource" bson:"resource"`
	Action     MutationAction `json:"action" bson:"action"`
	RecordID   string         `json:"recordId" bson:"recordId"`
	ActorID    string         `json:"actorId" bson:"actorId"`
	ActorRole  Role           `json:"actorRole" bson:"actorRole"`
	OccurredAt time.Time      `json:"occurredAt" bson:"occurredAt"`
}

type AuditEntry struct {
	ID        string `bson:"_id,omitempty"`
	SessionID string `bson:"sessionId"`
	RequestID string `bson:"requestId,omitempty"`
	Mutation  `bson:",inline"`
}
