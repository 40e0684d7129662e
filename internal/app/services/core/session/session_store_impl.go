package session

import (
	"context"
	"fmt"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type sessionStore struct {
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
}

// NewSessionStore keeps the two session slots in redis, both expiring after ttl.
func NewSessionStore(redisRepository contracts.RedisRepository, ttl time.Duration) contracts.SessionStore {
	return &sessionStore{
		RedisRepository: redisRepository,
		TTL:             ttl,
	}
}

func slotKey(sessionID, slot string) string {
	return fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID, slot)
}

// Load returns empty values unless both slots are present and readable.
func (s *sessionStore) Load(ctx context.Context, sessionID string) (string, *models.Identity, error) {
	rawToken, err := s.RedisRepository.Get(ctx, slotKey(sessionID, constvars.SessionSlotAuthToken))
	if err != nil {
		return "", nil, err
	}
	rawIdentity, err := s.RedisRepository.Get(ctx, slotKey(sessionID, constvars.SessionSlotUserData))
	if err != nil {
		return "", nil, err
	}
	if rawToken == "" || rawIdentity == "" {
		return "", nil, nil
	}

	var token string
	if err := json.Unmarshal([]byte(rawToken), &token); err != nil {
		return "", nil, exceptions.ErrCannotParseJSON(err)
	}
	identity := new(models.Identity)
	if err := json.Unmarshal([]byte(rawIdentity), identity); err != nil {
		return "", nil, exceptions.ErrCannotParseJSON(err)
	}
	return token, identity, nil
}

func (s *sessionStore) Save(ctx context.Context, sessionID, token string, identity *models.Identity) error {
	if err := s.RedisRepository.Set(ctx, slotKey(sessionID, constvars.SessionSlotAuthToken), token, s.TTL); err != nil {
		return err
	}
	return s.RedisRepository.Set(ctx, slotKey(sessionID, constvars.SessionSlotUserData), identity, s.TTL)
}

func (s *sessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.RedisRepository.Delete(ctx,
		slotKey(sessionID, constvars.SessionSlotAuthToken),
		slotKey(sessionID, constvars.SessionSlotUserData),
	)
}
