package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"medicalcv-service/internal/app/config"
	"medicalcv-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTManager issues and verifies the HS256 tokens that bind a browser to its
// dashboard session.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) *JWTManager {
	return &JWTManager{
		log:    log,
		secret: []byte(cfg.JWT.Secret),
		ttl:    time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour,
	}
}

// CreateToken signs a token for sessionID, expiring after the configured ttl.
func (j *JWTManager) CreateToken(ctx context.Context, sessionID string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(sessionID) == "" {
		return "", errors.New("session id is required")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		constvars.JWTClaimSessionID: sessionID,
		"iat":                       now.Unix(),
		"nbf":                       now.Unix(),
		"exp":                       now.Add(j.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// VerifyToken checks signature and expiry and returns the session id.
func (j *JWTManager) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(tokenString) == "" {
		return "", errors.New("token is required")
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	sessionID, _ := claims[constvars.JWTClaimSessionID].(string)
	if sessionID == "" {
		return "", errors.New("token has no session id")
	}
	return sessionID, nil
}
