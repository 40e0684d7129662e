package middlewares

import (
	"context"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token to the caller's workspace and puts
// it, with the session id, into the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))

		sessionID, err := m.JWTManager.VerifyToken(ctx, token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ws, err := m.Registry.Get(ctx, sessionID)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate unknown session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_ID_KEY, sessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_WORKSPACE_KEY, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WorkspaceFromContext(ctx context.Context) (*workspace.Workspace, bool) {
	ws, ok := ctx.Value(constvars.CONTEXT_WORKSPACE_KEY).(*workspace.Workspace)
	return ws, ok && ws != nil
}
