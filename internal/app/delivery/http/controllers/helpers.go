package controllers

import (
	"context"
	"errors"
	"medicalcv-service/internal/app/delivery/http/middlewares"
	"medicalcv-service/internal/app/services/core/access"
	"medicalcv-service/internal/app/services/core/confirm"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func currentWorkspace(log *zap.Logger, w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := middlewares.WorkspaceFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(log, w, exceptions.ErrTokenMissing(nil))
		return nil, false
	}
	return ws, true
}

func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func navigationItems(entries []access.NavigationEntry) []responses.NavigationItem {
	items := make([]responses.NavigationItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, responses.NavigationItem{
			Label:    entry.Label,
			Resource: string(entry.Resource),
			Path:     "/" + string(entry.Resource),
		})
	}
	return items
}

func confirmationResponse(snapshot confirm.Snapshot) responses.Confirmation {
	response := responses.Confirmation{
		State:       string(snapshot.State),
		Resource:    snapshot.Target.Resource,
		TargetID:    snapshot.Target.ID,
		DisplayName: snapshot.Target.DisplayName,
		Input:       snapshot.Input,
		CanConfirm:  snapshot.CanConfirm,
	}
	if snapshot.LastError != nil {
		response.LastError = snapshot.LastError.Error()
		var customErr *exceptions.CustomError
		if errors.As(snapshot.LastError, &customErr) {
			response.LastError = customErr.ClientMessage
		}
	}
	return response
}

func requestIDOf(r *http.Request) string {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
