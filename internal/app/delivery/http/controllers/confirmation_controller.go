package controllers

import (
	"context"
	"fmt"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/requests"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ConfirmationController drives the workspace's destructive-action gate.
type ConfirmationController struct {
	Log     *zap.Logger
	Timeout time.Duration
}

func NewConfirmationController(logger *zap.Logger, timeoutInSeconds int) *ConfirmationController {
	return &ConfirmationController{
		Log:     logger,
		Timeout: requestTimeout(timeoutInSeconds),
	}
}

func (ctrl *ConfirmationController) GetState(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmationStateSuccess, confirmationResponse(ws.Gate.Snapshot()))
}

func (ctrl *ConfirmationController) Type(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.ConfirmationInput)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := ws.Gate.Type(request.Input); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmationTypedSuccess, confirmationResponse(ws.Gate.Snapshot()))
}

func (ctrl *ConfirmationController) Confirm(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	target := ws.Gate.Snapshot().Target

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	if err := ws.Confirm(ctx); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ConfirmationController.Confirm deleted",
		zap.String(constvars.LoggingRequestIDKey, requestIDOf(r)),
		zap.String(constvars.LoggingResourceKey, target.Resource),
		zap.String(constvars.LoggingResourceIDKey, target.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccess, target.Resource), confirmationResponse(ws.Gate.Snapshot()))
}

func (ctrl *ConfirmationController) Cancel(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}
	if err := ws.Gate.Cancel(); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmationCancelledSuccess, confirmationResponse(ws.Gate.Snapshot()))
}
