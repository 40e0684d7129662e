package controllers

import (
	"context"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type DashboardController struct {
	Log     *zap.Logger
	Timeout time.Duration
}

func NewDashboardController(logger *zap.Logger, timeoutInSeconds int) *DashboardController {
	return &DashboardController{
		Log:     logger,
		Timeout: requestTimeout(timeoutInSeconds),
	}
}

// GetDashboard always answers with the figures; a failed count is reported
// inside them as zeros plus the error text.
func (ctrl *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	stats, err := ws.Stats(ctx)
	if err != nil {
		ctrl.Log.Warn("DashboardController.GetDashboard counted zeros after a failure",
			zap.String(constvars.LoggingRequestIDKey, requestIDOf(r)),
			zap.Error(err),
		)
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccess, stats)
}
