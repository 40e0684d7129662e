package controllers

import (
	"context"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/app/services/shared/jwtmanager"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/requests"
	"medicalcv-service/internal/pkg/dto/responses"
	"medicalcv-service/internal/pkg/exceptions"
	"medicalcv-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log        *zap.Logger
	Registry   *workspace.Registry
	JWTManager *jwtmanager.JWTManager
	Timeout    time.Duration
}

func NewAuthController(logger *zap.Logger, registry *workspace.Registry, jwtManager *jwtmanager.JWTManager, timeoutInSeconds int) *AuthController {
	return &AuthController{
		Log:        logger,
		Registry:   registry,
		JWTManager: jwtManager,
		Timeout:    requestTimeout(timeoutInSeconds),
	}
}

// Login opens a workspace, signs in through it and hands back the token
// that identifies the workspace on later requests.
func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.Login)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Email = strings.TrimSpace(request.Email)

	// Validate request
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	ws := ctrl.Registry.Open()
	ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_ID_KEY, ws.ID())

	identity, err := ws.Session.Login(ctx, request.Email, request.Password)
	if err != nil {
		ctrl.Registry.Close(ws.ID())
		writeError(ctrl.Log, w, err)
		return
	}

	token, err := ctrl.JWTManager.CreateToken(ctx, ws.ID())
	if err != nil {
		ws.Session.Logout(ctx)
		ctrl.Registry.Close(ws.ID())
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenGenerate(err))
		return
	}

	ctrl.Log.Info("AuthController.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestIDOf(r)),
		zap.String(constvars.LoggingUserIDKey, identity.ID),
		zap.String(constvars.LoggingRoleKey, string(identity.Role)),
	)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccess, responses.Login{
		Token:      token,
		User:       identity,
		Navigation: navigationItems(ws.Navigation()),
	})
}

// Logout always succeeds for the caller.
func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	ws.Session.Logout(ctx)
	ctrl.Registry.Close(ws.ID())

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccess, nil)
}

func (ctrl *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	ws, ok := currentWorkspace(ctrl.Log, w, r)
	if !ok {
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccess, responses.Profile{
		User:       ws.Identity(),
		Navigation: navigationItems(ws.Navigation()),
	})
}
