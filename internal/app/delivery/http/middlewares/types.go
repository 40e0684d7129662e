package middlewares

import (
	"medicalcv-service/internal/app/config"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	JWTManager     *jwtmanager.JWTManager
	Registry       *workspace.Registry
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, jwtManager *jwtmanager.JWTManager, registry *workspace.Registry) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		JWTManager:     jwtManager,
		Registry:       registry,
	}
}
