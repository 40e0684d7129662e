package exceptions

import (
	"errors"
	"fmt"
	"medicalcv-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrFileTooLarge = func(size, limit int64) *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusRequestEntityTooBig, constvars.ErrClientFileTooLarge, fmt.Sprintf(constvars.ErrDevFileTooLarge, size, limit))
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}

	// Auth
	ErrAuthInvalidCredentials = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusUnauthorized, constvars.ErrClientInvalidCredentials, constvars.ErrDevAuthInvalidCredentials)
	}
	ErrAuthMalformedResponse = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusBadGateway, constvars.ErrClientMalformedLoginResponse, constvars.ErrDevAuthMalformedResponse)
	}
	ErrAuthTransport = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusBadGateway, constvars.ErrClientLoginUnavailable, constvars.ErrDevAuthTransport)
	}
	ErrAuthThrottled = func(email string) *CustomError {
		return BuildNewCustomError(nil, KindAuth, constvars.StatusTooManyRequests, constvars.ErrClientTooManyLoginAttempts, fmt.Sprintf(constvars.ErrDevAuthThrottled, email))
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, KindAuth, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrSessionNotFound = func(sessionID string) *CustomError {
		return BuildNewCustomError(nil, KindAuth, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, fmt.Sprintf(constvars.ErrDevSessionNotFound, sessionID))
	}

	// Scope
	ErrScopeForbidden = func(action, resource, role string) *CustomError {
		return BuildNewCustomError(nil, KindScope, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevScopeForbidden, action, resource, role))
	}

	// Resource list controllers
	ErrFetch = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, KindFetch, constvars.StatusBadGateway, fmt.Sprintf(constvars.ErrClientFetchFailed, resource), fmt.Sprintf(constvars.ErrDevFetchFailed, resource))
	}
	ErrMutation = func(err error, action, resource string) *CustomError {
		return BuildNewCustomError(err, KindMutation, constvars.StatusBadGateway, fmt.Sprintf(constvars.ErrClientMutationFailed, action, resource), fmt.Sprintf(constvars.ErrDevMutationFailed, action, resource))
	}
	ErrRecordNotFound = func(resource, id string) *CustomError {
		return BuildNewCustomError(nil, KindFetch, constvars.StatusNotFound, fmt.Sprintf(constvars.ErrClientRecordNotFound, resource), fmt.Sprintf(constvars.ErrDevRecordNotFound, resource, id))
	}
	ErrProtectedRecord = func(resource, id, action string) *CustomError {
		return BuildNewCustomError(nil, KindScope, constvars.StatusForbidden, constvars.ErrClientProtectedRecord, fmt.Sprintf(constvars.ErrDevProtectedRecord, resource, id, action))
	}

	ErrUnknownResource = func(resource string) *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusNotFound, constvars.ErrClientUnknownResource, fmt.Sprintf(constvars.ErrDevUnknownResource, resource))
	}

	// Confirmation gate
	ErrConfirmationMismatch = func() *CustomError {
		return BuildNewCustomError(nil, KindConfirmation, constvars.StatusBadRequest, constvars.ErrClientConfirmationRequired, constvars.ErrDevConfirmationMismatch)
	}
	ErrConfirmationBusy = func() *CustomError {
		return BuildNewCustomError(nil, KindConfirmation, constvars.StatusConflict, constvars.ErrClientConfirmationBusy, constvars.ErrDevConfirmationBusy)
	}
	ErrConfirmationIdle = func() *CustomError {
		return BuildNewCustomError(nil, KindConfirmation, constvars.StatusConflict, constvars.ErrClientConfirmationIdle, constvars.ErrDevConfirmationIdle)
	}
	ErrConfirmationInFlight = func() *CustomError {
		return BuildNewCustomError(nil, KindConfirmation, constvars.StatusConflict, constvars.ErrClientConfirmationInFlight, constvars.ErrDevConfirmationInFlight)
	}

	// Backend gateway
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientRequestFailed, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusBadGateway, constvars.ErrClientRequestFailed, constvars.ErrDevSendHTTPRequest)
	}
	ErrBackendStatus = func(statusCode int, path string) *CustomError {
		return BuildNewCustomError(nil, KindInfrastructure, constvars.StatusBadGateway, constvars.ErrClientRequestFailed, fmt.Sprintf(constvars.ErrDevBackendStatus, statusCode, path))
	}
	ErrBackendDecodeResponse = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusBadGateway, constvars.ErrClientRequestFailed, fmt.Sprintf(constvars.ErrDevBackendDecodeResponse, path))
	}
	ErrBackendUnsuccessful = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusBadGateway, constvars.ErrClientRequestFailed, fmt.Sprintf(constvars.ErrDevBackendUnsuccessful, path))
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}

	// Mongo DB
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBInsertDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBFindDocument)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioPresignObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, KindInfrastructure, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToPresignObject, bucketName))
	}
)

// KindOf reports the Kind of err when it is a CustomError.
func KindOf(err error) Kind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return ""
}
