package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"email":      "must be a valid email",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"oneof":      "must be one of [%s]",
	"dive":       "is invalid",
	"gte":        "must be greater than or equal to %s",
	"datetime":   "must be a date in %s format",
	"blood_type": "must be a valid blood type",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gte":      true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidCredentials            = "invalid credentials"
	ErrClientMalformedLoginResponse        = "the server sent an unexpected login response"
	ErrClientLoginUnavailable              = "unable to reach the server, please try again"
	ErrClientTooManyLoginAttempts          = "too many login attempts, please wait a minute"
	ErrClientRequestFailed                 = "request failed"
	ErrClientFetchFailed                   = "failed to load %s"
	ErrClientMutationFailed                = "failed to %s %s"
	ErrClientRecordNotFound                = "%s not found"
	ErrClientProtectedRecord               = "this account cannot be changed"
	ErrClientConfirmationRequired          = "type 'confirm' to proceed"
	ErrClientConfirmationBusy              = "another delete is already pending"
	ErrClientConfirmationIdle              = "there is no pending delete"
	ErrClientConfirmationInFlight          = "the delete is already in progress"
	ErrClientFileTooLarge                  = "the file is too large"
	ErrClientUnknownResource               = "unknown resource"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevBackendStatus              = "backend responded with status %d for %s"
	ErrDevBackendDecodeResponse      = "failed to decode backend response for %s"
	ErrDevBackendUnsuccessful        = "backend reported unsuccessful response for %s"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server process failed"
	ErrDevAuthInvalidCredentials     = "backend rejected credentials"
	ErrDevAuthMalformedResponse      = "login response missing token or identity"
	ErrDevAuthTransport              = "login transport failure"
	ErrDevAuthThrottled              = "login attempts exceeded for %s"
	ErrDevAuthTokenMissing           = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired  = "auth token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate session token"
	ErrDevSessionNotFound            = "session %s has no persisted identity"
	ErrDevScopeForbidden             = "scope forbids %s on %s for role %s"
	ErrDevRecordNotFound             = "%s %s not found in base collection"
	ErrDevProtectedRecord            = "%s %s is protected from %s"
	ErrDevFetchFailed                = "failed to fetch %s"
	ErrDevMutationFailed             = "failed to %s %s"
	ErrDevConfirmationMismatch       = "typed confirmation does not match"
	ErrDevConfirmationBusy           = "confirmation gate not idle"
	ErrDevConfirmationIdle           = "confirmation gate has no target"
	ErrDevConfirmationInFlight       = "confirmation gate in flight"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevMongoDBInsertDocument      = "failed to insert document to mongo"
	ErrDevMongoDBFindDocument        = "failed to find document in mongo"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object in bucket %s"
	ErrDevFileTooLarge               = "file size %d exceeds limit %d"
	ErrDevUnknownResource            = "no controller for resource %s"
)
