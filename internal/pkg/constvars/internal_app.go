package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_WORKSPACE_KEY            ContextKey = "workspace"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
)

const (
	REQUEST_ID_PREFIX = "MCV_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

// Persisted client slots, written and cleared only by the session provider.
const (
	SessionSlotAuthToken = "authToken"
	SessionSlotUserData  = "userData"
)

const (
	RedisSessionKeyFormat = "dashboard:session:%s:%s"
)

const (
	ConfirmationWord = "confirm"
)

const (
	JWTClaimSessionID = "sid"
)

const (
	CategoryFilterAll = "all"
)
