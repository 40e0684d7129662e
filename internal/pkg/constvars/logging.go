package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingSessionIDKey    = "session_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingURLKey          = "url"
	LoggingResourceKey     = "resource"
	LoggingResourceIDKey   = "resource_id"
	LoggingUserIDKey       = "user_id"
	LoggingRoleKey         = "role"
	LoggingActionKey       = "action"
	LoggingCountKey        = "count"
	LoggingScopeKey        = "scope"
	LoggingBucketKey       = "bucket"
	LoggingObjectKey       = "object"
	LoggingQueueKey        = "queue"
	LoggingGateStateKey    = "gate_state"
	LoggingResponseLenKey  = "response_length"
	LoggingLoadSequenceKey = "load_sequence"
	LoggingFileSizeKey     = "file_size"
)
