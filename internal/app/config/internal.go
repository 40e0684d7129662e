package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Backend  AppBackend  `mapstructure:"backend"`
	JWT      AppJWT      `mapstructure:"jwt"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	MongoDB  AppMongoDB  `mapstructure:"mongodb"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int      `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	SessionExpiredTimeInHours  int      `mapstructure:"session_expired_time_in_hours"`
	WorkspaceIdleTimeInMinutes int      `mapstructure:"workspace_idle_time_in_minutes"`
	LoginAttemptsPerMinute     int      `mapstructure:"login_attempts_per_minute"`
}

type AppBackend struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
	PageSize                int    `mapstructure:"page_size"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppMinio struct {
	BucketName                      string `mapstructure:"bucket_name"`
	AttachmentMaxUploadSizeInMB     int64  `mapstructure:"attachment_max_upload_size_in_mb"`
	PreSignedUrlObjectExpiryInHours int    `mapstructure:"pre_signed_url_object_expiry_in_hours"`
}

type AppRabbitMQ struct {
	MutationQueue string `mapstructure:"mutation_queue"`
}

type AppMongoDB struct {
	DbName          string `mapstructure:"db_name"`
	AuditCollection string `mapstructure:"audit_collection"`
}
