package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStoreBackend = "STORE_BACKEND"
	EnvDataFile     = "DATA_FILE"
	EnvSQLitePath   = "SQLITE_PATH"
	EnvPostgresDSN  = "POSTGRES_DSN"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvStaticDir          = "STATIC_DIR"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvBackupSchedule      = "BACKUP_SCHEDULE"
	EnvBackupDir           = "BACKUP_DIR"
	EnvBackupRetentionDays = "BACKUP_RETENTION_DAYS"

	EnvSMTPHost  = "SMTP_HOST"
	EnvSMTPPort  = "SMTP_PORT"
	EnvSMTPUser  = "SMTP_USER"
	EnvSMTPPass  = "SMTP_PASS"
	EnvEmailFrom = "EMAIL_FROM"
	EnvEmailTo   = "EMAIL_TO"

	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "TWILIO_FROM_NUMBER"
	EnvTwilioToNumber   = "TWILIO_TO_NUMBER"

	EnvNotifyRatePerSec = "NOTIFY_RATE_PER_SEC"
	EnvNotifyQueueSize  = "NOTIFY_QUEUE_SIZE"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQ   = "BOOKING_EVENTS_DLQ"
	EnvNotifierGroupID    = "NOTIFIER_GROUP_ID"
)
