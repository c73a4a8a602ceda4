package config

import "time"

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

const (
	DefaultPort     = "3000"
	DefaultLogLevel = "info"

	DefaultStoreBackend = BackendFile
	DefaultDataFile     = "data/bookings.json"
	DefaultSQLitePath   = "data/bookings.db"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "salonbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultStaticDir          = "public"
	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 10 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRedisDB = 0

	DefaultBackupDir           = "data/backups"
	DefaultBackupRetentionDays = 14

	DefaultSMTPPort = 587

	DefaultNotifyRatePerSec = 5.0
	DefaultNotifyQueueSize  = 100

	DefaultBookingEventsTopic = "bookings.created"
	DefaultBookingEventsDLQ   = "bookings.created.dlq"
	DefaultNotifierGroupID    = "salonbook-notifier"
)
