package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"salonbook/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

var (
	mongoURIRegex   = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://|postgres(ql)?://)[^:/@]+:[^@]+@`)
	dsnPasswordRe   = regexp.MustCompile(`password=\S+`)
)

type Config struct {
	Port string

	StoreBackend string
	DataFile     string
	SQLitePath   string
	PostgresDSN  string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	StaticDir          string
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BackupSchedule      string
	BackupDir           string
	BackupRetentionDays int

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	EmailTo   string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioToNumber   string

	NotifyRatePerSec float64
	NotifyQueueSize  int

	KafkaBrokers       string
	BookingEventsTopic string
	BookingEventsDLQ   string
	NotifierGroupID    string

	Log *logger.Logger
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; variables already set in the
// process environment take precedence over it.
func Load(serviceName string) *Config {
	envFileErr := godotenv.Load()

	smtpUser := getEnvStr(EnvSMTPUser, "")

	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend: strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),
		DataFile:     getEnvStr(EnvDataFile, DefaultDataFile),
		SQLitePath:   getEnvStr(EnvSQLitePath, DefaultSQLitePath),
		PostgresDSN:  getEnvStr(EnvPostgresDSN, ""),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		StaticDir:          getEnvStr(EnvStaticDir, DefaultStaticDir),
		CORSAllowedOrigins: splitList(getEnvStr(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins)),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		BackupSchedule:      getEnvStr(EnvBackupSchedule, ""),
		BackupDir:           getEnvStr(EnvBackupDir, DefaultBackupDir),
		BackupRetentionDays: getEnvNum(EnvBackupRetentionDays, DefaultBackupRetentionDays),

		SMTPHost:  getEnvStr(EnvSMTPHost, ""),
		SMTPPort:  getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUser:  smtpUser,
		SMTPPass:  getEnvStr(EnvSMTPPass, ""),
		EmailFrom: getEnvStr(EnvEmailFrom, smtpUser),
		EmailTo:   getEnvStr(EnvEmailTo, smtpUser),

		TwilioAccountSID: getEnvStr(EnvTwilioAccountSID, ""),
		TwilioAuthToken:  getEnvStr(EnvTwilioAuthToken, ""),
		TwilioFromNumber: getEnvStr(EnvTwilioFromNumber, ""),
		TwilioToNumber:   getEnvStr(EnvTwilioToNumber, ""),

		NotifyRatePerSec: getEnvFloat(EnvNotifyRatePerSec, DefaultNotifyRatePerSec),
		NotifyQueueSize:  getEnvNum(EnvNotifyQueueSize, DefaultNotifyQueueSize),

		KafkaBrokers:       getEnvStr(EnvKafkaBrokers, ""),
		BookingEventsTopic: getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		BookingEventsDLQ:   getEnvStr(EnvBookingEventsDLQ, DefaultBookingEventsDLQ),
		NotifierGroupID:    getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if envFileErr != nil && !errors.Is(envFileErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to parse .env file", "error", envFileErr)
	}

	return cfg
}

func (cfg *Config) EmailEnabled() bool {
	return cfg.SMTPHost != ""
}

func (cfg *Config) SMSEnabled() bool {
	return cfg.TwilioAccountSID != ""
}

func (cfg *Config) KafkaEnabled() bool {
	return cfg.KafkaBrokers != ""
}

func (cfg *Config) RedisEnabled() bool {
	return cfg.RedisAddr != ""
}

func (cfg *Config) BackupEnabled() bool {
	return cfg.BackupSchedule != "" && cfg.StoreBackend == BackendFile
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreBackend {
	case BackendFile:
		if cfg.DataFile == "" {
			errors = append(errors, "DataFile cannot be empty when STORE_BACKEND=file")
		}
	case BackendMemory:
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			errors = append(errors, "SQLitePath cannot be empty when STORE_BACKEND=sqlite")
		}
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			errors = append(errors, "PostgresDSN cannot be empty when STORE_BACKEND=postgres")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of [file, memory, sqlite, postgres, mongo], got: %s", cfg.StoreBackend))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RequestTimeout > 0 && cfg.WriteTimeout > 0 && cfg.RequestTimeout >= cfg.WriteTimeout {
		errors = append(errors, fmt.Sprintf("RequestTimeout (%s) must be shorter than WriteTimeout (%s)", cfg.RequestTimeout, cfg.WriteTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
	}

	if cfg.BackupSchedule != "" {
		if _, err := cron.ParseStandard(cfg.BackupSchedule); err != nil {
			errors = append(errors, fmt.Sprintf("BackupSchedule must be a valid cron expression, got: %s (%v)", cfg.BackupSchedule, err))
		}
		if cfg.BackupDir == "" {
			errors = append(errors, "BackupDir cannot be empty when BackupSchedule is set")
		}
	}
	if cfg.BackupRetentionDays < 0 {
		errors = append(errors, fmt.Sprintf("BackupRetentionDays cannot be negative, got: %d", cfg.BackupRetentionDays))
	}

	if cfg.EmailEnabled() {
		if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
		}
		if cfg.EmailFrom == "" || cfg.EmailTo == "" {
			errors = append(errors, "EMAIL_FROM and EMAIL_TO (or SMTP_USER) are required when SMTP_HOST is set")
		}
	}

	if cfg.SMSEnabled() {
		if cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" || cfg.TwilioToNumber == "" {
			errors = append(errors, "TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER and TWILIO_TO_NUMBER are required when TWILIO_ACCOUNT_SID is set")
		}
	}

	if cfg.NotifyRatePerSec <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyRatePerSec must be positive, got: %v", cfg.NotifyRatePerSec))
	}
	if cfg.NotifyQueueSize <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyQueueSize must be positive, got: %d", cfg.NotifyQueueSize))
	}

	if cfg.KafkaEnabled() && cfg.BookingEventsTopic == "" {
		errors = append(errors, "BookingEventsTopic cannot be empty when KAFKA_BROKERS is set")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"data_file", cfg.DataFile,
		"sqlite_path", cfg.SQLitePath,
		"postgres_dsn", redactURI(cfg.PostgresDSN),
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"static_dir", cfg.StaticDir,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"redis_enabled", cfg.RedisEnabled(),
		"backup_schedule", cfg.BackupSchedule,
		"backup_retention_days", cfg.BackupRetentionDays,
		"email_enabled", cfg.EmailEnabled(),
		"sms_enabled", cfg.SMSEnabled(),
		"kafka_enabled", cfg.KafkaEnabled(),
		"booking_events_topic", cfg.BookingEventsTopic,
		"notify_rate_per_sec", cfg.NotifyRatePerSec,
		"notify_queue_size", cfg.NotifyQueueSize,
	)
}

func redactURI(uri string) string {
	uri = credentialRegex.ReplaceAllString(uri, "${1}***:***@")
	return dsnPasswordRe.ReplaceAllString(uri, "password=***")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
