package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend names selectable at startup. The set is closed: anything else
// is a configuration error.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamo   = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Backend selection per store. Users: memory | postgres | dynamo.
	// Banned tokens and 2FA codes: memory | dynamo.
	UserStoreBackend  string
	TokenStoreBackend string
	TwoFAStoreBackend string

	JWTSecret string
	JWTTTL    time.Duration
	TwoFATTL  time.Duration

	PostgresDSN string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	HashWorkers       int
	Argon2Memory      int // KiB
	Argon2Iterations  int
	Argon2Parallelism int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each store.
type DynamoTables struct {
	Users        string
	BannedTokens string
	TwoFACodes   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		UserStoreBackend:  getEnv("USER_STORE", BackendMemory),
		TokenStoreBackend: getEnv("TOKEN_STORE", BackendMemory),
		TwoFAStoreBackend: getEnv("TWOFA_STORE", BackendMemory),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_SECONDS", 600)) * time.Second,
		TwoFATTL:  time.Duration(getEnvInt("TWOFA_TTL_SECONDS", 600)) * time.Second,

		PostgresDSN: getEnv("DATABASE_URL", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:        getEnv("DYNAMO_TABLE_USERS", "users"),
			BannedTokens: getEnv("DYNAMO_TABLE_BANNED_TOKENS", "banned_tokens"),
			TwoFACodes:   getEnv("DYNAMO_TABLE_TWOFA_CODES", "twofa_codes"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		HashWorkers:       getEnvInt("HASH_WORKERS", 4),
		Argon2Memory:      getEnvInt("ARGON2_MEMORY_KIB", 64*1024),
		Argon2Iterations:  getEnvInt("ARGON2_ITERATIONS", 3),
		Argon2Parallelism: getEnvInt("ARGON2_PARALLELISM", 2),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
