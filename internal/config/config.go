package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa la configuración del servicio, leída desde env.
type Config struct {
	Port string

	// memory | sqlite | postgres
	StorageDriver string
	SQLitePath    string
	DatabaseDSN   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration
	// DevAuth=true habilita X-Debug-User-ID / X-Debug-Role (sin verifier).
	DevAuth bool

	Blob BlobConfig
	Push PushConfig

	PublicBaseURL string

	BootstrapAdminID       string
	BootstrapAdminPassword string

	LogLevel  string
	LogFormat string
	AppName   string
}

type BlobConfig struct {
	// memory | s3
	Driver          string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
	AccessKeyID     string
	SecretAccessKey string
}

type PushConfig struct {
	// log | gateway
	Driver     string
	GatewayURL string
	APIKey     string
	Timeout    time.Duration
}

// Load construye Config desde el entorno con defaults para desarrollo local.
func Load() Config {
	storage := strings.ToLower(getEnv("STORAGE_DRIVER", ""))
	dsn := os.Getenv("DB_DSN")
	if storage == "" {
		// Compatibilidad: si hay DSN y no se eligió driver, usamos postgres.
		if dsn != "" {
			storage = "postgres"
		} else {
			storage = "memory"
		}
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: storage,
		SQLitePath:    getEnv("SQLITE_PATH", "data/guidedog.db"),
		DatabaseDSN:   dsn,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		JWTTTL:    getEnvDuration("JWT_TTL", 12*time.Hour),
		DevAuth:   getEnvBool("DEV_AUTH", false),

		Blob: BlobConfig{
			Driver:          strings.ToLower(getEnv("BLOB_DRIVER", "memory")),
			S3Bucket:        os.Getenv("BLOB_S3_BUCKET"),
			S3Region:        getEnv("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:      os.Getenv("BLOB_S3_ENDPOINT"),
			S3PathStyle:     getEnvBool("BLOB_S3_PATH_STYLE", false),
			AccessKeyID:     os.Getenv("BLOB_S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("BLOB_S3_SECRET_ACCESS_KEY"),
		},

		Push: PushConfig{
			Driver:     strings.ToLower(getEnv("PUSH_DRIVER", "log")),
			GatewayURL: os.Getenv("PUSH_GATEWAY_URL"),
			APIKey:     os.Getenv("PUSH_API_KEY"),
			Timeout:    getEnvDuration("PUSH_TIMEOUT", 5*time.Second),
		},

		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		BootstrapAdminID:       os.Getenv("BOOTSTRAP_ADMIN_ID"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		AppName:   getEnv("APP_NAME", "guidedog-records"),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
