package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type AWSConfig struct {
	Region string
}

type S3Config struct {
	Bucket        string
	Endpoint      string // optional, for S3-compatible stores (MinIO)
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string // when set, download addresses are built from it instead of presigned
	PresignTTL    time.Duration
}

type DynamoDBConfig struct {
	RecordsTableName string
	OwnerIndexName   string
}

type RedisConfig struct {
	HOST     string
	Password string
	DB       int
}

type CorsConfig struct {
	Origins string
}

type JWTConfig struct {
	SecretKey string
}

type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

type ListingConfig struct {
	RootPrefix         string // "{user_id}" is replaced with the caller's id
	ReservedFolder     string
	DetectedFolder     string
	ResolveConcurrency int
}

type GRPCConfig struct {
	HealthAddr string
}

// AdminConfig lists the user ids allowed on diagnostic routes.
type AdminConfig struct {
	UserIDs []string
}

// BrowseConfig controls eviction of abandoned browse sessions.
type BrowseConfig struct {
	SessionIdleTTL time.Duration
	SweepInterval  time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	Env         string
	GatewayAddr string
	Tracing     bool

	AWSConfig      *AWSConfig
	S3Config       *S3Config
	DynamoDBConfig *DynamoDBConfig
	RedisConfig    *RedisConfig
	CorsConfig     *CorsConfig
	JWTConfig      *JWTConfig
	BreakerConfig  *BreakerConfig
	ListingConfig  *ListingConfig
	GRPCConfig     *GRPCConfig
	RateLimit      *RateLimitConfig
	AdminConfig    *AdminConfig
	BrowseConfig   *BrowseConfig

	MaxUploadSize int64
}

func LoadConfig() Config {
	return Config{
		Env:         envOr("ENV", "DEV"),
		GatewayAddr: envOr("GATEWAY_ADDR", ":8080"),
		Tracing:     envBool("TRACING", false),

		AWSConfig: &AWSConfig{
			Region: envOr("AWS_REGION", "eu-central-1"),
		},
		S3Config: &S3Config{
			Bucket:        envOr("S3_BUCKET", ""),
			Endpoint:      envOr("S3_ENDPOINT", ""),
			AccessKey:     envOr("S3_ACCESS_KEY", ""),
			SecretKey:     envOr("S3_SECRET_KEY", ""),
			UsePathStyle:  envBool("S3_USE_PATH_STYLE", false),
			PublicBaseURL: envOr("S3_PUBLIC_BASE_URL", ""),
			PresignTTL:    envDuration("S3_PRESIGN_TTL", time.Hour),
		},
		DynamoDBConfig: &DynamoDBConfig{
			RecordsTableName: envOr("DYNAMODB_RECORDS_TABLE", "detected_objects"),
			OwnerIndexName:   envOr("DYNAMODB_OWNER_INDEX", "owner_id-timestamp-index"),
		},
		RedisConfig: &RedisConfig{
			HOST:     envOr("REDIS_HOST", "localhost:6379"),
			Password: envOr("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},
		CorsConfig: &CorsConfig{
			Origins: envOr("CORS_ORIGINS", "http://localhost:3000"),
		},
		JWTConfig: &JWTConfig{
			SecretKey: envOr("JWT_SECRET_KEY", ""),
		},
		BreakerConfig: &BreakerConfig{
			MaxRequests:         uint32(envInt("BREAKER_MAX_REQUESTS", 5)),
			Interval:            envDuration("BREAKER_INTERVAL", 30*time.Second),
			Timeout:             envDuration("BREAKER_TIMEOUT", 10*time.Second),
			ConsecutiveFailures: uint32(envInt("BREAKER_CONSECUTIVE_FAILURES", 5)),
		},
		ListingConfig: &ListingConfig{
			RootPrefix:         envOr("LISTING_ROOT_PREFIX", "users/{user_id}/"),
			ReservedFolder:     envOr("LISTING_RESERVED_FOLDER", "objects"),
			DetectedFolder:     envOr("LISTING_DETECTED_FOLDER", "detected_matches"),
			ResolveConcurrency: envInt("LISTING_RESOLVE_CONCURRENCY", 8),
		},
		GRPCConfig: &GRPCConfig{
			HealthAddr: envOr("GRPC_HEALTH_ADDR", ""),
		},
		RateLimit: &RateLimitConfig{
			Limit:  envInt("RATE_LIMIT", 100),
			Window: envDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		AdminConfig: &AdminConfig{
			UserIDs: envList("ADMIN_USER_IDS"),
		},
		BrowseConfig: &BrowseConfig{
			SessionIdleTTL: envDuration("BROWSE_SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval:  envDuration("BROWSE_SWEEP_INTERVAL", time.Minute),
		},

		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 32<<20),
	}
}

func (c Config) ValidateAllSecrets() error {
	var errs []error

	if c.JWTConfig == nil || c.JWTConfig.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.S3Config == nil || c.S3Config.Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required"))
	}
	if c.DynamoDBConfig == nil || c.DynamoDBConfig.RecordsTableName == "" {
		errs = append(errs, errors.New("DYNAMODB_RECORDS_TABLE is required"))
	}
	if c.S3Config != nil && (c.S3Config.AccessKey == "") != (c.S3Config.SecretKey == "") {
		errs = append(errs, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must be set together"))
	}
	if c.ListingConfig != nil && !strings.Contains(c.ListingConfig.RootPrefix, "{user_id}") {
		errs = append(errs, fmt.Errorf("LISTING_ROOT_PREFIX %q must contain {user_id}", c.ListingConfig.RootPrefix))
	}

	return errors.Join(errs...)
}

func (c Config) IsProd() bool {
	return c.Env == "PROD"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
