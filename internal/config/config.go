package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIUrl      string
	FrontendURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Media S3 - customer uploads (originals + derived renditions)
	MediaS3Endpoint        string
	MediaS3Region          string
	MediaS3AccessKeyID     string
	MediaS3SecretAccessKey string
	MediaS3UsePathStyle    bool
	MediaBucket            string

	// Uploads
	UploadPartURLTTL    time.Duration // pre-signed part PUT URLs
	UploadGetURLTTL     time.Duration // pre-signed playback GET URLs
	UploadMaxTotalSize  int64         // advisory cap checked at init time
	UploadReaperEnabled bool
	UploadReaperTTL     time.Duration // incomplete sessions older than this get aborted
	UploadReaperEvery   time.Duration

	// Transcoding
	TranscodeDefaultProfile string

	// Storage quota (bytes per plan tier; authoritative policy lives in billing)
	QuotaFreeBytes    int64
	QuotaStarterBytes int64
	QuotaProBytes     int64
	QuotaCacheTTL     time.Duration

	// Security
	RateLimitRequests       int
	RateLimitDuration       time.Duration
	UploadRateLimitRequests int
	UploadRateLimitWindow   time.Duration

	// Logging
	LogLevel    string
	LogFormat   string
	LogFilePath string

	// CORS
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIUrl:      getEnv("API_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "vouchly"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "vouchly_db"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		DBTimeZone: getEnv("DB_TIMEZONE", "UTC"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// Media S3
		MediaS3Endpoint:        getEnv("MEDIA_S3_ENDPOINT", ""),
		MediaS3Region:          getEnv("MEDIA_S3_REGION", "us-east-1"),
		MediaS3AccessKeyID:     getEnv("MEDIA_S3_ACCESS_KEY_ID", ""),
		MediaS3SecretAccessKey: getEnv("MEDIA_S3_SECRET_ACCESS_KEY", ""),
		MediaS3UsePathStyle:    getEnv("MEDIA_S3_USE_PATH_STYLE", "true") == "true",
		MediaBucket:            getEnv("MEDIA_BUCKET", "vouchly-media"),

		// Uploads
		UploadPartURLTTL:    getEnvAsDuration("UPLOAD_PART_URL_TTL", "15m"),
		UploadGetURLTTL:     getEnvAsDuration("UPLOAD_GET_URL_TTL", "1h"),
		UploadMaxTotalSize:  getEnvAsInt64("UPLOAD_MAX_TOTAL_SIZE", 2*1024*1024*1024),
		UploadReaperEnabled: getEnv("UPLOAD_REAPER_ENABLED", "true") == "true",
		UploadReaperTTL:     getEnvAsDuration("UPLOAD_REAPER_TTL", "24h"),
		UploadReaperEvery:   getEnvAsDuration("UPLOAD_REAPER_EVERY", "1h"),

		// Transcoding
		TranscodeDefaultProfile: getEnv("TRANSCODE_DEFAULT_PROFILE", "720p_h264_1Mbps"),

		// Storage quota
		QuotaFreeBytes:    getEnvAsInt64("QUOTA_FREE_BYTES", 1*1024*1024*1024),
		QuotaStarterBytes: getEnvAsInt64("QUOTA_STARTER_BYTES", 25*1024*1024*1024),
		QuotaProBytes:     getEnvAsInt64("QUOTA_PRO_BYTES", 250*1024*1024*1024),
		QuotaCacheTTL:     getEnvAsDuration("QUOTA_CACHE_TTL", "5m"),

		// Security
		RateLimitRequests:       getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration:       getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),
		UploadRateLimitRequests: getEnvAsInt("UPLOAD_RATE_LIMIT_REQUESTS", 30),
		UploadRateLimitWindow:   getEnvAsDuration("UPLOAD_RATE_LIMIT_WINDOW", "1h"),

		// Logging
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		LogFilePath: getEnv("LOG_FILE_PATH", ""),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods: getEnvAsSlice("ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: getEnvAsSlice("ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
	}
}

// QuotaBytesForPlan maps a billing plan tier to its storage limit.
// Unknown tiers fall back to the free tier limit.
func (c *Config) QuotaBytesForPlan(plan string) int64 {
	switch strings.ToLower(plan) {
	case "pro":
		return c.QuotaProBytes
	case "starter":
		return c.QuotaStarterBytes
	default:
		return c.QuotaFreeBytes
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
