package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string

	S3Bucket     string
	S3Prefix     string
	AWSRegion    string
	S3Endpoint   string
	AWSAccessKey string
	AWSSecretKey string

	SnapshotTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DashboardTitle string
	DashboardIcon  string
	DashboardTheme string

	DevAccessToken string

	StaticDir string
	IndexHTML string

	LogLevel string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3Prefix:     getEnv("S3_PREFIX", ""),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		AWSAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		SnapshotTTL: getEnvDuration("SNAPSHOT_TTL", time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DashboardTitle: getEnv("DASHBOARD_TITLE", "Question Insights"),
		DashboardIcon:  getEnv("DASHBOARD_ICON", ""),
		DashboardTheme: getEnv("DASHBOARD_THEME", "light"),

		DevAccessToken: getEnv("DEV_ACCESS_TOKEN", ""),

		StaticDir: getEnv("STATIC_DIR", "./static"),
		IndexHTML: getEnv("INDEX_HTML", "./static/index.html"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
