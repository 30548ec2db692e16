package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr    string
	SiteURL string

	MySQLDSN string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOSecure    bool
	MinIOBucket    string
	MinIOPublicURL string

	JWTSecret string

	ScrapeTimeout time.Duration
	ScrapeMinText int

	MigrateBatchSize int
	MigrateDelay     time.Duration

	VKAccessToken string
	VKGroupID     string
	TGBotToken    string
	TGChatID      string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:    getenv("ADDR", ":8080"),
		SiteURL: getenv("SITE_URL", "https://gig26.ru"),

		MySQLDSN: getenv("MYSQL_DSN", "gigportal:gigportal@tcp(127.0.0.1:3306)/gigportal?charset=utf8mb4&parseTime=True&loc=Local"),

		MinIOEndpoint:  getenv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinIOAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOSecure:    getenvBool("MINIO_SECURE", false),
		MinIOBucket:    getenv("MINIO_BUCKET", "gigportal"),
		MinIOPublicURL: getenv("MINIO_PUBLIC_URL", ""),

		JWTSecret: getenv("JWT_SECRET", ""),

		ScrapeTimeout: time.Duration(getenvInt("SCRAPE_TIMEOUT_SECONDS", 20)) * time.Second,
		ScrapeMinText: getenvInt("SCRAPE_MIN_TEXT", 200),

		MigrateBatchSize: getenvInt("MIGRATE_BATCH_SIZE", 5),
		MigrateDelay:     time.Duration(getenvInt("MIGRATE_DELAY_MS", 500)) * time.Millisecond,

		VKAccessToken: getenv("VK_ACCESS_TOKEN", ""),
		VKGroupID:     getenv("VK_GROUP_ID", ""),
		TGBotToken:    getenv("TG_BOT_TOKEN", ""),
		TGChatID:      getenv("TG_CHAT_ID", ""),

		LLMBaseURL: getenv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  getenv("LLM_API_KEY", ""),
		LLMModel:   getenv("LLM_MODEL", ""),
		LLMTimeout: time.Duration(getenvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
