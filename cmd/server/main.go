package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gigportal/internal/ai"
	"gigportal/internal/api"
	"gigportal/internal/auth"
	"gigportal/internal/config"
	"gigportal/internal/db"
	"gigportal/internal/importer"
	"gigportal/internal/migrate"
	"gigportal/internal/scraper"
	"gigportal/internal/settings"
	"gigportal/internal/social"
	"gigportal/internal/storage"
	"gigportal/internal/suggest"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	gdb, err := db.Connect(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	store, err := storage.NewMinioStore(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOSecure, cfg.MinIOBucket, cfg.MinIOPublicURL)
	if err != nil {
		log.Fatalf("minio connect failed: %v", err)
	}

	sc := scraper.New(cfg.ScrapeTimeout, cfg.ScrapeMinText)
	im := importer.New(gdb, store, cfg.ScrapeTimeout, cfg.MigrateBatchSize, cfg.MigrateDelay)
	runner := migrate.NewRunner(sc, im, cfg.ScrapeTimeout, cfg.MigrateBatchSize, cfg.MigrateDelay)

	poster := &social.CrossPoster{DB: gdb, SiteURL: cfg.SiteURL}
	socialCfg, err := settings.LoadSocial(gdb)
	if err != nil {
		log.Printf("social settings load failed: %v", err)
	}
	vkToken := firstNonEmpty(socialCfg.VKAccessToken, cfg.VKAccessToken)
	vkGroup := firstNonEmpty(socialCfg.VKGroupID, cfg.VKGroupID)
	if vkToken != "" && vkGroup != "" {
		poster.VK = social.NewVKClient(vkToken, vkGroup, cfg.ScrapeTimeout)
	}
	tgToken := firstNonEmpty(socialCfg.TGBotToken, cfg.TGBotToken)
	tgChat := firstNonEmpty(socialCfg.TGChatID, cfg.TGChatID)
	if tgToken != "" && tgChat != "" {
		poster.Telegram = social.NewTelegramClient(tgToken, tgChat, cfg.ScrapeTimeout)
	}

	var llmClient *ai.Client
	llmCfg, err := settings.LoadLLM(gdb)
	if err != nil {
		log.Printf("llm settings load failed: %v", err)
	}
	baseURL := firstNonEmpty(llmCfg.BaseURL, cfg.LLMBaseURL)
	apiKey := firstNonEmpty(llmCfg.APIKey, cfg.LLMAPIKey)
	model := firstNonEmpty(llmCfg.Model, cfg.LLMModel)
	if model != "" {
		llmClient = ai.NewClient(baseURL, apiKey, model, cfg.LLMTimeout)
	}

	pipeline, err := suggest.NewPipeline()
	if err != nil {
		log.Fatalf("suggestion pipeline init failed: %v", err)
	}

	r := gin.Default()
	r.Use(corsMiddleware())

	srv := &api.Server{
		DB:        gdb,
		Store:     store,
		Scraper:   sc,
		Importer:  im,
		Migrator:  runner,
		Poster:    poster,
		Auth:      auth.NewVerifier(cfg.JWTSecret),
		LLM:       llmClient,
		Suggester: pipeline,
	}
	srv.RegisterRoutes(r)

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
