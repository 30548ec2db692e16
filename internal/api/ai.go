package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gigportal/internal/ai"
	"gigportal/internal/models"
	"gigportal/internal/settings"
	"gigportal/internal/social"
	"gigportal/internal/suggest"
)

const llmRequestTimeout = 90 * time.Second

type AIConfigRequest struct {
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
	Model   string `json:"model"`
}

func (s *Server) updateAIConfig(c *gin.Context) {
	var req AIConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if req.BaseURL == "" || req.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "baseUrl and model required"})
		return
	}

	cfg := settings.LLMSettings{BaseURL: req.BaseURL, APIKey: req.APIKey, Model: req.Model}
	if err := settings.SaveLLM(s.DB, cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist config"})
		return
	}
	s.LLM = ai.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model, llmRequestTimeout)

	c.JSON(http.StatusOK, gin.H{"success": true, "model": req.Model})
}

type SocialConfigRequest struct {
	VKAccessToken string `json:"vkAccessToken"`
	VKGroupID     string `json:"vkGroupId"`
	TGBotToken    string `json:"tgBotToken"`
	TGChatID      string `json:"tgChatId"`
}

func (s *Server) updateSocialConfig(c *gin.Context) {
	var req SocialConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	cfg := settings.SocialSettings{
		VKAccessToken: req.VKAccessToken,
		VKGroupID:     req.VKGroupID,
		TGBotToken:    req.TGBotToken,
		TGChatID:      req.TGChatID,
	}
	if err := settings.SaveSocial(s.DB, cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist config"})
		return
	}

	if cfg.VKAccessToken != "" && cfg.VKGroupID != "" {
		s.Poster.VK = social.NewVKClient(cfg.VKAccessToken, cfg.VKGroupID, 30*time.Second)
	} else {
		s.Poster.VK = nil
	}
	if cfg.TGBotToken != "" && cfg.TGChatID != "" {
		s.Poster.Telegram = social.NewTelegramClient(cfg.TGBotToken, cfg.TGChatID, 30*time.Second)
	} else {
		s.Poster.Telegram = nil
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) suggestRubric(c *gin.Context) {
	if s.LLM == nil || !s.LLM.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "llm not configured"})
		return
	}

	var item models.News
	if err := s.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "db query failed"})
		return
	}

	var rubrics []models.Rubric
	if err := s.DB.Order("path asc").Find(&rubrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "db query failed"})
		return
	}
	paths := make([]string, 0, len(rubrics))
	for _, r := range rubrics {
		paths = append(paths, r.Path)
	}

	out, err := s.Suggester.Run(c.Request.Context(), suggest.Input{
		Article: item,
		Rubrics: paths,
		LLM:     s.LLM,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestion": out})
}
