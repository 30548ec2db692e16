package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ScrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) scrapeArticle(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "url required"})
		return
	}

	result, err := s.Scraper.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
