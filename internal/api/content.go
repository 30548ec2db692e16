package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigportal/internal/content"
)

type RenderRequest struct {
	HTML string `json:"html"`
}

// renderSegments splits raw article HTML into renderable segments,
// sanitizing the HTML parts and decoding embedded gallery markers.
func (s *Server) renderSegments(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": content.RenderSegments(req.HTML)})
}

type ParseVideosRequest struct {
	URLs []string `json:"urls"`
}

func (s *Server) parseVideos(c *gin.Context) {
	var req ParseVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": content.PlayableVideos(req.URLs)})
}
