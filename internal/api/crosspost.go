package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gigportal/internal/social"
)

type CrossPostRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
}

func (s *Server) crossPost(c *gin.Context) {
	var req CrossPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if req.ContentType == "" || req.ContentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "content_type and content_id required"})
		return
	}

	results, err := s.Poster.Post(c.Request.Context(), req.ContentType, req.ContentID)
	if err != nil {
		if errors.Is(err, social.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "content not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "no platforms configured"})
		return
	}

	success := true
	for _, r := range results {
		if !r.Success {
			success = false
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": success, "results": results})
}
