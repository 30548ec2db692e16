package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gigportal/internal/models"
)

func (s *Server) listDocuments(c *gin.Context) {
	var items []models.DocumentFile
	db := s.DB
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Order("created_at desc").Limit(200).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": items})
}

func (s *Server) listArchive(c *gin.Context) {
	var items []models.ArchiveIssue
	db := s.DB
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		db = db.Where("issue_date >= ? AND issue_date < ?",
			yearStart(year), yearStart(year+1))
	}
	if err := db.Order("issue_date desc").Limit(200).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": items})
}

func yearStart(year int) string {
	return strconv.Itoa(year) + "-01-01"
}
