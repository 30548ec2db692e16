package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigportal/internal/importer"
)

func reportJSON(c *gin.Context, report importer.Report) {
	c.JSON(http.StatusOK, gin.H{
		"success":  len(report.Errors) == 0,
		"inserted": report.Inserted,
		"skipped":  report.Skipped,
		"errors":   report.Errors,
	})
}

func (s *Server) importNews(c *gin.Context) {
	var entries []importer.NewsEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	report := s.Importer.ImportNews(c.Request.Context(), entries)
	for _, e := range entries {
		if e.RubricPath != "" {
			_, _ = s.ensureRubricPath(splitPath(e.RubricPath))
		}
	}
	reportJSON(c, report)
}

func (s *Server) importDocuments(c *gin.Context) {
	var entries []importer.DocumentEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	reportJSON(c, s.Importer.ImportDocuments(c.Request.Context(), entries))
}

func (s *Server) importGalleries(c *gin.Context) {
	var entries []importer.GalleryEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	reportJSON(c, s.Importer.ImportGalleries(c.Request.Context(), entries))
}

type importArchiveRequest struct {
	Entries      []importer.ArchiveEntry `json:"entries"`
	ReuploadPDFs bool                    `json:"reupload_pdfs"`
}

func (s *Server) importArchive(c *gin.Context) {
	var req importArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	reportJSON(c, s.Importer.ImportArchive(c.Request.Context(), req.Entries, req.ReuploadPDFs))
}
