package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gigportal/internal/migrate"
)

// MigrationStatus reports the state of the background migration job.
// A started run always executes to completion; there is no cancellation.
type MigrationStatus struct {
	Running    bool       `json:"running"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	ListURL    string     `json:"list_url,omitempty"`
	Discovered int        `json:"discovered"`
	Inserted   int        `json:"inserted"`
	Skipped    int        `json:"skipped"`
	Errors     []string   `json:"errors,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
}

func (s *Server) startMigration(c *gin.Context) {
	var req migrate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	if strings.TrimSpace(req.ListURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "list_url required"})
		return
	}

	s.migrateMu.Lock()
	if s.migrateStatus.Running {
		status := s.migrateStatus
		s.migrateMu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "migration already running", "status": status})
		return
	}
	now := time.Now()
	s.migrateStatus = MigrationStatus{Running: true, StartedAt: &now, ListURL: req.ListURL}
	s.migrateMu.Unlock()

	go s.runMigration(req)

	c.JSON(http.StatusAccepted, gin.H{"success": true, "status": gin.H{"running": true, "list_url": req.ListURL}})
}

func (s *Server) runMigration(req migrate.Request) {
	log.Printf("migration started: %s (pattern=%q limit=%d)", req.ListURL, req.LinkPattern, req.Limit)

	result, err := s.Migrator.Run(context.Background(), req)

	s.migrateMu.Lock()
	defer s.migrateMu.Unlock()

	now := time.Now()
	s.migrateStatus.Running = false
	s.migrateStatus.FinishedAt = &now
	if err != nil {
		s.migrateStatus.LastError = err.Error()
		log.Printf("migration failed: %v", err)
		return
	}
	s.migrateStatus.Discovered = result.Discovered
	s.migrateStatus.Inserted = result.Inserted
	s.migrateStatus.Skipped = result.Skipped
	s.migrateStatus.Errors = result.Errors
	if req.RubricPath != "" {
		_, _ = s.ensureRubricPath(splitPath(req.RubricPath))
	}
	log.Printf("migration finished: discovered=%d inserted=%d skipped=%d errors=%d",
		result.Discovered, result.Inserted, result.Skipped, len(result.Errors))
}

func (s *Server) migrationStatus(c *gin.Context) {
	s.migrateMu.Lock()
	status := s.migrateStatus
	s.migrateMu.Unlock()
	c.JSON(http.StatusOK, status)
}
