package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigportal/internal/models"
)

type RubricNode struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Path     string        `json:"path"`
	Level    int           `json:"level"`
	Children []*RubricNode `json:"children"`
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ensureRubricPath creates any missing nodes along a "Город/Официально"
// style path and returns the leaf node.
func (s *Server) ensureRubricPath(labels []string) (*models.Rubric, error) {
	if len(labels) == 0 {
		return nil, errors.New("empty rubric path")
	}

	var parent *models.Rubric
	for level, label := range labels {
		path := strings.Join(labels[:level+1], "/")

		var node models.Rubric
		err := s.DB.Where("path = ?", path).First(&node).Error
		if err == nil {
			parent = &node
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		node = models.Rubric{
			ID:    uuid.New().String(),
			Label: label,
			Path:  path,
			Level: level,
		}
		if parent != nil {
			id := parent.ID
			node.ParentID = &id
		}
		if err := s.DB.Create(&node).Error; err != nil {
			// Concurrent creation of the same path loses the unique-index
			// race; re-read instead of failing the whole import.
			if rerr := s.DB.Where("path = ?", path).First(&node).Error; rerr != nil {
				return nil, err
			}
		}
		parent = &node
	}
	return parent, nil
}

func buildRubricTree(rows []models.Rubric) []*RubricNode {
	byID := make(map[string]*RubricNode, len(rows))
	for _, r := range rows {
		byID[r.ID] = &RubricNode{
			ID:       r.ID,
			Label:    r.Label,
			Path:     r.Path,
			Level:    r.Level,
			Children: []*RubricNode{},
		}
	}

	roots := []*RubricNode{}
	for _, r := range rows {
		node := byID[r.ID]
		if r.ParentID != nil {
			if parent, ok := byID[*r.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *Server) getRubrics(c *gin.Context) {
	var rows []models.Rubric
	if err := s.DB.Order("level asc, label asc").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rubrics": buildRubricTree(rows)})
}

func (s *Server) getRubricNode(c *gin.Context) {
	var node models.Rubric
	if err := s.DB.First(&node, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}

	var children []models.Rubric
	if err := s.DB.Where("parent_id = ?", node.ID).Order("label asc").Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}

	var news []models.News
	if err := s.DB.Where("rubric_path = ? OR rubric_path LIKE ?", node.Path, node.Path+"/%").
		Order("created_at desc").Limit(50).Find(&news).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	newsResp := make([]NewsResponse, 0, len(news))
	for _, item := range news {
		newsResp = append(newsResp, toNewsResponse(item, false))
	}

	c.JSON(http.StatusOK, gin.H{"rubric": node, "children": children, "news": newsResp})
}
