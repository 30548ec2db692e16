package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigportal/internal/ai"
	"gigportal/internal/auth"
	"gigportal/internal/content"
	"gigportal/internal/importer"
	"gigportal/internal/migrate"
	"gigportal/internal/models"
	"gigportal/internal/scraper"
	"gigportal/internal/social"
	"gigportal/internal/storage"
	"gigportal/internal/suggest"
)

type Server struct {
	DB        *gorm.DB
	Store     *storage.MinioStore
	Scraper   *scraper.Scraper
	Importer  *importer.Importer
	Migrator  *migrate.Runner
	Poster    *social.CrossPoster
	Auth      *auth.Verifier
	LLM       *ai.Client
	Suggester *suggest.Pipeline

	migrateMu     sync.Mutex
	migrateStatus MigrationStatus
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.POST("/content/segments", s.renderSegments)
	api.POST("/content/videos", s.parseVideos)
	api.GET("/news", s.listNews)
	api.GET("/news/:id", s.getNews)
	api.GET("/galleries", s.listGalleries)
	api.GET("/galleries/:id", s.getGallery)
	api.GET("/documents", s.listDocuments)
	api.GET("/archive", s.listArchive)
	api.GET("/rubrics", s.getRubrics)
	api.GET("/rubrics/:id", s.getRubricNode)
	api.GET("/files/*path", s.getFile)

	editor := api.Group("", s.Auth.RequireRole(auth.RoleAdmin, auth.RoleEditor, auth.RoleDeveloper))
	editor.POST("/news", s.createNews)
	editor.POST("/scrape", s.scrapeArticle)
	editor.POST("/crosspost", s.crossPost)
	editor.POST("/news/:id/suggest", s.suggestRubric)

	admin := api.Group("", s.Auth.RequireRole(auth.RoleAdmin, auth.RoleDeveloper))
	admin.POST("/import/news", s.importNews)
	admin.POST("/import/documents", s.importDocuments)
	admin.POST("/import/galleries", s.importGalleries)
	admin.POST("/import/archive", s.importArchive)
	admin.POST("/migrate/start", s.startMigration)
	admin.GET("/migrate/status", s.migrationStatus)
	admin.POST("/ai/config", s.updateAIConfig)
	admin.POST("/social/config", s.updateSocialConfig)
}

type CreateNewsRequest struct {
	Title       string     `json:"title"`
	Lead        string     `json:"lead"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage"`
	Images      []string   `json:"images"`
	Tags        []string   `json:"tags"`
	RubricPath  string     `json:"rubricPath"`
	SourceURL   string     `json:"sourceUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type NewsResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Lead        string            `json:"lead"`
	CoverImage  string            `json:"coverImage"`
	Images      []string          `json:"images"`
	Tags        []string          `json:"tags"`
	RubricPath  string            `json:"rubricPath"`
	SourceURL   string            `json:"sourceUrl"`
	Status      string            `json:"status"`
	Segments    []content.Segment `json:"segments,omitempty"`
	PublishedAt *time.Time        `json:"publishedAt"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toNewsResponse(item models.News, withContent bool) NewsResponse {
	resp := NewsResponse{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Lead:        item.Lead,
		CoverImage:  item.CoverImage,
		Images:      decodeStrings(item.ImagesJSON),
		Tags:        decodeStrings(item.TagsJSON),
		RubricPath:  item.RubricPath,
		SourceURL:   item.SourceURL,
		Status:      item.Status,
		PublishedAt: item.PublishedAt,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if withContent {
		resp.Segments = content.RenderSegments(item.Content)
	}
	return resp
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func (s *Server) createNews(c *gin.Context) {
	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	imagesJSON, _ := json.Marshal(orEmpty(req.Images))
	tagsJSON, _ := json.Marshal(orEmpty(req.Tags))
	row := models.News{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Slug:        importer.UniqueSlug(req.Title, time.Now()),
		Lead:        req.Lead,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		ImagesJSON:  imagesJSON,
		TagsJSON:    tagsJSON,
		RubricPath:  req.RubricPath,
		SourceURL:   req.SourceURL,
		PublishedAt: req.PublishedAt,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
		return
	}
	if req.RubricPath != "" {
		_, _ = s.ensureRubricPath(splitPath(req.RubricPath))
	}
	c.JSON(http.StatusOK, toNewsResponse(row, false))
}

func (s *Server) listNews(c *gin.Context) {
	var items []models.News
	query := c.Query("q")
	rubric := c.Query("rubric")

	db := s.DB
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("title LIKE ? OR lead LIKE ?", like, like)
	}
	if rubric != "" {
		db = db.Where("rubric_path = ? OR rubric_path LIKE ?", rubric, rubric+"/%")
	}

	if err := db.Order("created_at desc").Limit(100).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	resp := make([]NewsResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toNewsResponse(item, false))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getNews(c *gin.Context) {
	var item models.News
	if err := s.DB.First(&item, "id = ? OR slug = ?", c.Param("id"), c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	c.JSON(http.StatusOK, toNewsResponse(item, true))
}

type GalleryResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	Images      []string             `json:"images"`
	Videos      []content.VideoEmbed `json:"videos"`
	CreatedAt   time.Time            `json:"createdAt"`
}

func toGalleryResponse(item models.Gallery) GalleryResponse {
	return GalleryResponse{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Description: item.Description,
		Images:      decodeStrings(item.ImagesJSON),
		Videos:      content.PlayableVideos(decodeStrings(item.VideosJSON)),
		CreatedAt:   item.CreatedAt,
	}
}

func (s *Server) listGalleries(c *gin.Context) {
	var items []models.Gallery
	if err := s.DB.Order("created_at desc").Limit(100).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	resp := make([]GalleryResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toGalleryResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getGallery(c *gin.Context) {
	var item models.Gallery
	if err := s.DB.First(&item, "id = ? OR slug = ?", c.Param("id"), c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return
	}
	c.JSON(http.StatusOK, toGalleryResponse(item))
}

func (s *Server) getFile(c *gin.Context) {
	p := c.Param("path")
	if len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	obj, err := s.Store.Get(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if stat.ContentType != "" {
		c.Header("Content-Type", stat.ContentType)
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, obj)
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
