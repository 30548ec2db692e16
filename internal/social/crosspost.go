package social

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigportal/internal/models"
)

const (
	ContentTypeNews    = "news"
	ContentTypeBlog    = "blog"
	ContentTypeGallery = "gallery"

	PlatformVK       = "vk"
	PlatformTelegram = "telegram"

	messageLeadLimit = 200
)

var ErrContentNotFound = errors.New("content not found")

type PlatformResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	PostID   string `json:"postId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CrossPoster formats a stored content row into a plain-text social message
// and delivers it to every configured platform. Platforms are tried
// sequentially and independently; one failure never blocks the other, and
// every attempt is appended to the cross-post log.
type CrossPoster struct {
	DB       *gorm.DB
	VK       *VKClient
	Telegram *TelegramClient
	SiteURL  string
}

type postTarget struct {
	Title string
	Lead  string
	Link  string
	Photo string
}

func (p *CrossPoster) Post(ctx context.Context, contentType, contentID string) ([]PlatformResult, error) {
	target, err := p.loadTarget(contentType, contentID)
	if err != nil {
		return nil, err
	}

	message := BuildMessage(target.Title, target.Lead, target.Link)
	results := []PlatformResult{}

	if p.VK.Enabled() {
		postID, err := p.VK.PostToWall(ctx, message, target.Photo)
		results = append(results, p.record(contentType, contentID, PlatformVK, postID, err))
	}
	if p.Telegram.Enabled() {
		postID, err := p.Telegram.SendPost(ctx, message, target.Photo)
		results = append(results, p.record(contentType, contentID, PlatformTelegram, postID, err))
	}
	return results, nil
}

func (p *CrossPoster) loadTarget(contentType, contentID string) (postTarget, error) {
	switch contentType {
	case ContentTypeNews:
		var row models.News
		if err := p.DB.First(&row, "id = ?", contentID).Error; err != nil {
			return postTarget{}, wrapNotFound(err)
		}
		return postTarget{
			Title: row.Title,
			Lead:  row.Lead,
			Link:  p.SiteURL + "/news/" + row.Slug,
			Photo: row.CoverImage,
		}, nil
	case ContentTypeBlog:
		var row models.BlogPost
		if err := p.DB.First(&row, "id = ?", contentID).Error; err != nil {
			return postTarget{}, wrapNotFound(err)
		}
		return postTarget{
			Title: row.Title,
			Lead:  row.Lead,
			Link:  p.SiteURL + "/blogs/" + row.Slug,
			Photo: row.CoverImage,
		}, nil
	case ContentTypeGallery:
		var row models.Gallery
		if err := p.DB.First(&row, "id = ?", contentID).Error; err != nil {
			return postTarget{}, wrapNotFound(err)
		}
		return postTarget{
			Title: row.Title,
			Lead:  row.Description,
			Link:  p.SiteURL + "/galleries/" + row.Slug,
		}, nil
	default:
		return postTarget{}, fmt.Errorf("unknown content type: %q", contentType)
	}
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContentNotFound
	}
	return err
}

func (p *CrossPoster) record(contentType, contentID, platform, postID string, err error) PlatformResult {
	row := models.CrossPostLog{
		ID:          uuid.New().String(),
		ContentType: contentType,
		ContentID:   contentID,
		Platform:    platform,
	}
	result := PlatformResult{Platform: platform}

	if err != nil {
		row.Status = models.CrossPostStatusError
		row.ErrorMessage = err.Error()
		result.Error = err.Error()
	} else {
		row.Status = models.CrossPostStatusSuccess
		row.PostID = &postID
		result.Success = true
		result.PostID = postID
	}

	if dbErr := p.DB.Create(&row).Error; dbErr != nil {
		log.Printf("crosspost: log write failed: %v", dbErr)
	}
	return result
}

// BuildMessage assembles the plain-text social message: title, truncated
// lead, canonical link, separated by blank lines.
func BuildMessage(title, lead, link string) string {
	parts := []string{strings.TrimSpace(title)}
	if lead = truncateWords(strings.TrimSpace(lead), messageLeadLimit); lead != "" {
		parts = append(parts, lead)
	}
	if link != "" {
		parts = append(parts, link)
	}
	return strings.Join(parts, "\n\n")
}

func truncateWords(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > limit/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
