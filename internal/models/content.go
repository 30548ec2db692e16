package models

import (
	"time"

	"gorm.io/datatypes"
)

type News struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"size:500;index" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex" json:"slug"`
	Lead        string         `gorm:"type:text" json:"lead"`
	Content     string         `gorm:"type:longtext" json:"content"`
	CoverImage  string         `gorm:"size:2000" json:"coverImage"`
	ImagesJSON  datatypes.JSON `gorm:"type:json" json:"images"`
	TagsJSON    datatypes.JSON `gorm:"type:json" json:"tags"`
	RubricPath  string         `gorm:"size:512;index" json:"rubricPath"`
	SourceURL   string         `gorm:"size:2000" json:"sourceUrl"`
	Status      string         `gorm:"size:32;default:published" json:"status"`
	PublishedAt *time.Time     `json:"publishedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (News) TableName() string { return "news" }

type BlogPost struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"size:500;index" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex" json:"slug"`
	Lead        string         `gorm:"type:text" json:"lead"`
	Content     string         `gorm:"type:longtext" json:"content"`
	CoverImage  string         `gorm:"size:2000" json:"coverImage"`
	ImagesJSON  datatypes.JSON `gorm:"type:json" json:"images"`
	AuthorName  string         `gorm:"size:255" json:"authorName"`
	Status      string         `gorm:"size:32;default:published" json:"status"`
	PublishedAt *time.Time     `json:"publishedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
