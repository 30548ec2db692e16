package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gallery struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"size:500;index" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImagesJSON  datatypes.JSON `gorm:"type:json" json:"images"`
	VideosJSON  datatypes.JSON `gorm:"type:json" json:"videos"`
	CoverIndex  int            `gorm:"default:0" json:"coverIndex"`
	Status      string         `gorm:"size:32;default:published" json:"status"`
	PublishedAt *time.Time     `json:"publishedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
