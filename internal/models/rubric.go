package models

import "time"

// Rubric is one node of the site's section tree (e.g. "Город/Официально").
type Rubric struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Label     string    `gorm:"size:255;index" json:"label"`
	ParentID  *string   `gorm:"size:36;index" json:"parentId"`
	Path      string    `gorm:"size:512;uniqueIndex" json:"path"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
