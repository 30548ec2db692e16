package models

import "time"

const (
	CrossPostStatusSuccess = "success"
	CrossPostStatusError   = "error"
)

// CrossPostLog records one delivery attempt to one platform. Append-only.
type CrossPostLog struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	ContentType  string    `gorm:"size:32;index" json:"contentType"`
	ContentID    string    `gorm:"size:36;index" json:"contentId"`
	Platform     string    `gorm:"size:32" json:"platform"`
	PostID       *string   `gorm:"size:128" json:"postId"`
	Status       string    `gorm:"size:32" json:"status"`
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}
