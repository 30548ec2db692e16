package models

import "time"

type DocumentFile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:500;index" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex" json:"slug"`
	Category  string    `gorm:"size:255;index" json:"category"`
	FileURL   string    `gorm:"size:2000" json:"fileUrl"`
	FilePath  string    `gorm:"size:1024" json:"filePath"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArchiveIssue is one digitized newspaper issue with its PDF in object storage.
type ArchiveIssue struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"size:500;index" json:"title"`
	Number     string    `gorm:"size:64" json:"number"`
	IssueDate  time.Time `gorm:"index" json:"issueDate"`
	PDFURL     string    `gorm:"size:2000" json:"pdfUrl"`
	PDFPath    string    `gorm:"size:1024" json:"pdfPath"`
	CoverImage string    `gorm:"size:2000" json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
