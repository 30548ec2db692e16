package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigportal/internal/models"
	"gigportal/internal/storage"
)

// Importer bulk-loads content rows from externally supplied or scraped data.
// Loads are idempotent by exact title: rerunning against already-imported
// titles counts them as skipped. Each row insert is independent; partial
// completion on error is reported, not rolled back.
type Importer struct {
	DB        *gorm.DB
	Store     *storage.MinioStore
	Client    *http.Client
	BatchSize int
	Delay     time.Duration
}

func New(db *gorm.DB, store *storage.MinioStore, timeout time.Duration, batchSize int, delay time.Duration) *Importer {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Importer{
		DB:        db,
		Store:     store,
		Client:    &http.Client{Timeout: timeout},
		BatchSize: batchSize,
		Delay:     delay,
	}
}

type Report struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

func (r *Report) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

type NewsEntry struct {
	Title       string     `json:"title"`
	Lead        string     `json:"lead"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	Images      []string   `json:"gallery_images"`
	RubricPath  string     `json:"rubric_path"`
	SourceURL   string     `json:"source_url"`
	PublishedAt *time.Time `json:"published_at"`
}

type DocumentEntry struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	FileURL  string `json:"file_url"`
}

type GalleryEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Videos      []string `json:"videos"`
}

type ArchiveEntry struct {
	Title      string `json:"title"`
	Number     string `json:"number"`
	Date       string `json:"date"`
	Year       int    `json:"year"`
	PDFURL     string `json:"pdf_url"`
	CoverImage string `json:"cover_image"`
}

func (im *Importer) titleExists(model any, title string) (bool, error) {
	var n int64
	if err := im.DB.Model(model).Where("title = ?", title).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (im *Importer) ImportNews(ctx context.Context, entries []NewsEntry) Report {
	report := Report{Errors: []string{}}
	for _, e := range entries {
		if e.Title == "" {
			report.addError("news entry without title")
			continue
		}
		exists, err := im.titleExists(&models.News{}, e.Title)
		if err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		imagesJSON, _ := json.Marshal(nonNil(e.Images))
		row := models.News{
			ID:          uuid.New().String(),
			Title:       e.Title,
			Slug:        UniqueSlug(e.Title, time.Now()),
			Lead:        e.Lead,
			Content:     e.Content,
			CoverImage:  e.CoverImage,
			ImagesJSON:  imagesJSON,
			RubricPath:  e.RubricPath,
			SourceURL:   e.SourceURL,
			PublishedAt: e.PublishedAt,
		}
		if err := im.DB.WithContext(ctx).Create(&row).Error; err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		report.Inserted++
	}
	return report
}

func (im *Importer) ImportDocuments(ctx context.Context, entries []DocumentEntry) Report {
	report := Report{Errors: []string{}}
	for _, e := range entries {
		if e.Title == "" {
			report.addError("document entry without title")
			continue
		}
		exists, err := im.titleExists(&models.DocumentFile{}, e.Title)
		if err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		row := models.DocumentFile{
			ID:       uuid.New().String(),
			Title:    e.Title,
			Slug:     UniqueSlug(e.Title, time.Now()),
			Category: e.Category,
			FileURL:  e.FileURL,
		}
		if err := im.DB.WithContext(ctx).Create(&row).Error; err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		report.Inserted++
	}
	return report
}

func (im *Importer) ImportGalleries(ctx context.Context, entries []GalleryEntry) Report {
	report := Report{Errors: []string{}}
	for _, e := range entries {
		if e.Title == "" {
			report.addError("gallery entry without title")
			continue
		}
		exists, err := im.titleExists(&models.Gallery{}, e.Title)
		if err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		imagesJSON, _ := json.Marshal(nonNil(e.Images))
		videosJSON, _ := json.Marshal(nonNil(e.Videos))
		row := models.Gallery{
			ID:          uuid.New().String(),
			Title:       e.Title,
			Slug:        UniqueSlug(e.Title, time.Now()),
			Description: e.Description,
			ImagesJSON:  imagesJSON,
			VideosJSON:  videosJSON,
		}
		if err := im.DB.WithContext(ctx).Create(&row).Error; err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		report.Inserted++
	}
	return report
}

// ImportArchive loads newspaper issues. With reuploadPDFs set, each issue's
// PDF is pulled from the legacy host into object storage and the stored URL
// rewritten; fetches run sequentially in small batches with a delay in
// between, so the legacy host is not hammered and execution stays within
// platform limits. A failed re-upload keeps the original URL and is recorded
// as an error; the batch is never aborted by one item.
func (im *Importer) ImportArchive(ctx context.Context, entries []ArchiveEntry, reuploadPDFs bool) Report {
	report := Report{Errors: []string{}}
	processed := 0
	for _, e := range entries {
		if e.Title == "" {
			report.addError("archive entry without title")
			continue
		}
		exists, err := im.titleExists(&models.ArchiveIssue{}, e.Title)
		if err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		issueDate := ParseIssueDate(e.Date, e.Year)
		pdfURL := e.PDFURL
		pdfPath := ""
		if reuploadPDFs && im.Store != nil && e.PDFURL != "" {
			storedPath, err := im.reuploadPDF(ctx, issueDate.Year(), e.PDFURL)
			if err != nil {
				report.addError("%q: pdf re-upload: %v", e.Title, err)
			} else {
				pdfPath = storedPath
				pdfURL = im.Store.ObjectURL(storedPath)
			}
			processed++
			if im.Delay > 0 && processed%im.BatchSize == 0 {
				time.Sleep(im.Delay)
			}
		}

		row := models.ArchiveIssue{
			ID:         uuid.New().String(),
			Title:      e.Title,
			Number:     e.Number,
			IssueDate:  issueDate,
			PDFURL:     pdfURL,
			PDFPath:    pdfPath,
			CoverImage: e.CoverImage,
		}
		if err := im.DB.WithContext(ctx).Create(&row).Error; err != nil {
			report.addError("%q: %v", e.Title, err)
			continue
		}
		report.Inserted++
	}
	return report
}

func (im *Importer) reuploadPDF(ctx context.Context, year int, pdfURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "gigportal-migrator/1.0")

	resp, err := im.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 100<<20))
	if err != nil {
		return "", err
	}

	name := path.Base(resp.Request.URL.Path)
	if path.Ext(name) != ".pdf" {
		name = uuid.New().String() + ".pdf"
	}
	objectPath := path.Join(storage.ArchivePrefix(year), name)
	if err := im.Store.PutBytes(ctx, objectPath, body, "application/pdf"); err != nil {
		return "", err
	}
	return objectPath, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
