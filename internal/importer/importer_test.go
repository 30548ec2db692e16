package importer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gigportal/internal/models"
)

func testImporter(t *testing.T) *Importer {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.News{},
		&models.Gallery{},
		&models.DocumentFile{},
		&models.ArchiveIssue{},
	))
	return New(gdb, nil, 5*time.Second, 5, 0)
}

func TestImportNews_IdempotentByTitle(t *testing.T) {
	im := testImporter(t)
	entries := []NewsEntry{{Title: "Город отметил юбилей", Lead: "лид", Content: "<p>текст</p>"}}

	first := im.ImportNews(context.Background(), entries)
	assert.Equal(t, 1, first.Inserted)
	assert.Equal(t, 0, first.Skipped)
	assert.Empty(t, first.Errors)

	second := im.ImportNews(context.Background(), entries)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, second.Skipped)

	var n int64
	require.NoError(t, im.DB.Model(&models.News{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestImportNews_MissingTitleRecorded(t *testing.T) {
	im := testImporter(t)

	report := im.ImportNews(context.Background(), []NewsEntry{
		{Title: ""},
		{Title: "Нормальная новость"},
	})
	assert.Equal(t, 1, report.Inserted)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "without title")
}

func TestImportNews_SlugGenerated(t *testing.T) {
	im := testImporter(t)

	report := im.ImportNews(context.Background(), []NewsEntry{{Title: "Новости города"}})
	require.Equal(t, 1, report.Inserted)

	var row models.News
	require.NoError(t, im.DB.First(&row).Error)
	assert.Regexp(t, `^novosti-goroda-\d+$`, row.Slug)
}

func TestImportGalleries_StoresArrays(t *testing.T) {
	im := testImporter(t)

	report := im.ImportGalleries(context.Background(), []GalleryEntry{{
		Title:  "Фоторепортаж",
		Images: []string{"/a.jpg", "/b.jpg"},
		Videos: []string{"https://youtu.be/abc123"},
	}})
	require.Equal(t, 1, report.Inserted)

	var row models.Gallery
	require.NoError(t, im.DB.First(&row).Error)
	assert.JSONEq(t, `["/a.jpg","/b.jpg"]`, string(row.ImagesJSON))
	assert.JSONEq(t, `["https://youtu.be/abc123"]`, string(row.VideosJSON))
}

func TestImportDocuments_Dedup(t *testing.T) {
	im := testImporter(t)
	entries := []DocumentEntry{{Title: "Постановление 42", Category: "official", FileURL: "https://old.site/42.pdf"}}

	first := im.ImportDocuments(context.Background(), entries)
	second := im.ImportDocuments(context.Background(), entries)
	assert.Equal(t, 1, first.Inserted)
	assert.Equal(t, 1, second.Skipped)
}

func TestImportArchive_ParsesDates(t *testing.T) {
	im := testImporter(t)

	report := im.ImportArchive(context.Background(), []ArchiveEntry{
		{Title: "Выпуск 1", Date: "9 января 2025 г.", Year: 2025, PDFURL: "https://old.site/1.pdf"},
		{Title: "Выпуск 2", Date: "без даты", Year: 1998},
	}, false)
	require.Equal(t, 2, report.Inserted)

	var rows []models.ArchiveIssue
	require.NoError(t, im.DB.Order("title asc").Find(&rows).Error)
	assert.Equal(t, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), rows[0].IssueDate)
	assert.Equal(t, time.Date(1998, time.January, 1, 0, 0, 0, 0, time.UTC), rows[1].IssueDate)
	// without re-upload the legacy URL is kept as-is
	assert.Equal(t, "https://old.site/1.pdf", rows[0].PDFURL)
}

func TestImportArchive_PartialCompletion(t *testing.T) {
	im := testImporter(t)

	report := im.ImportArchive(context.Background(), []ArchiveEntry{
		{Title: ""},
		{Title: "Выпуск 3", Year: 2000},
	}, false)
	assert.Equal(t, 1, report.Inserted)
	assert.Len(t, report.Errors, 1)
}
