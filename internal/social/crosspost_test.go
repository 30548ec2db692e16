package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gigportal/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.News{},
		&models.BlogPost{},
		&models.Gallery{},
		&models.CrossPostLog{},
	))
	return gdb
}

func seedNews(t *testing.T, gdb *gorm.DB) models.News {
	t.Helper()
	row := models.News{
		ID:    "news-1",
		Title: "Город отметил юбилей",
		Slug:  "gorod-otmetil-yubiley-1700000000",
		Lead:  "Праздничные мероприятия прошли в выходные.",
	}
	require.NoError(t, gdb.Create(&row).Error)
	return row
}

func vkServer(t *testing.T, wallPosts *int, fail bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/wall.post") {
			t.Errorf("unexpected vk call: %s", r.URL.Path)
		}
		*wallPosts++
		w.Header().Set("Content-Type", "application/json")
		if fail {
			_, _ = w.Write([]byte(`{"error":{"error_code":15,"error_msg":"Access denied"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"response":{"post_id":42}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func tgServer(t *testing.T, messages *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*messages++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newPoster(gdb *gorm.DB, vkURL, tgURL string) *CrossPoster {
	p := &CrossPoster{DB: gdb, SiteURL: "https://gig26.ru"}
	if vkURL != "" {
		p.VK = &VKClient{BaseURL: vkURL, AccessToken: "tok", GroupID: "1", HTTP: &http.Client{Timeout: 5 * time.Second}}
	}
	if tgURL != "" {
		p.Telegram = &TelegramClient{BaseURL: tgURL, BotToken: "bot", ChatID: "@chan", HTTP: &http.Client{Timeout: 5 * time.Second}}
	}
	return p
}

func TestCrossPost_BothPlatformsLogged(t *testing.T) {
	gdb := testDB(t)
	seedNews(t, gdb)

	vkCalls, tgCalls := 0, 0
	p := newPoster(gdb, vkServer(t, &vkCalls, false).URL, tgServer(t, &tgCalls).URL)

	results, err := p.Post(context.Background(), ContentTypeNews, "news-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, vkCalls)
	assert.Equal(t, 1, tgCalls)

	for _, r := range results {
		assert.True(t, r.Success, "platform %s", r.Platform)
		assert.NotEmpty(t, r.PostID)
	}

	var logs []models.CrossPostLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, models.CrossPostStatusSuccess, l.Status)
		assert.Equal(t, "news-1", l.ContentID)
		require.NotNil(t, l.PostID)
	}
}

func TestCrossPost_VKFailureDoesNotBlockTelegram(t *testing.T) {
	gdb := testDB(t)
	seedNews(t, gdb)

	vkCalls, tgCalls := 0, 0
	p := newPoster(gdb, vkServer(t, &vkCalls, true).URL, tgServer(t, &tgCalls).URL)

	results, err := p.Post(context.Background(), ContentTypeNews, "news-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, tgCalls, "telegram must still be attempted")

	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "Access denied")
	assert.True(t, results[1].Success)

	var errLog models.CrossPostLog
	require.NoError(t, gdb.Where("platform = ?", PlatformVK).First(&errLog).Error)
	assert.Equal(t, models.CrossPostStatusError, errLog.Status)
	assert.NotEmpty(t, errLog.ErrorMessage)
	assert.Nil(t, errLog.PostID)
}

func TestCrossPost_UnknownContentType(t *testing.T) {
	p := newPoster(testDB(t), "", "")
	_, err := p.Post(context.Background(), "podcast", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content type")
}

func TestCrossPost_ContentNotFound(t *testing.T) {
	p := newPoster(testDB(t), "", "")
	_, err := p.Post(context.Background(), ContentTypeNews, "missing")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestBuildMessage(t *testing.T) {
	got := BuildMessage("Заголовок", "Краткий лид.", "https://gig26.ru/news/x")
	assert.Equal(t, "Заголовок\n\nКраткий лид.\n\nhttps://gig26.ru/news/x", got)
}

func TestBuildMessage_TruncatesLongLead(t *testing.T) {
	lead := strings.Repeat("слово ", 100)
	got := BuildMessage("Т", lead, "https://gig26.ru/news/x")

	body := strings.Split(got, "\n\n")[1]
	assert.LessOrEqual(t, len([]rune(body)), messageLeadLimit+1)
	assert.True(t, strings.HasSuffix(body, "…"))
}

func TestBuildMessage_EmptyLead(t *testing.T) {
	got := BuildMessage("Заголовок", "  ", "https://gig26.ru/news/x")
	assert.Equal(t, "Заголовок\n\nhttps://gig26.ru/news/x", got)
}
