package migrate

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

	"gigportal/internal/importer"
	"gigportal/internal/models"
	"gigportal/internal/scraper"
)

const articlePage = `<html><head><title>%TITLE%</title></head><body><article>
<p>Достаточно длинный текст статьи со старого сайта для прохождения порога отбора контейнера.</p>
</article></body></html>`

func legacySite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/news/", func(w http.ResponseWriter, r *http.Request) {
		title := "Статья " + r.URL.Path[len("/news/"):]
		_, _ = w.Write([]byte(strings.ReplaceAll(articlePage, "%TITLE%", title)))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/news/1">один</a>
			<a href="/news/2">два</a>
			<a href="/news/1#comments">дубль</a>
			<a href="/about">не новость</a>
			<a href="https://other.host/news/3">чужой хост</a>
			<a href="/broken">сломанная</a>
		</body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.News{}))

	sc := scraper.New(5*time.Second, 20)
	im := importer.New(gdb, nil, 5*time.Second, 5, 0)
	return NewRunner(sc, im, 5*time.Second, 2, 0)
}

func TestDiscoverLinks(t *testing.T) {
	srv := legacySite(t)
	r := testRunner(t)

	links, err := r.DiscoverLinks(context.Background(), srv.URL, "/news/", 0)
	require.NoError(t, err)
	// fragment dropped, duplicates and foreign hosts filtered
	assert.Equal(t, []string{srv.URL + "/news/1", srv.URL + "/news/2"}, links)
}

func TestDiscoverLinks_Limit(t *testing.T) {
	srv := legacySite(t)
	r := testRunner(t)

	links, err := r.DiscoverLinks(context.Background(), srv.URL, "/news/", 1)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestRun_ImportsDiscoveredArticles(t *testing.T) {
	srv := legacySite(t)
	r := testRunner(t)

	result, err := r.Run(context.Background(), Request{
		ListURL:     srv.URL,
		LinkPattern: "/news/",
		RubricPath:  "Город",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Discovered)
	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.Errors)

	var rows []models.News
	require.NoError(t, r.Importer.DB.Order("title asc").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "Статья 1", rows[0].Title)
	assert.Equal(t, "Город", rows[0].RubricPath)
	assert.Equal(t, srv.URL+"/news/1", rows[0].SourceURL)
}

func TestRun_RerunSkipsExisting(t *testing.T) {
	srv := legacySite(t)
	r := testRunner(t)
	req := Request{ListURL: srv.URL, LinkPattern: "/news/"}

	first, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)
}

func TestRun_PerItemFailureContinues(t *testing.T) {
	srv := legacySite(t)
	r := testRunner(t)

	// no pattern: picks up /about, /broken and the news links
	result, err := r.Run(context.Background(), Request{ListURL: srv.URL})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Errors, "broken page must be recorded")
	assert.GreaterOrEqual(t, result.Inserted, 2, "healthy pages must still import")
}

func TestDiscoverLinks_BadListURL(t *testing.T) {
	r := testRunner(t)
	_, err := r.DiscoverLinks(context.Background(), "not-a-url", "", 0)
	require.Error(t, err)
}
