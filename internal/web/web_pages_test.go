package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanguardgg/sitecms/internal/services/news"
)

func TestPublicPages(t *testing.T) {
	ts := newWebTestServer(t)

	pages := map[string]string{
		"/":         "section.hero",
		"/team":     "#player-list",
		"/news":     "#news-list",
		"/store":    "#product-list",
		"/lookbook": "#lookbook-gallery",
		"/contact":  "a[href^='mailto:']",
	}
	for path, selector := range pages {
		rr := ts.get(path)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html", path)

		doc := parseHTML(rr.Body)
		assertContainsElement(t, doc, selector)
		assertContainsText(t, doc, "nav .brand", "Vanguard Esports")
	}
}

func TestNewsDetail(t *testing.T) {
	ts := newWebTestServer(t)

	article, err := ts.app.NewsService.Create(t.Context(), news.CreateInput{
		Title:   "Grand Final Recap",
		Content: "<b>What</b> a series",
	}, "")
	require.NoError(t, err)

	rr := ts.get("/news/" + article.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "article h1", "Grand Final Recap")
	assertContainsText(t, doc, ".author", "Vanguard Esports")
	// Content is escaped, not rendered as markup
	assertNotContainsElement(t, doc, ".content b")
	assertContainsText(t, doc, ".content", "<b>What</b> a series")
}

func TestNewsDetailMissing(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/news/000000000000000000000000", "/news/not-an-id"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assertContainsText(t, parseHTML(rr.Body), ".not-found h1", "404")
	}
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/does/not/exist")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assertContainsElement(t, parseHTML(rr.Body), ".not-found")
}

func TestStaticFileServing(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/css/site.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")

	rr = ts.get("/js/admin.js")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Directories and dotfiles fall through to the router
	rr = ts.get("/css/")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = ts.get("/uploads/.gitkeep")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPageTemplatesAreNotStaticFiles(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/news-detail.html", "/team.html", "/404.html", "/index.html", "/Store.HTML"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "{{", path)
	}
}

func TestAdminPagesAreNotStaticFiles(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/admin/dashboard.html", "/views/admin/dashboard.html", "/admin/news.html"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestMethodNotAllowedOnPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.request(http.MethodPost, "/team", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
