package cms

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"granrah.cl/granrah-web/internal/content"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const albumsBody = `[
  {"id": 1, "slug": "raices", "title": {"rendered": "Raíces"}, "content": {"rendered": ""}, "acf": {"subtitle": "LP"}, "featured_images": false},
  {"id": 2, "slug": "en-vivo", "title": {"rendered": "En Vivo"}, "content": {"rendered": ""}, "acf": {}}
]`

const partialAlbumsBody = `[
  {"id": 1, "slug": "raices", "title": {"rendered": "Raíces"}, "content": {"rendered": ""}, "acf": {}},
  {"id": "dos", "slug": "roto", "title": {"rendered": "Roto"}, "content": {"rendered": ""}, "acf": {}}
]`

type fakeWP struct {
	hits   atomic.Int32
	status int
	body   string
	last   atomic.Value // request URI
}

func (f *fakeWP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	f.last.Store(r.URL.String())
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeWP) lastURL() string {
	v, _ := f.last.Load().(string)
	return v
}

func newFakeWP(t *testing.T, status int, body string) (*fakeWP, *httptest.Server) {
	t.Helper()
	wp := &fakeWP{status: status, body: body}
	srv := httptest.NewServer(wp)
	t.Cleanup(srv.Close)
	return wp, srv
}

func writePage(t *testing.T, dir, slug, text string) {
	t.Helper()
	pages := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(pages, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pages, slug+".md"), []byte(text), 0o600))
}

const bioMarkdown = `---
id: 7
title: Biografía
acf:
  subtitle: Rap desde Santiago
  social_instagram: https://www.instagram.com/granrah/
---
# Gran Rah

Colectivo de **hip hop**.
`

func TestAlbumsCachesValidatedBody(t *testing.T) {
	wp, srv := newFakeWP(t, 0, albumsBody)
	c := NewClient(srv.URL + "/")

	albums, err := c.Albums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, "raices", albums[0].Slug)
	assert.Equal(t, "LP", albums[0].Fields.Subtitle)
	assert.Equal(t, "/wp-json/wp/v2/albums?per_page=100", wp.lastURL())

	again, err := c.Albums(context.Background())
	require.NoError(t, err)
	assert.Equal(t, albums, again)
	assert.Equal(t, int32(1), wp.hits.Load())
}

func TestPartialPayloadIsNotCached(t *testing.T) {
	wp, srv := newFakeWP(t, 0, partialAlbumsBody)
	cache := NewMemoryCache()
	c := NewClient(srv.URL, WithCache(cache, time.Minute))

	albums, err := c.Albums(context.Background())
	var verr *content.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, albums, 1)
	assert.Equal(t, "raices", albums[0].Slug)
	assert.Contains(t, verr.Paths(), "[1].id")

	_, _ = c.Albums(context.Background())
	assert.Equal(t, int32(2), wp.hits.Load())
	assert.Zero(t, cache.Len())
}

func TestNewsItemLookup(t *testing.T) {
	wp, srv := newFakeWP(t, 0, `[{"id": 3, "slug": "gira", "title": {"rendered": "Gira"}, "content": {"rendered": ""}, "date": "2024-05-01T10:00:00", "excerpt": {"rendered": "Pronto"}, "acf": {"destacada": true}}]`)
	c := NewClient(srv.URL)

	item, err := c.NewsItem(context.Background(), "Gira")
	require.NoError(t, err)
	assert.True(t, item.IsFeatured())
	assert.Equal(t, "/wp-json/wp/v2/noticias?per_page=100&slug=gira", wp.lastURL())

	_, err = c.NewsItem(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewsItemNotFound(t *testing.T) {
	_, empty := newFakeWP(t, 0, `[]`)
	_, err := NewClient(empty.URL).NewsItem(context.Background(), "nada")
	assert.ErrorIs(t, err, ErrNotFound)

	_, missing := newFakeWP(t, http.StatusNotFound, `{"code":"rest_no_route"}`)
	_, err = NewClient(missing.URL).NewsItem(context.Background(), "nada")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListStatusError(t *testing.T) {
	_, srv := newFakeWP(t, http.StatusForbidden, `{}`)
	_, err := NewClient(srv.URL).Events(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Equal(t, "cms: eventos status 403", se.Error())
}

func TestListsWithoutBaseURL(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.Remote())
	albums, err := c.Albums(context.Background())
	require.NoError(t, err)
	assert.Empty(t, albums)
	products, err := c.MusicProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
}

func TestPageFromLocalMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, SlugBio, bioMarkdown)

	bio, err := NewClient("", WithContentDir(dir)).BioPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), bio.ID)
	assert.Equal(t, "Biografía", bio.Title.Rendered)
	require.NotNil(t, bio.Fields)
	assert.Equal(t, "Rap desde Santiago", bio.Fields.Subtitle)
	assert.Contains(t, bio.Content.Rendered, "<strong>hip hop</strong>")
	assert.Nil(t, bio.FeaturedImages)
}

func TestPageFallbackOnServerError(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, SlugBio, bioMarkdown)
	_, srv := newFakeWP(t, http.StatusBadGateway, `upstream down`)
	core, logs := observer.New(zapcore.WarnLevel)

	c := NewClient(srv.URL, WithContentDir(dir), WithLogger(zap.New(core)))
	bio, err := c.BioPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Biografía", bio.Title.Rendered)

	entries := logs.FilterMessage("cms unavailable, serving local page").All()
	require.Len(t, entries, 1)
	assert.Equal(t, SlugBio, entries[0].ContextMap()["slug"])
}

func TestPageFallbackOnTransportError(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, SlugGallery, "---\ntitle: Galería\n---\n")
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	page, err := NewClient(base, WithContentDir(dir)).GalleryPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Galería", page.Title.Rendered)
	assert.NotNil(t, page.Gallery)
}

func TestPageValidationErrorIsNotMasked(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, SlugHome, "---\ntitle: Inicio\n---\n")
	_, srv := newFakeWP(t, 0, `[{"id": 1, "slug": "inicio", "title": "plain", "content": {"rendered": ""}}]`)

	_, err := NewClient(srv.URL, WithContentDir(dir)).HomePage(context.Background())
	var verr *content.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, content.KindHomePage, verr.Kind)
}

func TestPageCanceledContextDoesNotFallBack(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, SlugHome, "---\ntitle: Inicio\n---\n")
	_, srv := newFakeWP(t, 0, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, WithContentDir(dir)).HomePage(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPageMissingEverywhere(t *testing.T) {
	_, err := NewClient("", WithContentDir(t.TempDir())).MomentsPage(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheExpiryCopiesAndSkipsZeroTTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("v"), time.Minute)
	cache.Set(ctx, "skip", []byte("v"), 0)
	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
	got[0] = 'x'
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again)
	_, ok = cache.Get(ctx, "skip")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body := splitFrontMatter("\ufeff---\ntitle: x\n---\n\nhola")
	assert.Equal(t, "title: x", fm)
	assert.Equal(t, "hola", body)

	fm, body = splitFrontMatter("sin cabecera")
	assert.Empty(t, fm)
	assert.Equal(t, "sin cabecera", body)
}

func TestPrettifySlug(t *testing.T) {
	assert.Equal(t, "Mis Momentos", prettifySlug("mis-momentos"))
}
