package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/config"
	"granrah.cl/granrah-web/internal/testutil"
)

const (
	homeJSON = `[{"id":1,"slug":"inicio","title":{"rendered":"Inicio"},
		"content":{"rendered":"<p>Hip hop desde Santiago</p><script>alert(1)</script>"},
		"acf":{"title":"Gran Rah en vivo","image":false}}]`
	bioJSON = `[{"id":3,"slug":"biografia","title":{"rendered":"Biografía"},
		"content":{"rendered":"<p>Historia</p>"},
		"acf":{"bio_short":"Colectivo chileno","social_instagram":"https://instagram.com/granrah"}}]`
	recordJSON = `{"id":20,"slug":"raices-cd","title":{"rendered":"Raíces (CD)"},
		"content":{"rendered":"<p>Edición física</p>"},
		"acf":{"sale":true,"price":"15000","description":"Disco debut"}}`
	merchJSON = `{"id":21,"slug":"jockey-negro","title":{"rendered":"Jockey negro"},
		"acf":{"sale":true,"price":12990,"color":"Negro","visor":"Plana"}}`
	newsJSON = `[{"id":30,"slug":"gira-sur","date":"2024-05-01T10:00:00","title":{"rendered":"Gira por el sur"},
		"content":{"rendered":"<p>Vamos al sur</p>"},"excerpt":{"rendered":"<p>Vamos al sur</p>"},
		"acf":{"destacada":true}}]`
	eventsJSON = `[{"id":40,"slug":"caupolican","date":"2024-01-01T00:00:00","title":{"rendered":"Teatro Caupolicán"},
		"content":{"rendered":""},"acf":{"date":"20990315","address":"San Diego 850","link":"https://tickets.example/1"}}]`
	albumsJSON   = `[{"id":50,"slug":"raices","title":{"rendered":"Raíces"},"content":{"rendered":""},"acf":{"release_date":"20210312"}}]`
	clothingJSON = `[{"id":60,"slug":"polera","title":{"rendered":"Polera logo"},"acf":{"price":9990,"sizes":["M","L"]}}]`
)

// fakeCMS serves the WordPress endpoints the site reads plus the Contact Form 7 feedback route.
type fakeCMS struct {
	mu          sync.Mutex
	failEvents  bool
	contactName string
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slug := r.URL.Query().Get("slug")
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/wp-json/wp/v2/pages":
		switch slug {
		case "inicio":
			_, _ = io.WriteString(w, homeJSON)
		case "biografia":
			_, _ = io.WriteString(w, bioJSON)
		case "galeria":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = io.WriteString(w, "[]")
		}
	case "/wp-json/wp/v2/musica":
		switch slug {
		case "":
			_, _ = io.WriteString(w, "["+recordJSON+","+merchJSON+"]")
		case "raices-cd":
			_, _ = io.WriteString(w, "["+recordJSON+"]")
		case "jockey-negro":
			_, _ = io.WriteString(w, "["+merchJSON+"]")
		default:
			_, _ = io.WriteString(w, "[]")
		}
	case "/wp-json/wp/v2/noticias":
		if slug != "" && slug != "gira-sur" {
			_, _ = io.WriteString(w, "[]")
			return
		}
		_, _ = io.WriteString(w, newsJSON)
	case "/wp-json/wp/v2/eventos":
		if f.failEvents {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, eventsJSON)
	case "/wp-json/wp/v2/albums":
		_, _ = io.WriteString(w, albumsJSON)
	case "/wp-json/wp/v2/ropa":
		_, _ = io.WriteString(w, clothingJSON)
	case "/wp-json/contact-form-7/v1/contact-forms/198/feedback":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.contactName = r.FormValue("your-name")
		_, _ = io.WriteString(w, `{"status":"mail_sent","message":"Mensaje enviado desde CMS"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// newTestRouter builds the same router as main() against a fake CMS.
func newTestRouter(t *testing.T, cms http.Handler) http.Handler {
	t.Helper()
	backend := httptest.NewServer(cms)
	t.Cleanup(backend.Close)

	cfg, err := config.Load(
		config.WithoutSystemEnv(),
		config.WithEnvFile(""),
		config.WithEnvMap(map[string]string{
			"GRANRAH_WEB_CMS_BASE_URL":  backend.URL,
			"GRANRAH_WEB_TEMPLATES_DIR": "../../templates",
			"GRANRAH_WEB_PUBLIC_DIR":    "../../public",
			"GRANRAH_WEB_CONTENT_DIR":   "../../content",
		}),
	)
	require.NoError(t, err)

	srv, cleanup, err := newServer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return srv.routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzOK(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestHomeRenders(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	assert.Equal(t, []string{"Gran Rah"}, testutil.Texts(doc, "title"))
	assert.Equal(t, []string{"Gran Rah en vivo"}, testutil.Texts(doc, ".hero h1"))
	assert.NotContains(t, rec.Body.String(), "alert(1)")
	assert.Equal(t, []string{"Inicio"}, testutil.Texts(doc, ".nav-list a.active"))
	assert.Len(t, testutil.Texts(doc, ".nav-list a"), 9)

	// merchandise stays out of the album slider
	assert.Equal(t, 1, doc.Find(".albums-track .album-card").Length())
	assert.Equal(t, 1, doc.Find("#slider-prev").Length())
	assert.Equal(t, 1, doc.Find("#slider-next").Length())
	assert.Equal(t, 1, doc.Find(".slider-dots").Length())

	assert.Equal(t, []string{"Gira por el sur"}, testutil.Texts(doc, ".home-news h3"))
	assert.Equal(t, []string{"Teatro Caupolicán"}, testutil.Texts(doc, ".home-events h3"))
	assert.GreaterOrEqual(t, doc.Find(`script[type="application/ld+json"]`).Length(), 2)
	assert.Equal(t, "https://granrah.cl/", testutil.Attr(t, doc, `link[rel="canonical"]`, "href"))
}

func TestProductDetail(t *testing.T) {
	h := newTestRouter(t, &fakeCMS{})

	rec := get(t, h, "/musica/raices-cd")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, []string{"Raíces (CD)"}, testutil.Texts(doc, "h1"))
	assert.Equal(t, []string{"$15.000"}, testutil.Texts(doc, ".product-info .price"))
	href := testutil.Attr(t, doc, ".product-info a.whatsapp", "href")
	assert.True(t, strings.HasPrefix(href, "https://wa.me/56949260725?text="), href)
	assert.Equal(t, "music.album", testutil.Attr(t, doc, `meta[property="og:type"]`, "content"))

	rec = get(t, h, "/musica/jockey-negro")
	require.Equal(t, http.StatusOK, rec.Code)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, []string{"Color", "Visera"}, testutil.Texts(doc, ".attributes dt"))
}

func TestNewsDetailNotFound(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/noticias/no-existe")
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, []string{"Página no encontrada"}, testutil.Texts(doc, "h1"))
	assert.Equal(t, "noindex", testutil.Attr(t, doc, `meta[name="robots"]`, "content"))
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/discos")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página no encontrada")
}

func TestEventsUnavailable(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{failEvents: true}), "/eventos")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 1, doc.Find("section.unavailable").Length())
	assert.Equal(t, "/eventos", testutil.Attr(t, doc, "section.unavailable a.button", "href"))
}

func TestHomeSurvivesEventFailure(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{failEvents: true}), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No hay eventos programados.")
}

func TestGalleryFallsBackToLocalContent(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/galeria")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, []string{"Galería"}, testutil.Texts(doc, ".hero h1"))
	assert.Equal(t, 1, doc.Find(".gallery-grid .empty").Length())
}

func TestBioAndShop(t *testing.T) {
	h := newTestRouter(t, &fakeCMS{})

	rec := get(t, h, "/biografia")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "https://instagram.com/granrah", testutil.Attr(t, doc, ".bio-social a[href*=instagram]", "href"))
	assert.Equal(t, []string{"Inicio", "Biografía"}, testutil.Texts(doc, ".breadcrumbs li"))

	rec = get(t, h, "/tienda")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, 1, doc.Find(".shop-records .album-card").Length())
	assert.Equal(t, 1, doc.Find(".shop-merch .merch-card").Length())
	assert.Equal(t, []string{"Tallas: M, L"}, testutil.Texts(doc, ".shop-apparel .sizes"))
}

func csrfCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			return c
		}
	}
	t.Fatalf("no csrf cookie in response")
	return nil
}

func postContact(h http.Handler, cookie *http.Cookie, values url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactFlow(t *testing.T) {
	backend := &fakeCMS{}
	h := newTestRouter(t, backend)

	page := get(t, h, "/contacto")
	require.Equal(t, http.StatusOK, page.Code)
	cookie := csrfCookie(t, page)
	doc := testutil.ParseHTML(t, page.Body.Bytes())
	assert.Equal(t, cookie.Value, testutil.Attr(t, doc, `#contact-form input[name="csrf_token"]`, "value"))

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := postContact(h, cookie, url.Values{"name": {"Ana"}}, false)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("field errors return the fragment", func(t *testing.T) {
		rec := postContact(h, cookie, url.Values{"csrf_token": {cookie.Value}, "name": {"Al"}, "email": {"no-es-correo"}}, true)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<html")
		doc := testutil.ParseHTML(t, rec.Body.Bytes())
		assert.Equal(t, "Al", testutil.Attr(t, doc, `input[name="name"]`, "value"))
		fields := map[string]bool{}
		doc.Find(".field-error").Each(func(_ int, s *goquery.Selection) {
			fields[s.AttrOr("data-field", "")] = true
		})
		assert.True(t, fields["name"])
		assert.True(t, fields["email"])
		assert.False(t, fields["phone"])
	})

	t.Run("valid form is relayed", func(t *testing.T) {
		rec := postContact(h, cookie, url.Values{
			"csrf_token": {cookie.Value},
			"name":       {"Ana Pérez"},
			"email":      {"ana@example.cl"},
			"subject":    {"Contratación"},
			"message":    {"Queremos invitarlos a un festival."},
		}, false)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		doc := testutil.ParseHTML(t, rec.Body.Bytes())
		assert.Equal(t, []string{"Mensaje enviado desde CMS"}, testutil.Texts(doc, ".form-status.success"))
		assert.Equal(t, "", testutil.Attr(t, doc, `input[name="name"]`, "value"))

		backend.mu.Lock()
		defer backend.mu.Unlock()
		assert.Equal(t, "Ana Pérez", backend.contactName)
	})
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeCMS{}), "/assets/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
