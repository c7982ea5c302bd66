// Package cms reads band content from the WordPress REST API, validating every
// payload through package content before it is cached or returned.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/content"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultTimeout = 5 * time.Second
	apiPrefix      = "wp-json/wp/v2"
	perPage        = "100"
	maxBodyBytes   = 8 << 20
)

// Collection endpoints under /wp-json/wp/v2/.
const (
	EndpointPosts    = "posts"
	EndpointNews     = "noticias"
	EndpointAlbums   = "albums"
	EndpointEvents   = "eventos"
	EndpointMusic    = "musica"
	EndpointClothing = "ropa"
	EndpointPages    = "pages"
)

// Page slugs of the singleton pages.
const (
	SlugHome    = "inicio"
	SlugGallery = "galeria"
	SlugBio     = "biografia"
	SlugMoments = "momentos"
)

// StatusError is a non-2xx response from the CMS.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cms: %s status %d", e.Endpoint, e.Code)
}

// Client provides read-only access to the CMS.
type Client struct {
	baseURL    string
	http       *http.Client
	cache      Cache
	ttl        time.Duration
	contentDir string
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithCache sets the response cache and its TTL. A nil cache disables caching.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.ttl = ttl
	}
}

// WithContentDir sets the directory holding local markdown fallbacks.
func WithContentDir(dir string) Option {
	return func(c *Client) {
		if dir = strings.TrimSpace(dir); dir != "" {
			c.contentDir = dir
		}
	}
}

// WithLogger sets the logger used for fallback and validation reports.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a Client. An empty baseURL serves local content only.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: defaultTimeout},
		cache:      NewMemoryCache(),
		ttl:        DefaultCacheTTL,
		contentDir: defaultContentDir,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remote reports whether a CMS base URL is configured.
func (c *Client) Remote() bool { return c != nil && c.baseURL != "" }

// Posts lists blog posts.
func (c *Client) Posts(ctx context.Context) ([]content.Post, error) {
	return fetchList(ctx, c, EndpointPosts, nil, content.ParsePosts)
}

// News lists news entries.
func (c *Client) News(ctx context.Context) ([]content.News, error) {
	return fetchList(ctx, c, EndpointNews, nil, content.ParseNewsList)
}

// NewsItem looks a news entry up by slug.
func (c *Client) NewsItem(ctx context.Context, slug string) (content.News, error) {
	return fetchBySlug(ctx, c, EndpointNews, slug, content.ParseNewsList)
}

// Albums lists the discography.
func (c *Client) Albums(ctx context.Context) ([]content.Album, error) {
	return fetchList(ctx, c, EndpointAlbums, nil, content.ParseAlbums)
}

// Events lists concerts.
func (c *Client) Events(ctx context.Context) ([]content.Event, error) {
	return fetchList(ctx, c, EndpointEvents, nil, content.ParseEvents)
}

// MusicProducts lists records and merchandise in the music shop.
func (c *Client) MusicProducts(ctx context.Context) ([]content.MusicProduct, error) {
	return fetchList(ctx, c, EndpointMusic, nil, content.ParseMusicProducts)
}

// MusicProduct looks a music product up by slug.
func (c *Client) MusicProduct(ctx context.Context, slug string) (content.MusicProduct, error) {
	return fetchBySlug(ctx, c, EndpointMusic, slug, content.ParseMusicProducts)
}

// ClothingProducts lists apparel.
func (c *Client) ClothingProducts(ctx context.Context) ([]content.ClothingProduct, error) {
	return fetchList(ctx, c, EndpointClothing, nil, content.ParseClothingProducts)
}

// HomePage returns the landing page.
func (c *Client) HomePage(ctx context.Context) (content.HomePage, error) {
	return fetchPage(ctx, c, SlugHome, content.ParseHomePages)
}

// GalleryPage returns the photo gallery.
func (c *Client) GalleryPage(ctx context.Context) (content.GalleryPage, error) {
	return fetchPage(ctx, c, SlugGallery, content.ParseGalleryPages)
}

// BioPage returns the biography.
func (c *Client) BioPage(ctx context.Context) (content.BioPage, error) {
	return fetchPage(ctx, c, SlugBio, content.ParseBioPages)
}

// MomentsPage returns the moments page.
func (c *Client) MomentsPage(ctx context.Context) (content.MomentsPage, error) {
	return fetchPage(ctx, c, SlugMoments, content.ParseMomentsPages)
}

// FetchRaw returns the unvalidated body of a collection endpoint. It bypasses the cache.
func (c *Client) FetchRaw(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	u, err := c.endpointURL(endpoint, query)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, endpoint, u)
}

func (c *Client) endpointURL(endpoint string, query url.Values) (string, error) {
	u, err := url.JoinPath(c.baseURL, apiPrefix, endpoint)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("per_page", perPage)
	return u + "?" + q.Encode(), nil
}

func (c *Client) get(ctx context.Context, endpoint, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// fetchList returns every valid element. A non-nil error alongside items is a
// *content.ValidationError for the rejected ones; partial bodies are never cached.
func fetchList[T any](ctx context.Context, c *Client, endpoint string, query url.Values, parse func([]byte) ([]T, error)) ([]T, error) {
	if !c.Remote() {
		return []T{}, nil
	}
	u, err := c.endpointURL(endpoint, query)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, u); ok {
			if items, err := parse(body); err == nil {
				return items, nil
			}
		}
	}
	body, err := c.get(ctx, endpoint, u)
	if err != nil {
		return nil, err
	}
	items, err := parse(body)
	if err != nil {
		c.logger.Warn("cms payload failed validation",
			zap.String("endpoint", endpoint),
			zap.Int("valid", len(items)),
			zap.Error(err),
		)
		return items, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, u, body, c.ttl)
	}
	return items, nil
}

func fetchBySlug[T any](ctx context.Context, c *Client, endpoint, slug string, parse func([]byte) ([]T, error)) (T, error) {
	var zero T
	slug = sanitizeSlug(slug)
	if slug == "" || !c.Remote() {
		return zero, ErrNotFound
	}
	items, err := fetchList(ctx, c, endpoint, url.Values{"slug": {slug}}, parse)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, ErrNotFound
	}
	return items[0], nil
}

// fetchPage reads a singleton page, falling back to local markdown when the CMS
// is not configured, unreachable or failing with 5xx. Validation errors are returned as is.
func fetchPage[T any](ctx context.Context, c *Client, slug string, parse func([]byte) ([]T, error)) (T, error) {
	var zero T
	if c.Remote() {
		item, err := fetchBySlug(ctx, c, EndpointPages, slug, parse)
		if err == nil || !unavailable(ctx, err) {
			return item, err
		}
		c.logger.Warn("cms unavailable, serving local page", zap.String("slug", slug), zap.Error(err))
	}
	body, err := c.localPage(slug)
	if err != nil {
		return zero, err
	}
	items, err := parse(body)
	if err != nil {
		return zero, fmt.Errorf("cms: local page %s: %w", slug, err)
	}
	if len(items) == 0 {
		return zero, ErrNotFound
	}
	return items[0], nil
}

func unavailable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
