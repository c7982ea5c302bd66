package main

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/cms"
	"granrah.cl/granrah-web/internal/config"
	"granrah.cl/granrah-web/internal/contact"
	handlersPkg "granrah.cl/granrah-web/internal/handlers"
	mw "granrah.cl/granrah-web/internal/middleware"
)

const requestTimeout = 30 * time.Second

// server wires the content source, the contact relay and the templates to the router.
type server struct {
	env       handlersPkg.Env
	src       handlersPkg.Source
	contact   handlersPkg.Submitter
	views     *views
	logger    *zap.Logger
	publicDir string
	dev       bool
}

// newServer builds the dependencies described by cfg. The returned cleanup
// releases the Redis connection when one was opened.
func newServer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*server, func(), error) {
	cleanup := func() {}

	var cache cms.Cache = cms.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		client, err := cms.ConnectRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			// the in-memory cache keeps the site up
			logger.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			cache = cms.NewRedisCache(client, logger)
			cleanup = func() { _ = client.Close() }
		}
	}

	src := cms.NewClient(cfg.CMS.BaseURL,
		cms.WithTimeout(cfg.CMS.Timeout),
		cms.WithCache(cache, cfg.Cache.TTL),
		cms.WithContentDir(cfg.CMS.ContentDir),
		cms.WithLogger(logger),
	)
	if !src.Remote() {
		logger.Warn("no CMS base URL configured, serving local content only")
	}

	v, err := newViews(cfg.Server.TemplatesDir, cfg.Server.DevMode)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &server{
		env: handlersPkg.Env{
			Site:      cfg.Site,
			Analytics: handlersPkg.AnalyticsFromConfig(cfg.Analytics),
		},
		src:       src,
		contact:   contact.NewClient(cfg.Contact.BaseURL, cfg.Contact.FormID, cfg.Contact.UnitTag),
		views:     v,
		logger:    logger,
		publicDir: cfg.Server.PublicDir,
		dev:       cfg.Server.DevMode,
	}, cleanup, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(s.logger))
	r.Use(mw.Recover)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(s.publicDir, "assets"), s.dev))
	r.Handle("/assets/*", assets)

	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(!s.dev))

		r.Get("/", s.HomeHandler)
		r.Get("/musica", s.MusicHandler)
		r.Get("/musica/{slug}", s.ProductHandler)
		r.Get("/noticias", s.NewsListHandler)
		r.Get("/noticias/{slug}", s.NewsDetailHandler)
		r.Get("/eventos", s.EventsHandler)
		r.Get("/galeria", s.GalleryHandler)
		r.Get("/biografia", s.BioHandler)
		r.Get("/momentos", s.MomentsHandler)
		r.Get("/tienda", s.ShopHandler)
		r.Get("/contacto", s.ContactHandler)
		r.Post("/contacto", s.ContactSubmitHandler)

		r.NotFound(s.NotFoundHandler)
	})
	return r
}
