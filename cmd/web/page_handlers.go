package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	handlersPkg "granrah.cl/granrah-web/internal/handlers"
	"granrah.cl/granrah-web/internal/observability"
)

// respond renders page with the loader's result, mapping loader errors onto the
// not-found page (404) or the unavailable notice (502).
func (s *server) respond(w http.ResponseWriter, r *http.Request, page string, vm any, err error) {
	switch {
	case err == nil:
		s.views.renderPage(w, r, http.StatusOK, page, vm)
	case errors.Is(err, handlersPkg.ErrNotFound):
		s.NotFoundHandler(w, r)
	case errors.Is(err, context.Canceled):
		// client went away; nothing to render
		observability.FromContext(r.Context()).Info("request canceled", zap.String("page", page))
	default:
		observability.FromContext(r.Context()).Error("page unavailable", zap.String("page", page), zap.Error(err))
		vm := handlersPkg.BuildUnavailable(r.Context(), s.env, r.URL.Path)
		s.views.renderPage(w, r, http.StatusBadGateway, "unavailable", vm)
	}
}

// HomeHandler renders the landing page.
func (s *server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadHome(r.Context(), s.src, s.env)
	s.respond(w, r, "home", vm, err)
}

// MusicHandler renders the discography.
func (s *server) MusicHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadMusic(r.Context(), s.src, s.env)
	s.respond(w, r, "music", vm, err)
}

// ProductHandler renders a record or merchandise detail page.
func (s *server) ProductHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadProductDetail(r.Context(), s.src, s.env, chi.URLParam(r, "slug"))
	s.respond(w, r, "product", vm, err)
}

// NewsListHandler renders the news index.
func (s *server) NewsListHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadNewsList(r.Context(), s.src, s.env)
	s.respond(w, r, "news", vm, err)
}

// NewsDetailHandler renders one news entry.
func (s *server) NewsDetailHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadNewsDetail(r.Context(), s.src, s.env, chi.URLParam(r, "slug"))
	s.respond(w, r, "news_detail", vm, err)
}

// EventsHandler renders the concert calendar.
func (s *server) EventsHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadEvents(r.Context(), s.src, s.env)
	s.respond(w, r, "events", vm, err)
}

// GalleryHandler renders the photo gallery.
func (s *server) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadGallery(r.Context(), s.src, s.env)
	s.respond(w, r, "gallery", vm, err)
}

// BioHandler renders the biography.
func (s *server) BioHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadBio(r.Context(), s.src, s.env)
	s.respond(w, r, "bio", vm, err)
}

// MomentsHandler renders the moments page.
func (s *server) MomentsHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadMoments(r.Context(), s.src, s.env)
	s.respond(w, r, "moments", vm, err)
}

// ShopHandler renders the shop.
func (s *server) ShopHandler(w http.ResponseWriter, r *http.Request) {
	vm, err := handlersPkg.LoadShop(r.Context(), s.src, s.env)
	s.respond(w, r, "shop", vm, err)
}

// NotFoundHandler renders the 404 page.
func (s *server) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := handlersPkg.BuildNotFound(r.Context(), s.env, r.URL.Path)
	s.views.renderPage(w, r, http.StatusNotFound, "notfound", vm)
}
