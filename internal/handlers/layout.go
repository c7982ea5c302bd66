// Package handlers builds the view models of every page from validated content.
// Loaders are HTTP-agnostic; cmd/web maps their errors onto status codes.
package handlers

import (
	"context"
	"time"

	"granrah.cl/granrah-web/internal/config"
	"granrah.cl/granrah-web/internal/middleware"
	"granrah.cl/granrah-web/internal/nav"
	"granrah.cl/granrah-web/internal/seo"
)

// partialNotice is shown above a list when some entries failed validation.
const partialNotice = "Algunos contenidos no pudieron mostrarse."

// Env carries the request-independent inputs of every page.
type Env struct {
	Site      config.Site
	Analytics Analytics
	Now       func() time.Time
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Layout is the common part of every page view model.
type Layout struct {
	Site        config.Site
	SEO         seo.Meta
	Analytics   Analytics
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string
	Year        int
	Notice      string
}

// PageInfo describes the page a layout is built for.
type PageInfo struct {
	Path        string
	Title       string
	Description string
	Image       string
	Leaf        string // breadcrumb label of the last segment
}

func (e Env) layout(ctx context.Context, p PageInfo) Layout {
	meta := seo.NewMeta(e.Site.Name, e.Site.BaseURL, p.Path, p.Title, p.Description, p.Image)
	crumbs := nav.Breadcrumbs(p.Path, p.Leaf)
	if len(crumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(crumbs))
		for _, c := range crumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: e.Site.BaseURL + c.Href})
		}
		meta.AddJSONLD(seo.BreadcrumbList(items))
	}
	return Layout{
		Site:        e.Site,
		SEO:         meta,
		Analytics:   e.Analytics,
		Path:        p.Path,
		Nav:         nav.Build(p.Path),
		Breadcrumbs: crumbs,
		CSRFToken:   middleware.CSRFToken(ctx),
		Year:        e.now().Year(),
	}
}

// UnavailableView renders the notice shown when a page's content cannot be loaded.
type UnavailableView struct {
	Layout
	Message string
}

// BuildUnavailable returns the view for a failed page at path.
func BuildUnavailable(ctx context.Context, env Env, path string) UnavailableView {
	l := env.layout(ctx, PageInfo{Path: path, Title: "Contenido no disponible"})
	l.SEO.Robots = "noindex"
	return UnavailableView{
		Layout:  l,
		Message: "No pudimos cargar este contenido. Intenta nuevamente en unos minutos.",
	}
}

// NotFoundView renders the 404 page.
type NotFoundView struct {
	Layout
}

// BuildNotFound returns the view for a missing page at path.
func BuildNotFound(ctx context.Context, env Env, path string) NotFoundView {
	l := env.layout(ctx, PageInfo{Path: path, Title: "Página no encontrada"})
	l.SEO.Robots = "noindex"
	return NotFoundView{Layout: l}
}
