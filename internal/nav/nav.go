// Package nav defines the site sections and derives navigation and breadcrumb
// view models from the request path.
package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/musica"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Label: "Inicio"},
	{Path: "/musica", Label: "Música"},
	{Path: "/noticias", Label: "Noticias"},
	{Path: "/eventos", Label: "Eventos"},
	{Path: "/galeria", Label: "Galería"},
	{Path: "/biografia", Label: "Biografía"},
	{Path: "/momentos", Label: "Momentos"},
	{Path: "/tienda", Label: "Tienda"},
	{Path: "/contacto", Label: "Contacto"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/musica" or "/musica/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Label returns the navigation label of a top-level section path.
func Label(sectionPath string) (string, bool) {
	for _, it := range Main {
		if it.Path == sectionPath {
			return it.Label, true
		}
	}
	return "", false
}

// Breadcrumbs builds breadcrumb entries from the current path. It always starts
// with Inicio; known sections use their nav label. leaf, when non-empty, labels
// the last segment (e.g. an album title instead of its slug).
func Breadcrumbs(currentPath, leaf string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Inicio", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		label, ok := Label(href)
		if !ok {
			label = titleFromSegment(part)
		}
		last := i == len(parts)-1
		if last && leaf != "" {
			label = leaf
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: last})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	r := []rune(s)
	// ASCII only is sufficient for slugs here
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
