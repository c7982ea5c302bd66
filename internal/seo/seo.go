// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Meta is rendered into <head> by the base layout.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []template.JS
}

const descriptionLimit = 160

// NewMeta fills the OpenGraph and Twitter blocks from the common fields.
// baseURL and pagePath form the canonical URL; an empty image selects a summary card.
func NewMeta(siteName, baseURL, pagePath, title, description, image string) Meta {
	fullTitle := siteName
	if title != "" && title != siteName {
		fullTitle = title + " | " + siteName
	}
	description = clip(description, descriptionLimit)
	canonical := strings.TrimRight(baseURL, "/") + pagePath
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       fullTitle,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       fullTitle,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
			Locale:      "es_CL",
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

// AddJSONLD appends a schema payload; values that fail to marshal are skipped.
func (m *Meta) AddJSONLD(v any) {
	if js := JSONLD(v); js != "" {
		m.JSONLD = append(m.JSONLD, js)
	}
}

func clip(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit-1])) + "…"
}
