package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// JSONLD marshals v for a <script type="application/ld+json"> block.
// encoding/json escapes <, > and & so the payload cannot close the script element.
func JSONLD(v any) template.JS {
	return template.JS(JSON(v))
}

func schema(kind, name string) map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    kind,
		"name":     name,
	}
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// MusicGroup describes the band. sameAs lists social profile URLs.
func MusicGroup(name, url, imageURL, genre string, sameAs []string) map[string]any {
	m := schema("MusicGroup", name)
	setIf(m, "url", url)
	setIf(m, "image", imageURL)
	setIf(m, "genre", genre)
	links := make([]string, 0, len(sameAs))
	for _, s := range sameAs {
		if s != "" {
			links = append(links, s)
		}
	}
	if len(links) > 0 {
		m["sameAs"] = links
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := schema("WebSite", name)
	setIf(m, "url", url)
	m["inLanguage"] = "es-CL"
	return m
}

// MusicAlbum describes a record, with an Offer when it is for sale.
func MusicAlbum(name, url, imageURL, artist string, price float64, forSale bool) map[string]any {
	m := schema("MusicAlbum", name)
	setIf(m, "url", url)
	setIf(m, "image", imageURL)
	if artist != "" {
		m["byArtist"] = map[string]any{"@type": "MusicGroup", "name": artist}
	}
	if forSale && price > 0 {
		m["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         price,
			"priceCurrency": "CLP",
			"availability":  "https://schema.org/InStock",
		}
	}
	return m
}

// MusicEvent describes a concert. startDate is ISO 8601 (date only is fine).
func MusicEvent(name, startDate, location, url, performer string) map[string]any {
	m := schema("MusicEvent", name)
	setIf(m, "startDate", startDate)
	setIf(m, "url", url)
	if location != "" {
		m["location"] = map[string]any{"@type": "Place", "name": location, "address": location}
	}
	if performer != "" {
		m["performer"] = map[string]any{"@type": "MusicGroup", "name": performer}
	}
	return m
}

// NewsArticle describes a news entry.
func NewsArticle(headline, url, imageURL, publisher, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "NewsArticle",
		"headline": headline,
	}
	setIf(m, "url", url)
	setIf(m, "image", imageURL)
	setIf(m, "datePublished", datePublished)
	if publisher != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": publisher}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
