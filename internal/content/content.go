// Package content validates WordPress REST payloads (with ACF custom fields) and
// converts them into typed records and presentation view models.
//
// Every union the upstream API can emit (custom fields vs. the empty-list
// sentinel, image bundles vs. attachment IDs vs. false, numeric-or-string
// prices) is resolved here, once. Downstream packages only see optional values.
package content

import (
	"fmt"
	"sort"
)

// Kind identifies a content type understood by the validation layer.
type Kind string

const (
	KindPage            Kind = "page"
	KindPost            Kind = "post"
	KindNews            Kind = "news"
	KindAlbum           Kind = "album"
	KindEvent           Kind = "event"
	KindGalleryPage     Kind = "gallery_page"
	KindBioPage         Kind = "bio_page"
	KindHomePage        Kind = "home_page"
	KindMomentsPage     Kind = "moments_page"
	KindMusicProduct    Kind = "music_product"
	KindClothingProduct Kind = "clothing_product"
)

// Rendered wraps pre-rendered HTML/text produced by WordPress.
type Rendered struct {
	Rendered string
}

// Base holds the fields shared by every WordPress entity.
type Base struct {
	ID      int64
	Slug    string
	Title   Rendered
	Content Rendered
}

// Category is a taxonomy term attached to posts and products.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Page is a generic WordPress page whose custom fields only carry a subtitle.
type Page struct {
	Base
	Fields         *PageFields
	FeaturedImages *FeaturedImages
}

// PageFields are the custom fields of a generic page.
type PageFields struct {
	Subtitle string
}

func (c *checker) base(v value) Base {
	if _, ok := c.object(v); !ok {
		return Base{}
	}
	return Base{
		ID:      c.integer(v.get("id")),
		Slug:    c.str(v.get("slug")),
		Title:   c.rendered(v.get("title")),
		Content: c.rendered(v.get("content")),
	}
}

func (c *checker) category(v value) Category {
	if _, ok := c.object(v); !ok {
		return Category{}
	}
	return Category{
		ID:   c.integer(v.get("id")),
		Name: c.str(v.get("name")),
		Slug: c.str(v.get("slug")),
	}
}

const customFieldsExpectation = "custom fields object or empty list"

// customFields resolves the acf union. It reports true only when structured fields
// are present; absence and the array sentinel both mean "no custom data".
func (c *checker) customFields(v value, required bool) bool {
	if !v.present {
		if required {
			c.fail(v, customFieldsExpectation)
		}
		return false
	}
	switch v.raw.(type) {
	case map[string]any:
		return true
	case []any:
		return false
	}
	c.fail(v, customFieldsExpectation)
	return false
}

func readPage(c *checker, v value) Page {
	p := Page{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = &PageFields{Subtitle: c.optStr(acf.get("subtitle"))}
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return p
}

// parseOne validates a single-record document.
func parseOne[T any](kind Kind, data []byte, read func(*checker, value) T) (T, error) {
	var zero T
	root, issues := decode(data)
	if len(issues) > 0 {
		return zero, &ValidationError{Kind: kind, Issues: issues}
	}
	c := &checker{}
	out := read(c, root)
	if len(c.issues) > 0 {
		return zero, &ValidationError{Kind: kind, Issues: c.issues}
	}
	return out, nil
}

// parseList validates a collection document. Valid elements are always returned;
// the error, when non-nil, enumerates the issues of the rejected elements.
func parseList[T any](kind Kind, data []byte, read func(*checker, value) T) ([]T, error) {
	root, issues := decode(data)
	if len(issues) > 0 {
		return []T{}, &ValidationError{Kind: kind, Issues: issues}
	}
	c := &checker{}
	items, ok := c.array(root)
	if !ok {
		return []T{}, &ValidationError{Kind: kind, Issues: c.issues}
	}
	out := make([]T, 0, len(items))
	var rejected []Issue
	for i := range items {
		ec := &checker{}
		rec := read(ec, root.index(i))
		if len(ec.issues) > 0 {
			rejected = append(rejected, ec.issues...)
			continue
		}
		out = append(out, rec)
	}
	if len(rejected) > 0 {
		return out, &ValidationError{Kind: kind, Issues: rejected}
	}
	return out, nil
}

// ParsePage validates a generic page.
func ParsePage(data []byte) (Page, error) { return parseOne(KindPage, data, readPage) }

// ParsePages validates a list of generic pages.
func ParsePages(data []byte) ([]Page, error) { return parseList(KindPage, data, readPage) }

type parser struct {
	one  func([]byte) (any, error)
	list func([]byte) (any, error)
}

func register[T any](kind Kind, read func(*checker, value) T) parser {
	return parser{
		one: func(data []byte) (any, error) {
			v, err := parseOne(kind, data, read)
			return v, err
		},
		list: func(data []byte) (any, error) {
			v, err := parseList(kind, data, read)
			return v, err
		},
	}
}

var parsers = map[Kind]parser{
	KindPage:            register(KindPage, readPage),
	KindPost:            register(KindPost, readPost),
	KindNews:            register(KindNews, readNews),
	KindAlbum:           register(KindAlbum, readAlbum),
	KindEvent:           register(KindEvent, readEvent),
	KindGalleryPage:     register(KindGalleryPage, readGalleryPage),
	KindBioPage:         register(KindBioPage, readBioPage),
	KindHomePage:        register(KindHomePage, readHomePage),
	KindMomentsPage:     register(KindMomentsPage, readMomentsPage),
	KindMusicProduct:    register(KindMusicProduct, readMusicProduct),
	KindClothingProduct: register(KindClothingProduct, readClothingProduct),
}

// Kinds lists every registered content kind in lexical order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(parsers))
	for k := range parsers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse validates a single record of the given kind and returns the typed value
// (e.g. Album for KindAlbum).
func Parse(kind Kind, data []byte) (any, error) {
	p, ok := parsers[kind]
	if !ok {
		return nil, fmt.Errorf("content: unknown kind %q", kind)
	}
	return p.one(data)
}

// ParseList validates a collection of the given kind and returns a typed slice
// (e.g. []Album for KindAlbum).
func ParseList(kind Kind, data []byte) (any, error) {
	p, ok := parsers[kind]
	if !ok {
		return nil, fmt.Errorf("content: unknown kind %q", kind)
	}
	return p.list(data)
}
