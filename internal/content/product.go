package content

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Product holds the fields shared by every shop product. Content is optional
// upstream and is empty when absent.
type Product struct {
	ID             int64
	Slug           string
	Title          Rendered
	Content        Rendered
	FeaturedImages *FeaturedImages
	Categories     ProductCategories
}

// ProductCategories resolves the product_categories union: upstream sends either
// bare term IDs or expanded category records.
type ProductCategories struct {
	IDs        []int64
	Categories []Category
}

// Expanded reports whether full category records were provided.
func (pc ProductCategories) Expanded() bool { return len(pc.Categories) > 0 }

// MusicProduct is a record or merchandise item listed in the music shop.
type MusicProduct struct {
	Product
	Fields *MusicFields
}

// MusicFields is the superset of custom fields for music and merchandise products.
type MusicFields struct {
	Sale        bool
	Price       Price
	Description string
	Image       ImageRef
	SpotifyURL  string
	YouTubeURL  string

	// caps
	Color string
	Size  string
	Theme string
	Visor string

	// apparel
	Sizes    []string
	Colors   []string
	Material string
}

// ClothingProduct is an apparel item.
type ClothingProduct struct {
	Product
	Fields *ClothingFields
}

// ClothingFields are the custom fields for apparel.
type ClothingFields struct {
	Price       Price
	Description string
	Sizes       []string
	Colors      []string
	Image       ImageRef
}

// Price keeps the upstream price union (number or numeric string) until display.
type Price struct {
	Number float64
	Text   string
	IsText bool
	Set    bool
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Value coerces the price to a non-negative number. Strings are read with the
// same prefix rule as JavaScript's parseFloat; anything unparsable is 0.
func (p Price) Value() float64 {
	if !p.Set {
		return 0
	}
	n := p.Number
	if p.IsText {
		n = parseFloatPrefix(p.Text)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

func parseFloatPrefix(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (c *checker) product(v value) Product {
	if _, ok := c.object(v); !ok {
		return Product{}
	}
	p := Product{
		ID:    c.integer(v.get("id")),
		Slug:  c.str(v.get("slug")),
		Title: c.rendered(v.get("title")),
	}
	if content := v.get("content"); content.present {
		p.Content = c.rendered(content)
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	p.Categories = c.productCategories(v.get("product_categories"))
	return p
}

func (c *checker) productCategories(v value) ProductCategories {
	if !v.present {
		return ProductCategories{}
	}
	items, ok := c.array(v)
	if !ok {
		return ProductCategories{}
	}
	if len(items) == 0 {
		return ProductCategories{IDs: []int64{}}
	}
	if _, isID := items[0].(json.Number); isID {
		out := ProductCategories{IDs: make([]int64, 0, len(items))}
		for i := range items {
			out.IDs = append(out.IDs, c.integer(v.index(i)))
		}
		return out
	}
	out := ProductCategories{Categories: make([]Category, 0, len(items))}
	for i := range items {
		out.Categories = append(out.Categories, c.category(v.index(i)))
	}
	return out
}

func (c *checker) price(v value, allowText bool) Price {
	if !v.present {
		return Price{}
	}
	switch t := v.raw.(type) {
	case json.Number:
		return Price{Number: c.number(v), Set: true}
	case string:
		if allowText {
			return Price{Text: t, IsText: true, Set: true}
		}
	}
	if allowText {
		c.fail(v, "number or string")
	} else {
		c.fail(v, "number")
	}
	return Price{}
}

// listOrString reads the string-or-list union used for sizes and colours.
// A single string is split on commas.
func (c *checker) listOrString(v value) []string {
	if !v.present {
		return nil
	}
	if s, ok := v.raw.(string); ok {
		return splitList(s)
	}
	if _, ok := v.raw.([]any); ok {
		return c.stringList(v)
	}
	c.fail(v, "string or array of strings")
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *checker) optStringList(v value) []string {
	if !v.present {
		return nil
	}
	return c.stringList(v)
}

func readMusicProduct(c *checker, v value) MusicProduct {
	p := MusicProduct{Product: c.product(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = &MusicFields{
			Sale:        c.optBool(acf.get("sale")),
			Price:       c.price(acf.get("price"), true),
			Description: c.optStr(acf.get("description")),
			Image:       c.imageRef(acf.get("product_image")),
			SpotifyURL:  c.optStr(acf.get("url_spotify")),
			YouTubeURL:  c.optStr(acf.get("url_youtube")),
			Color:       c.optStr(acf.get("color")),
			Size:        c.optStr(acf.get("size")),
			Theme:       c.optStr(acf.get("theme")),
			Visor:       c.optStr(acf.get("visor")),
			Sizes:       c.listOrString(acf.get("sizes")),
			Colors:      c.listOrString(acf.get("colors")),
			Material:    c.optStr(acf.get("material")),
		}
	}
	return p
}

func readClothingProduct(c *checker, v value) ClothingProduct {
	p := ClothingProduct{Product: c.product(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = &ClothingFields{
			Price:       c.price(acf.get("price"), false),
			Description: c.optStr(acf.get("description")),
			Sizes:       c.optStringList(acf.get("sizes")),
			Colors:      c.optStringList(acf.get("colors")),
			Image:       c.imageRef(acf.get("product_image")),
		}
	}
	return p
}

// ParseMusicProduct validates a single music product.
func ParseMusicProduct(data []byte) (MusicProduct, error) {
	return parseOne(KindMusicProduct, data, readMusicProduct)
}

// ParseMusicProducts validates a list of music products.
func ParseMusicProducts(data []byte) ([]MusicProduct, error) {
	return parseList(KindMusicProduct, data, readMusicProduct)
}

// ParseClothingProduct validates a single clothing product.
func ParseClothingProduct(data []byte) (ClothingProduct, error) {
	return parseOne(KindClothingProduct, data, readClothingProduct)
}

// ParseClothingProducts validates a list of clothing products.
func ParseClothingProducts(data []byte) ([]ClothingProduct, error) {
	return parseList(KindClothingProduct, data, readClothingProduct)
}
