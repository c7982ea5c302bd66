package content

import (
	"fmt"
	"net/url"
	"strings"

	"granrah.cl/granrah-web/internal/format"
)

const whatsAppBase = "https://wa.me/"

// AlbumView is the display-ready projection of a record sold through the music shop.
type AlbumView struct {
	Title          string
	Slug           string
	ForSale        bool
	Price          float64
	Description    string
	SpotifyURL     string
	YouTubeURL     string
	ImageURL       string
	FormattedPrice string
	WhatsAppURL    string
}

// BuildAlbumView derives the album card/detail view. phone is the WhatsApp number
// in international format without "+".
func BuildAlbumView(p MusicProduct, phone string) AlbumView {
	fields := MusicFields{}
	if p.Fields != nil {
		fields = *p.Fields
	}
	price := fields.Price.Value()
	formatted := format.FormatPrice(price)
	title := p.Title.Rendered
	msg := fmt.Sprintf("Hola! Me interesa el disco \"%s\" por %s. ¿Está disponible?", title, formatted)
	return AlbumView{
		Title:          title,
		Slug:           p.Slug,
		ForSale:        fields.Sale,
		Price:          price,
		Description:    fields.Description,
		SpotifyURL:     fields.SpotifyURL,
		YouTubeURL:     fields.YouTubeURL,
		ImageURL:       ResolveImageURL(fields.Image, p.FeaturedImages),
		FormattedPrice: formatted,
		WhatsAppURL:    whatsAppBase + phone + "?text=" + EscapeComponent(msg),
	}
}

var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent escapes s like JavaScript's encodeURIComponent: everything but
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func EscapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// MerchView is the display projection of a merchandise product.
type MerchView struct {
	Title          string
	Slug           string
	Description    string
	ImageURL       string
	Price          float64
	FormattedPrice string
	Attributes     []Attribute
	Sizes          []string
	Colors         []string
}

// Attribute is a labelled single-value product attribute.
type Attribute struct {
	Label string
	Value string
}

// BuildMerchView derives a shop card from a music-shop merchandise item.
func BuildMerchView(p MusicProduct) MerchView {
	fields := MusicFields{}
	if p.Fields != nil {
		fields = *p.Fields
	}
	v := MerchView{
		Title:       p.Title.Rendered,
		Slug:        p.Slug,
		Description: fields.Description,
		ImageURL:    ResolveImageURL(fields.Image, p.FeaturedImages),
		Price:       fields.Price.Value(),
		Sizes:       nonNil(fields.Sizes),
		Colors:      nonNil(fields.Colors),
	}
	v.FormattedPrice = format.FormatPrice(v.Price)
	for _, a := range []Attribute{
		{"Color", fields.Color},
		{"Talla", fields.Size},
		{"Temática", fields.Theme},
		{"Visera", fields.Visor},
		{"Material", fields.Material},
	} {
		if a.Value != "" {
			v.Attributes = append(v.Attributes, a)
		}
	}
	return v
}

// BuildClothingView derives a shop card from an apparel item.
func BuildClothingView(p ClothingProduct) MerchView {
	fields := ClothingFields{}
	if p.Fields != nil {
		fields = *p.Fields
	}
	v := MerchView{
		Title:       p.Title.Rendered,
		Slug:        p.Slug,
		Description: fields.Description,
		ImageURL:    ResolveImageURL(fields.Image, p.FeaturedImages),
		Price:       fields.Price.Value(),
		Sizes:       nonNil(fields.Sizes),
		Colors:      nonNil(fields.Colors),
	}
	v.FormattedPrice = format.FormatPrice(v.Price)
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
