package handlers

import (
	"context"
	"fmt"
	"html/template"

	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/richtext"
	"granrah.cl/granrah-web/internal/seo"
)

// DiscCard is a discography entry with its streaming links.
type DiscCard struct {
	Title         string
	Subtitle      string
	Year          string
	SpotifyURL    string
	AppleMusicURL string
	YouTubeURL    string
	ImageURL      string
}

// MusicView is the view model of /musica: the discography plus records on sale.
type MusicView struct {
	Layout
	Discography []DiscCard
	Records     []content.AlbumView
}

// ProductDetailView is the view model of /musica/{slug}.
type ProductDetailView struct {
	Layout
	Album content.AlbumView
	Merch *MerchCard // set for merchandise items
	Body  template.HTML
}

func discCard(a content.Album) DiscCard {
	c := DiscCard{
		Title:         format.DecodeEntities(a.Title.Rendered),
		Subtitle:      a.Fields.Subtitle,
		Year:          format.Year(a.Fields.ReleaseDate),
		SpotifyURL:    a.Fields.SpotifyURL,
		AppleMusicURL: a.Fields.AppleMusicURL,
		YouTubeURL:    a.Fields.YouTubeURL,
	}
	if a.FeaturedImages != nil {
		c.ImageURL = a.FeaturedImages.Large.URL
	}
	return c
}

// isMerch reports whether a music-shop product is merchandise rather than a record.
func isMerch(p content.MusicProduct) bool {
	f := p.Fields
	if f == nil {
		return false
	}
	return f.Color != "" || f.Size != "" || f.Theme != "" || f.Visor != "" ||
		f.Material != "" || len(f.Sizes) > 0 || len(f.Colors) > 0
}

// LoadMusic builds the music page. Both the discography and the record shop must load.
func LoadMusic(ctx context.Context, src Source, env Env) (MusicView, error) {
	albumItems, err := src.Albums(ctx)
	albums, partialAlbums, err := collect(ctx, "albums", albumItems, err)
	if err != nil {
		return MusicView{}, err
	}
	productItems, err := src.MusicProducts(ctx)
	products, partialProducts, err := collect(ctx, "music", productItems, err)
	if err != nil {
		return MusicView{}, err
	}

	v := MusicView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/musica",
			Title:       "Música",
			Description: "Discografía de " + env.Site.Name + ": discos, singles y enlaces de streaming.",
		}),
		Discography: make([]DiscCard, 0, len(albums)),
		Records:     []content.AlbumView{},
	}
	for _, a := range albums {
		v.Discography = append(v.Discography, discCard(a))
	}
	for _, p := range products {
		if !isMerch(p) {
			v.Records = append(v.Records, content.BuildAlbumView(p, env.Site.WhatsApp))
		}
	}
	if partialAlbums || partialProducts {
		v.Notice = partialNotice
	}
	return v, nil
}

// LoadProductDetail builds the page of a single music-shop product.
func LoadProductDetail(ctx context.Context, src Source, env Env, slug string) (ProductDetailView, error) {
	p, err := src.MusicProduct(ctx, slug)
	if err := single("music", err); err != nil {
		return ProductDetailView{}, err
	}
	album := content.BuildAlbumView(p, env.Site.WhatsApp)
	album.Title = format.DecodeEntities(album.Title)
	path := "/musica/" + album.Slug
	description := album.Description
	if description == "" {
		description = format.Excerpt(p.Content.Rendered)
	}
	v := ProductDetailView{
		Layout: env.layout(ctx, PageInfo{
			Path:        path,
			Title:       album.Title,
			Description: description,
			Image:       album.ImageURL,
			Leaf:        album.Title,
		}),
		Album: album,
		Body:  richtext.Sanitize(p.Content.Rendered),
	}
	if isMerch(p) {
		card := merchCard(content.BuildMerchView(p), env.Site.WhatsApp)
		v.Merch = &card
		return v, nil
	}
	v.SEO.OG.Type = "music.album"
	v.SEO.AddJSONLD(seo.MusicAlbum(album.Title, env.Site.BaseURL+path, album.ImageURL, env.Site.Name, album.Price, album.ForSale))
	return v, nil
}

// MerchCard is a shop card with its WhatsApp inquiry link.
type MerchCard struct {
	content.MerchView
	WhatsAppURL string
}

func merchCard(m content.MerchView, phone string) MerchCard {
	m.Title = format.DecodeEntities(m.Title)
	msg := fmt.Sprintf("Hola! Me interesa \"%s\" por %s. ¿Está disponible?", m.Title, m.FormattedPrice)
	return MerchCard{
		MerchView:   m,
		WhatsAppURL: "https://wa.me/" + phone + "?text=" + content.EscapeComponent(msg),
	}
}

// ShopView is the view model of /tienda.
type ShopView struct {
	Layout
	Records []content.AlbumView
	Merch   []MerchCard
	Apparel []MerchCard
}

// LoadShop lists records for sale, music-shop merchandise and apparel.
func LoadShop(ctx context.Context, src Source, env Env) (ShopView, error) {
	productItems, err := src.MusicProducts(ctx)
	products, partialProducts, err := collect(ctx, "music", productItems, err)
	if err != nil {
		return ShopView{}, err
	}
	clothingItems, err := src.ClothingProducts(ctx)
	clothing, partialClothing, err := collect(ctx, "clothing", clothingItems, err)
	if err != nil {
		return ShopView{}, err
	}

	v := ShopView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/tienda",
			Title:       "Tienda",
			Description: "Discos, jockeys y ropa oficial de " + env.Site.Name + ".",
		}),
		Records: []content.AlbumView{},
		Merch:   []MerchCard{},
		Apparel: make([]MerchCard, 0, len(clothing)),
	}
	for _, p := range products {
		if isMerch(p) {
			v.Merch = append(v.Merch, merchCard(content.BuildMerchView(p), env.Site.WhatsApp))
			continue
		}
		if album := content.BuildAlbumView(p, env.Site.WhatsApp); album.ForSale {
			v.Records = append(v.Records, album)
		}
	}
	for _, p := range clothing {
		v.Apparel = append(v.Apparel, merchCard(content.BuildClothingView(p), env.Site.WhatsApp))
	}
	if partialProducts || partialClothing {
		v.Notice = partialNotice
	}
	return v, nil
}
