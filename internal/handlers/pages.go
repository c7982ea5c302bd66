package handlers

import (
	"context"

	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/richtext"
)

// GalleryItem is one photo with its renditions.
type GalleryItem struct {
	Thumb  string
	Large  string
	Full   string
	Width  float64
	Height float64
}

// GalleryView is the view model of /galeria.
type GalleryView struct {
	Layout
	Hero   Hero
	Images []GalleryItem
}

// SocialLink is a labelled profile URL.
type SocialLink struct {
	Name string
	URL  string
}

// BioView is the view model of /biografia.
type BioView struct {
	Layout
	Hero     Hero
	Subtitle string
	Short    string
	Social   []SocialLink
}

// MomentsView is the view model of /momentos.
type MomentsView struct {
	Layout
	Hero    Hero
	Moments []content.Moment
}

func hero(base content.Base, fields *content.HeroFields, featured *content.FeaturedImages, fallbackTitle string) Hero {
	h := Hero{Title: format.DecodeEntities(base.Title.Rendered), Body: richtext.Sanitize(base.Content.Rendered)}
	var image content.ImageRef
	if fields != nil {
		image = fields.Image
		if fields.Title != "" {
			h.Title = fields.Title
		}
	}
	if h.Title == "" {
		h.Title = fallbackTitle
	}
	h.ImageURL = content.ResolveImageURL(image, featured)
	return h
}

// LoadGallery builds the photo gallery.
func LoadGallery(ctx context.Context, src Source, env Env) (GalleryView, error) {
	page, err := src.GalleryPage(ctx)
	if err := single("gallery", err); err != nil {
		return GalleryView{}, err
	}
	h := hero(page.Base, page.Fields, page.FeaturedImages, "Galería")
	v := GalleryView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/galeria",
			Title:       h.Title,
			Description: format.Excerpt(page.Content.Rendered),
			Image:       h.ImageURL,
		}),
		Hero:   h,
		Images: make([]GalleryItem, 0, len(page.Gallery)),
	}
	for _, img := range page.Gallery {
		if img.Full.URL == "" && img.Large.URL == "" {
			continue
		}
		item := GalleryItem{
			Thumb:  img.Medium.URL,
			Large:  img.Large.URL,
			Full:   img.Full.URL,
			Width:  img.Large.Width,
			Height: img.Large.Height,
		}
		if item.Thumb == "" {
			item.Thumb = img.Thumbnail.URL
		}
		if item.Full == "" {
			item.Full = item.Large
		}
		v.Images = append(v.Images, item)
	}
	return v, nil
}

// LoadBio builds the biography. Profile links missing from the page fall back
// to the site's configured social links.
func LoadBio(ctx context.Context, src Source, env Env) (BioView, error) {
	page, err := src.BioPage(ctx)
	if err := single("bio", err); err != nil {
		return BioView{}, err
	}
	h := hero(page.Base, nil, page.FeaturedImages, "Biografía")
	f := content.BioFields{}
	if page.Fields != nil {
		f = *page.Fields
	}
	social := env.Site.Social
	v := BioView{
		Hero:     h,
		Subtitle: f.Subtitle,
		Short:    f.BioShort,
		Social: socialLinks(
			SocialLink{"Spotify", firstNonEmpty(f.Spotify, social.Spotify)},
			SocialLink{"Instagram", firstNonEmpty(f.Instagram, social.Instagram)},
			SocialLink{"YouTube", firstNonEmpty(f.YouTube, social.YouTube)},
			SocialLink{"Facebook", firstNonEmpty(f.Facebook, social.Facebook)},
			SocialLink{"Twitter", f.Twitter},
		),
	}
	description := f.BioShort
	if description == "" {
		description = format.Excerpt(page.Content.Rendered)
	}
	v.Layout = env.layout(ctx, PageInfo{Path: "/biografia", Title: h.Title, Description: description, Image: h.ImageURL})
	return v, nil
}

// LoadMoments builds the moments page; moments keep their natural key order.
func LoadMoments(ctx context.Context, src Source, env Env) (MomentsView, error) {
	page, err := src.MomentsPage(ctx)
	if err := single("moments", err); err != nil {
		return MomentsView{}, err
	}
	var hf *content.HeroFields
	moments := []content.Moment{}
	if page.Fields != nil {
		hf = &content.HeroFields{Title: page.Fields.Title, Image: page.Fields.Image}
		moments = page.Fields.Moments
	}
	h := hero(page.Base, hf, page.FeaturedImages, "Momentos")
	return MomentsView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/momentos",
			Title:       h.Title,
			Description: format.Excerpt(page.Content.Rendered),
			Image:       h.ImageURL,
		}),
		Hero:    h,
		Moments: moments,
	}, nil
}

func socialLinks(links ...SocialLink) []SocialLink {
	out := make([]SocialLink, 0, len(links))
	for _, l := range links {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
