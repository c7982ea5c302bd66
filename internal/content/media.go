package content

import "encoding/json"

// Image is a single rendition of an uploaded media item.
type Image struct {
	URL    string
	Width  float64
	Height float64
}

// FeaturedImages is the five-size bundle WordPress attaches to most entities.
type FeaturedImages struct {
	Thumbnail   Image
	Medium      Image
	MediumLarge Image
	Large       Image
	Full        Image
}

// GalleryImage is one entry of a gallery page; the gallery endpoint omits medium_large.
type GalleryImage struct {
	Thumbnail Image
	Medium    Image
	Large     Image
	Full      Image
}

// ImageRef is a custom-field image. Upstream sends either the processed size bundle,
// a legacy attachment ID, or false; only the bundle is displayable.
type ImageRef struct {
	Sizes        *FeaturedImages
	AttachmentID int64
}

// Large returns the large rendition when the reference carries processed sizes.
func (r ImageRef) Large() (Image, bool) {
	if r.Sizes == nil {
		return Image{}, false
	}
	return r.Sizes.Large, true
}

// ResolveImageURL applies the display fallback chain: the custom-field image,
// then featured_images.large, then the empty string.
func ResolveImageURL(custom ImageRef, featured *FeaturedImages) string {
	if img, ok := custom.Large(); ok && img.URL != "" {
		return img.URL
	}
	if featured != nil {
		return featured.Large.URL
	}
	return ""
}

func (c *checker) image(v value) Image {
	if _, ok := c.object(v); !ok {
		return Image{}
	}
	return Image{
		URL:    c.str(v.get("url")),
		Width:  c.number(v.get("width")),
		Height: c.number(v.get("height")),
	}
}

func (c *checker) featuredImages(v value) FeaturedImages {
	if _, ok := c.object(v); !ok {
		return FeaturedImages{}
	}
	return FeaturedImages{
		Thumbnail:   c.image(v.get("thumbnail")),
		Medium:      c.image(v.get("medium")),
		MediumLarge: c.image(v.get("medium_large")),
		Large:       c.image(v.get("large")),
		Full:        c.image(v.get("full")),
	}
}

// optFeaturedImages reads the featured_images union: absent, boolean sentinel, or bundle.
func (c *checker) optFeaturedImages(v value) *FeaturedImages {
	if !v.present {
		return nil
	}
	switch v.raw.(type) {
	case bool:
		return nil
	case map[string]any:
		fi := c.featuredImages(v)
		return &fi
	}
	c.fail(v, "featured images object or boolean")
	return nil
}

func (c *checker) galleryImage(v value) GalleryImage {
	if _, ok := c.object(v); !ok {
		return GalleryImage{}
	}
	return GalleryImage{
		Thumbnail: c.image(v.get("thumbnail")),
		Medium:    c.image(v.get("medium")),
		Large:     c.image(v.get("large")),
		Full:      c.image(v.get("full")),
	}
}

// gallery reads the gallery list, defaulting to an empty list when absent.
func (c *checker) gallery(v value) []GalleryImage {
	if !v.present {
		return []GalleryImage{}
	}
	items, ok := c.array(v)
	if !ok {
		return []GalleryImage{}
	}
	out := make([]GalleryImage, 0, len(items))
	for i := range items {
		out = append(out, c.galleryImage(v.index(i)))
	}
	return out
}

// imageRef reads the custom-field image union.
func (c *checker) imageRef(v value) ImageRef {
	if !v.present {
		return ImageRef{}
	}
	switch v.raw.(type) {
	case bool:
		return ImageRef{}
	case map[string]any:
		fi := c.featuredImages(v)
		return ImageRef{Sizes: &fi}
	}
	if _, isNumber := v.raw.(json.Number); isNumber {
		return ImageRef{AttachmentID: c.integer(v)}
	}
	c.fail(v, "image sizes object, attachment id or boolean")
	return ImageRef{}
}
