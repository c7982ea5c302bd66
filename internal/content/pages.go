package content

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// HeroFields are the title/image custom fields shared by the landing-style pages.
type HeroFields struct {
	Title string
	Image ImageRef
}

// HomePage is the landing page.
type HomePage struct {
	Base
	Fields         *HeroFields
	FeaturedImages *FeaturedImages
}

// GalleryPage is the photo gallery page. Gallery is never nil.
type GalleryPage struct {
	Base
	Fields         *HeroFields
	FeaturedImages *FeaturedImages
	Gallery        []GalleryImage
}

// BioPage is the biography page.
type BioPage struct {
	Base
	Fields         *BioFields
	FeaturedImages *FeaturedImages
}

// BioFields are the ACF fields of the biography page.
type BioFields struct {
	Subtitle  string
	BioShort  string
	Instagram string
	Spotify   string
	YouTube   string
	Twitter   string
	Facebook  string
}

// MomentsPage is the "moments" page: hero fields plus an open-ended set of moments.
type MomentsPage struct {
	Base
	Fields         *MomentsFields
	FeaturedImages *FeaturedImages
}

// MomentsFields hold the fixed hero keys and every extra key as a Moment.
type MomentsFields struct {
	Title   string
	Image   ImageRef
	Moments []Moment
}

// Moment is a single highlighted memory on the moments page.
type Moment struct {
	Key         string // upstream field name, e.g. "moment_3"
	Title       string
	Description string
	Image       string
}

func (c *checker) heroFields(acf value) *HeroFields {
	return &HeroFields{
		Title: c.optStr(acf.get("title")),
		Image: c.imageRef(acf.get("image")),
	}
}

func readHomePage(c *checker, v value) HomePage {
	p := HomePage{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = c.heroFields(acf)
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return p
}

func readGalleryPage(c *checker, v value) GalleryPage {
	p := GalleryPage{Base: c.base(v), Gallery: []GalleryImage{}}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = c.heroFields(acf)
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	p.Gallery = c.gallery(v.get("gallery"))
	return p
}

func readBioPage(c *checker, v value) BioPage {
	p := BioPage{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		p.Fields = &BioFields{
			Subtitle:  c.optStr(acf.get("subtitle")),
			BioShort:  c.optStr(acf.get("bio_short")),
			Instagram: c.optStr(acf.get("social_instagram")),
			Spotify:   c.optStr(acf.get("social_spotify")),
			YouTube:   c.optStr(acf.get("social_youtube")),
			Twitter:   c.optStr(acf.get("social_twitter")),
			Facebook:  c.optStr(acf.get("social_facebook")),
		}
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return p
}

func readMomentsPage(c *checker, v value) MomentsPage {
	p := MomentsPage{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	if acf := v.get("acf"); c.customFields(acf, false) {
		hero := c.heroFields(acf)
		fields := &MomentsFields{Title: hero.Title, Image: hero.Image, Moments: []Moment{}}
		m := acf.raw.(map[string]any)
		keys := make([]string, 0, len(m))
		for k := range m {
			if k == "title" || k == "image" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
		for _, k := range keys {
			mv := acf.get(k)
			if _, ok := c.object(mv); !ok {
				continue
			}
			fields.Moments = append(fields.Moments, Moment{
				Key:         k,
				Title:       c.str(mv.get("title")),
				Description: c.str(mv.get("description")),
				Image:       c.str(mv.get("image")),
			})
		}
		p.Fields = fields
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return p
}

// naturalLess orders keys so that embedded numbers compare numerically
// ("moment_2" < "moment_10").
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ra, rb := rune(a[0]), rune(b[0])
		if unicode.IsDigit(ra) && unicode.IsDigit(rb) {
			na, restA := leadingDigits(a)
			nb, restB := leadingDigits(b)
			ia, _ := strconv.ParseUint(na, 10, 64)
			ib, _ := strconv.ParseUint(nb, 10, 64)
			if ia != ib {
				return ia < ib
			}
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			a, b = restA, restB
			continue
		}
		if ra != rb {
			return ra < rb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func leadingDigits(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// ParseHomePage validates the home page.
func ParseHomePage(data []byte) (HomePage, error) {
	return parseOne(KindHomePage, data, readHomePage)
}

// ParseHomePages validates a pages?slug= lookup for the home page.
func ParseHomePages(data []byte) ([]HomePage, error) {
	return parseList(KindHomePage, data, readHomePage)
}

// ParseGalleryPage validates the gallery page.
func ParseGalleryPage(data []byte) (GalleryPage, error) {
	return parseOne(KindGalleryPage, data, readGalleryPage)
}

// ParseGalleryPages validates a pages?slug= lookup for the gallery page.
func ParseGalleryPages(data []byte) ([]GalleryPage, error) {
	return parseList(KindGalleryPage, data, readGalleryPage)
}

// ParseBioPage validates the biography page.
func ParseBioPage(data []byte) (BioPage, error) {
	return parseOne(KindBioPage, data, readBioPage)
}

// ParseBioPages validates a pages?slug= lookup for the biography page.
func ParseBioPages(data []byte) ([]BioPage, error) {
	return parseList(KindBioPage, data, readBioPage)
}

// ParseMomentsPage validates the moments page.
func ParseMomentsPage(data []byte) (MomentsPage, error) {
	return parseOne(KindMomentsPage, data, readMomentsPage)
}

// ParseMomentsPages validates a pages?slug= lookup for the moments page.
func ParseMomentsPages(data []byte) ([]MomentsPage, error) {
	return parseList(KindMomentsPage, data, readMomentsPage)
}
