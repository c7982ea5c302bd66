package content

// Post is a regular blog post with its expanded categories.
type Post struct {
	Base
	Date           string
	Categories     []Category
	FeaturedImages *FeaturedImages
}

// News is a news entry; Fields is nil when the entry has no custom fields.
type News struct {
	Base
	Date           string
	Excerpt        Rendered
	Fields         *NewsFields
	FeaturedImages *FeaturedImages
}

// NewsFields are the ACF fields of a news entry.
type NewsFields struct {
	Featured bool // "destacada" upstream
}

// IsFeatured reports whether the entry is flagged as featured.
func (n News) IsFeatured() bool {
	return n.Fields != nil && n.Fields.Featured
}

func readPost(c *checker, v value) Post {
	p := Post{Base: c.base(v), Categories: []Category{}}
	if _, ok := v.raw.(map[string]any); !ok {
		return p
	}
	p.Date = c.str(v.get("date"))
	if cats := v.get("category_details"); cats.present {
		if items, ok := c.array(cats); ok {
			for i := range items {
				p.Categories = append(p.Categories, c.category(cats.index(i)))
			}
		}
	}
	p.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return p
}

func readNews(c *checker, v value) News {
	n := News{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return n
	}
	n.Date = c.str(v.get("date"))
	n.Excerpt = c.rendered(v.get("excerpt"))
	if acf := v.get("acf"); c.customFields(acf, false) {
		n.Fields = &NewsFields{Featured: c.optBool(acf.get("destacada"))}
	}
	n.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return n
}

// ParsePost validates a single post.
func ParsePost(data []byte) (Post, error) { return parseOne(KindPost, data, readPost) }

// ParsePosts validates a list of posts.
func ParsePosts(data []byte) ([]Post, error) { return parseList(KindPost, data, readPost) }

// ParseNews validates a single news entry.
func ParseNews(data []byte) (News, error) { return parseOne(KindNews, data, readNews) }

// ParseNewsList validates a list of news entries.
func ParseNewsList(data []byte) ([]News, error) { return parseList(KindNews, data, readNews) }
