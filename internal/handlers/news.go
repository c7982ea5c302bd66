package handlers

import (
	"context"
	"html/template"

	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/richtext"
	"granrah.cl/granrah-web/internal/seo"
)

// NewsCard is a news teaser.
type NewsCard struct {
	Title    string
	Href     string
	Date     string
	ISODate  string
	Excerpt  string
	ImageURL string
	Featured bool
}

// NewsListView is the view model of /noticias.
type NewsListView struct {
	Layout
	Featured []NewsCard
	Items    []NewsCard
}

// NewsDetailView is the view model of /noticias/{slug}.
type NewsDetailView struct {
	Layout
	Card NewsCard
	Body template.HTML
}

func newsCard(n content.News) NewsCard {
	excerpt := n.Excerpt.Rendered
	if excerpt == "" {
		excerpt = n.Content.Rendered
	}
	c := NewsCard{
		Title:    format.DecodeEntities(n.Title.Rendered),
		Href:     "/noticias/" + n.Slug,
		Date:     format.FormatShortDate(n.Date),
		Excerpt:  format.Excerpt(excerpt),
		Featured: n.IsFeatured(),
	}
	if t, ok := format.ParseEventDate(n.Date); ok {
		c.ISODate = t.Format("2006-01-02")
	}
	if n.FeaturedImages != nil {
		c.ImageURL = n.FeaturedImages.Large.URL
	}
	return c
}

// LoadNewsList builds the news index; featured entries are listed separately.
func LoadNewsList(ctx context.Context, src Source, env Env) (NewsListView, error) {
	items, err := src.News(ctx)
	news, partial, err := collect(ctx, "news", items, err)
	if err != nil {
		return NewsListView{}, err
	}
	v := NewsListView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/noticias",
			Title:       "Noticias",
			Description: "Noticias, lanzamientos y novedades de " + env.Site.Name + ".",
		}),
		Featured: []NewsCard{},
		Items:    make([]NewsCard, 0, len(news)),
	}
	for _, n := range news {
		if n.IsFeatured() {
			v.Featured = append(v.Featured, newsCard(n))
			continue
		}
		v.Items = append(v.Items, newsCard(n))
	}
	if partial {
		v.Notice = partialNotice
	}
	return v, nil
}

// LoadNewsDetail builds a single news page. A missing slug yields ErrNotFound.
func LoadNewsDetail(ctx context.Context, src Source, env Env, slug string) (NewsDetailView, error) {
	n, err := src.NewsItem(ctx, slug)
	if err := single("news", err); err != nil {
		return NewsDetailView{}, err
	}
	card := newsCard(n)
	v := NewsDetailView{
		Layout: env.layout(ctx, PageInfo{
			Path:        card.Href,
			Title:       card.Title,
			Description: card.Excerpt,
			Image:       card.ImageURL,
			Leaf:        card.Title,
		}),
		Card: card,
		Body: richtext.Sanitize(n.Content.Rendered),
	}
	v.SEO.OG.Type = "article"
	v.SEO.AddJSONLD(seo.NewsArticle(card.Title, env.Site.BaseURL+card.Href, card.ImageURL, env.Site.Name, card.ISODate))
	return v, nil
}
