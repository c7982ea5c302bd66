package handlers

import (
	"context"
	"errors"
	"html/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"granrah.cl/granrah-web/internal/cms"
	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/observability"
	"granrah.cl/granrah-web/internal/richtext"
	"granrah.cl/granrah-web/internal/seo"
)

const (
	homeNewsLimit   = 3
	homeEventsLimit = 3
)

// Hero is the title block at the top of content pages.
type Hero struct {
	Title    string
	ImageURL string
	Body     template.HTML
}

// HomeView is the view model for the landing page.
type HomeView struct {
	Layout
	Hero   Hero
	Albums []content.AlbumView // album slider cards
	News   []NewsCard
	Events []EventCard
}

// LoadHome fetches the home page and its teaser sections concurrently. Only the
// page itself is required; a failing section is logged and rendered empty.
func LoadHome(ctx context.Context, src Source, env Env) (HomeView, error) {
	logger := observability.FromContext(ctx)
	var (
		page     content.HomePage
		products []content.MusicProduct
		news     []content.News
		events   []content.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	optional := func(section string, load func() error) func() error {
		return func() error {
			if err := load(); err != nil && gctx.Err() == nil {
				logger.Warn("home section unavailable", zap.String("section", section), zap.Error(err))
			}
			return nil
		}
	}

	g.Go(func() error {
		p, err := src.HomePage(gctx)
		if errors.Is(err, cms.ErrNotFound) {
			return nil
		}
		page = p
		return single("home", err)
	})
	g.Go(optional("albums", func() error {
		items, err := src.MusicProducts(gctx)
		products, _, err = collect(gctx, "albums", items, err)
		return err
	}))
	g.Go(optional("news", func() error {
		items, err := src.News(gctx)
		news, _, err = collect(gctx, "news", items, err)
		return err
	}))
	g.Go(optional("events", func() error {
		items, err := src.Events(gctx)
		events, _, err = collect(gctx, "events", items, err)
		return err
	}))
	if err := g.Wait(); err != nil {
		return HomeView{}, err
	}

	hero := Hero{Title: env.Site.Name}
	if page.Fields != nil && page.Fields.Title != "" {
		hero.Title = page.Fields.Title
	}
	var image content.ImageRef
	if page.Fields != nil {
		image = page.Fields.Image
	}
	hero.ImageURL = content.ResolveImageURL(image, page.FeaturedImages)
	hero.Body = richtext.Sanitize(page.Content.Rendered)

	v := HomeView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/",
			Description: format.Excerpt(page.Content.Rendered),
			Image:       hero.ImageURL,
		}),
		Hero:   hero,
		Albums: []content.AlbumView{},
		News:   headlines(news, homeNewsLimit),
	}
	for _, p := range products {
		if !isMerch(p) {
			v.Albums = append(v.Albums, content.BuildAlbumView(p, env.Site.WhatsApp))
		}
	}
	v.Events, _ = splitEvents(events, env.now())
	if len(v.Events) > homeEventsLimit {
		v.Events = v.Events[:homeEventsLimit]
	}

	s := env.Site
	v.SEO.AddJSONLD(seo.WebSite(s.Name, s.BaseURL))
	v.SEO.AddJSONLD(seo.MusicGroup(s.Name, s.BaseURL, hero.ImageURL, "Hip hop",
		[]string{s.Social.Spotify, s.Social.Instagram, s.Social.YouTube, s.Social.Facebook}))
	return v, nil
}

// headlines puts featured entries first, keeping upstream order otherwise.
func headlines(news []content.News, limit int) []NewsCard {
	out := make([]NewsCard, 0, limit)
	for _, featured := range []bool{true, false} {
		for _, n := range news {
			if len(out) == limit {
				return out
			}
			if n.IsFeatured() == featured {
				out = append(out, newsCard(n))
			}
		}
	}
	return out
}
