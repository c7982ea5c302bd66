package handlers

import (
	"context"
	"html/template"
	"sort"
	"time"

	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/format"
	"granrah.cl/granrah-web/internal/richtext"
	"granrah.cl/granrah-web/internal/seo"
)

// EventCard is a concert listing.
type EventCard struct {
	Title       string
	Slug        string
	Date        string // long Spanish date, or the raw value when unparsable
	Badge       format.EventDate
	HasDate     bool
	ISODate     string
	Address     string
	Schedule    string
	TicketLink  string
	ImageURL    string
	Description template.HTML

	when time.Time
}

// EventsView is the view model of /eventos.
type EventsView struct {
	Layout
	Upcoming []EventCard
	Past     []EventCard
}

func eventCard(e content.Event) EventCard {
	c := EventCard{
		Title:       format.DecodeEntities(e.Title.Rendered),
		Slug:        e.Slug,
		Description: richtext.Sanitize(e.Content.Rendered),
	}
	if e.Fields != nil {
		c.Date = format.FormatDate(e.Fields.Date)
		c.Address = e.Fields.Address
		c.Schedule = e.Fields.Schedule
		c.TicketLink = e.Fields.TicketLink
		c.Badge, c.HasDate = format.FormatEventDate(e.Fields.Date)
		if t, ok := format.ParseEventDate(e.Fields.Date); ok {
			c.when = t
			c.ISODate = t.Format("2006-01-02")
		}
	}
	if e.FeaturedImages != nil {
		c.ImageURL = e.FeaturedImages.Large.URL
	}
	return c
}

// splitEvents separates upcoming concerts (today included, soonest first) from
// past ones (most recent first). Undated events are listed last among upcoming.
func splitEvents(events []content.Event, now time.Time) (upcoming, past []EventCard) {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	upcoming, past = []EventCard{}, []EventCard{}
	for _, e := range events {
		c := eventCard(e)
		if c.HasDate && c.when.Before(today) {
			past = append(past, c)
			continue
		}
		upcoming = append(upcoming, c)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		return a.when.Before(b.when)
	})
	sort.SliceStable(past, func(i, j int) bool { return past[i].when.After(past[j].when) })
	return upcoming, past
}

// LoadEvents builds the concert calendar.
func LoadEvents(ctx context.Context, src Source, env Env) (EventsView, error) {
	items, err := src.Events(ctx)
	events, partial, err := collect(ctx, "events", items, err)
	if err != nil {
		return EventsView{}, err
	}
	v := EventsView{
		Layout: env.layout(ctx, PageInfo{
			Path:        "/eventos",
			Title:       "Eventos",
			Description: "Próximos conciertos y presentaciones de " + env.Site.Name + ".",
		}),
	}
	v.Upcoming, v.Past = splitEvents(events, env.now())
	for _, c := range v.Upcoming {
		if c.HasDate {
			v.SEO.AddJSONLD(seo.MusicEvent(c.Title, c.ISODate, c.Address, c.TicketLink, env.Site.Name))
		}
	}
	if partial {
		v.Notice = partialNotice
	}
	return v, nil
}
