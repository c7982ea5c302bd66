package content

// Album is a discography entry. Its custom fields are mandatory upstream.
type Album struct {
	Base
	Fields         AlbumFields
	FeaturedImages *FeaturedImages
}

// AlbumFields are the ACF fields of an album.
type AlbumFields struct {
	Subtitle      string
	ReleaseDate   string
	SpotifyURL    string
	AppleMusicURL string
	YouTubeURL    string
}

// Event is a concert or appearance. Date is the publication date; the event
// date lives in Fields.
type Event struct {
	Base
	Date           string
	Fields         *EventFields
	FeaturedImages *FeaturedImages
}

// EventFields are the ACF fields of an event.
type EventFields struct {
	Date       string // YYYYMMDD from the ACF date picker, or a formatted date
	Address    string
	Schedule   string
	TicketLink string
}

func readAlbum(c *checker, v value) Album {
	a := Album{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return a
	}
	acf := v.get("acf")
	if _, ok := acf.raw.(map[string]any); ok {
		a.Fields = AlbumFields{
			Subtitle:      c.optStr(acf.get("subtitle")),
			ReleaseDate:   c.optStr(acf.get("release_date")),
			SpotifyURL:    c.optStr(acf.get("spotify_url")),
			AppleMusicURL: c.optStr(acf.get("apple_music_url")),
			YouTubeURL:    c.optStr(acf.get("youtube_url")),
		}
	} else {
		// albums never use the empty-list sentinel
		c.fail(acf, "custom fields object")
	}
	a.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return a
}

func readEvent(c *checker, v value) Event {
	e := Event{Base: c.base(v)}
	if _, ok := v.raw.(map[string]any); !ok {
		return e
	}
	e.Date = c.str(v.get("date"))
	if acf := v.get("acf"); c.customFields(acf, true) {
		e.Fields = &EventFields{
			Date:       c.optStr(acf.get("date")),
			Address:    c.optStr(acf.get("address")),
			Schedule:   c.optStr(acf.get("schedule")),
			TicketLink: c.optStr(acf.get("link")),
		}
	}
	e.FeaturedImages = c.optFeaturedImages(v.get("featured_images"))
	return e
}

// ParseAlbum validates a single album.
func ParseAlbum(data []byte) (Album, error) { return parseOne(KindAlbum, data, readAlbum) }

// ParseAlbums validates a list of albums.
func ParseAlbums(data []byte) ([]Album, error) { return parseList(KindAlbum, data, readAlbum) }

// ParseEvent validates a single event.
func ParseEvent(data []byte) (Event, error) { return parseOne(KindEvent, data, readEvent) }

// ParseEvents validates a list of events.
func ParseEvents(data []byte) ([]Event, error) { return parseList(KindEvent, data, readEvent) }
