// Package carousel implements the paged album slider. All DOM access goes
// through Document and Element so the paging logic runs without a browser.
package carousel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingElement is returned by New when a required handle cannot be resolved.
	ErrMissingElement = errors.New("carousel: required element not found")
	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("carousel: already initialized")
)

// SwipeThreshold is the horizontal distance in pixels a touch must travel,
// strictly, to count as a swipe.
const SwipeThreshold = 50

// Document is the part of the page the carousel needs.
// Query and ByID return nil when nothing matches.
type Document interface {
	Query(selector string) Element
	ByID(id string) Element
	CreateElement(tag string) Element
	ViewportWidth() int
}

// Element is a DOM node handle.
type Element interface {
	QueryAll(selector string) []Element
	AddListener(event string, fn func(Event))
	SetStyle(property, value string)
	SetDisabled(disabled bool)
	ToggleClass(class string, on bool)
	SetAttribute(name, value string)
	AppendChild(child Element)
}

// Event carries the pointer position of a click or touch.
type Event interface {
	ClientX() float64
}

// Config names the elements and card geometry. Every field is supplied by the caller.
type Config struct {
	TrackSelector string
	PrevButtonID  string
	NextButtonID  string
	DotsSelector  string
	CardSelector  string // matched inside the track
	CardWidth     int
	Gap           int
}

// State is a snapshot of the visual state after the last transition.
type State struct {
	Page         int
	TotalPages   int
	Visible      int
	Offset       int
	ActiveDot    int
	PrevDisabled bool
	NextDisabled bool
}

// Carousel pages a fixed set of cards. It is not safe for concurrent use; the
// browser event loop drives it from a single goroutine.
type Carousel struct {
	doc   Document
	track Element
	prev  Element
	next  Element
	dots  Element

	dotButtons []Element
	cardCount  int
	step       int // card width plus gap
	visible    int
	total      int
	page       int

	touchStartX float64
	initialized bool
}

// VisibleCards returns how many cards fit side by side at a viewport width.
func VisibleCards(viewportWidth int) int {
	switch {
	case viewportWidth >= 1024:
		return 3
	case viewportWidth >= 768:
		return 2
	default:
		return 1
	}
}

// New resolves every handle and computes the page layout. The number of visible
// cards is fixed here from the current viewport width and is not recomputed on resize.
func New(doc Document, cfg Config) (*Carousel, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document", ErrMissingElement)
	}
	c := &Carousel{doc: doc}
	if c.track = doc.Query(cfg.TrackSelector); c.track == nil {
		return nil, fmt.Errorf("%w: track %q", ErrMissingElement, cfg.TrackSelector)
	}
	if c.prev = doc.ByID(cfg.PrevButtonID); c.prev == nil {
		return nil, fmt.Errorf("%w: button #%s", ErrMissingElement, cfg.PrevButtonID)
	}
	if c.next = doc.ByID(cfg.NextButtonID); c.next == nil {
		return nil, fmt.Errorf("%w: button #%s", ErrMissingElement, cfg.NextButtonID)
	}
	if c.dots = doc.Query(cfg.DotsSelector); c.dots == nil {
		return nil, fmt.Errorf("%w: dots %q", ErrMissingElement, cfg.DotsSelector)
	}
	c.cardCount = len(c.track.QueryAll(cfg.CardSelector))
	if c.cardCount == 0 {
		return nil, fmt.Errorf("%w: no cards match %q", ErrMissingElement, cfg.CardSelector)
	}
	c.step = cfg.CardWidth + cfg.Gap
	c.visible = VisibleCards(doc.ViewportWidth())
	c.total = int(math.Ceil(float64(c.cardCount) / float64(c.visible)))
	return c, nil
}

// Init builds the dots, attaches listeners and renders page 0.
func (c *Carousel) Init() error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.initialized = true
	c.dotButtons = make([]Element, 0, c.total)
	for i := 0; i < c.total; i++ {
		page := i
		dot := c.doc.CreateElement("button")
		dot.ToggleClass("slider-dot", true)
		dot.SetAttribute("aria-label", fmt.Sprintf("Ir a slide %d", i+1))
		dot.AddListener("click", func(Event) { c.GoToPage(page) })
		c.dots.AppendChild(dot)
		c.dotButtons = append(c.dotButtons, dot)
	}
	c.prev.AddListener("click", func(Event) { c.Previous() })
	c.next.AddListener("click", func(Event) { c.Next() })
	c.track.AddListener("touchstart", func(e Event) { c.TouchStart(e.ClientX()) })
	c.track.AddListener("touchend", func(e Event) { c.TouchEnd(e.ClientX()) })
	c.render()
	return nil
}

// GoToPage moves to page, clamped to the valid range.
func (c *Carousel) GoToPage(page int) {
	c.page = max(0, min(page, c.total-1))
	c.render()
}

// Next advances one page; it does nothing on the last page.
func (c *Carousel) Next() {
	if c.page < c.total-1 {
		c.page++
		c.render()
	}
}

// Previous goes back one page; it does nothing on the first page.
func (c *Carousel) Previous() {
	if c.page > 0 {
		c.page--
		c.render()
	}
}

// TouchStart records where a swipe began.
func (c *Carousel) TouchStart(x float64) { c.touchStartX = x }

// TouchEnd completes a swipe: leftward advances, rightward goes back.
func (c *Carousel) TouchEnd(x float64) {
	switch {
	case c.touchStartX-x > SwipeThreshold:
		c.Next()
	case x-c.touchStartX > SwipeThreshold:
		c.Previous()
	}
}

// State reports the current page and the derived visual state.
func (c *Carousel) State() State {
	return State{
		Page:         c.page,
		TotalPages:   c.total,
		Visible:      c.visible,
		Offset:       c.offset(),
		ActiveDot:    c.page,
		PrevDisabled: c.page == 0,
		NextDisabled: c.page == c.total-1,
	}
}

func (c *Carousel) offset() int {
	return -c.page * c.step * c.visible
}

func (c *Carousel) render() {
	c.track.SetStyle("transform", fmt.Sprintf("translateX(%dpx)", c.offset()))
	for i, dot := range c.dotButtons {
		dot.ToggleClass("active", i == c.page)
	}
	c.prev.SetDisabled(c.page == 0)
	c.next.SetDisabled(c.page == c.total-1)
}
