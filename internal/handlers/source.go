package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/cms"
	"granrah.cl/granrah-web/internal/content"
	"granrah.cl/granrah-web/internal/observability"
)

// Source is the read side of the CMS. *cms.Client implements it.
type Source interface {
	News(ctx context.Context) ([]content.News, error)
	NewsItem(ctx context.Context, slug string) (content.News, error)
	Albums(ctx context.Context) ([]content.Album, error)
	Events(ctx context.Context) ([]content.Event, error)
	MusicProducts(ctx context.Context) ([]content.MusicProduct, error)
	MusicProduct(ctx context.Context, slug string) (content.MusicProduct, error)
	ClothingProducts(ctx context.Context) ([]content.ClothingProduct, error)
	HomePage(ctx context.Context) (content.HomePage, error)
	GalleryPage(ctx context.Context) (content.GalleryPage, error)
	BioPage(ctx context.Context) (content.BioPage, error)
	MomentsPage(ctx context.Context) (content.MomentsPage, error)
}

var _ Source = (*cms.Client)(nil)

// ErrUnavailable marks content that could not be loaded at all.
var ErrUnavailable = errors.New("handlers: content unavailable")

// ErrNotFound is returned when the requested entry does not exist.
var ErrNotFound = cms.ErrNotFound

func unavailable(section string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, section, err)
}

// collect applies the partial-list policy: entries rejected by validation are
// logged and dropped while at least one valid entry remains. Any other failure,
// or a list with no valid entry, makes the section unavailable.
func collect[T any](ctx context.Context, section string, items []T, err error) ([]T, bool, error) {
	if err == nil {
		return items, false, nil
	}
	var verr *content.ValidationError
	if errors.As(err, &verr) && len(items) > 0 {
		observability.FromContext(ctx).Warn("dropping invalid entries",
			zap.String("section", section),
			zap.Int("rendered", len(items)),
			zap.Strings("paths", verr.Paths()),
		)
		return items, true, nil
	}
	return nil, false, unavailable(section, err)
}

// single maps the error of a single-entry lookup.
func single(section string, err error) error {
	if err == nil || errors.Is(err, cms.ErrNotFound) {
		return err
	}
	return unavailable(section, err)
}
