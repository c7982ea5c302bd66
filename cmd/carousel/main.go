//go:build js && wasm

// Command carousel is the WebAssembly entry point that activates the album slider.
// Build: GOOS=js GOARCH=wasm go build -o public/assets/carousel.wasm ./cmd/carousel
package main

import (
	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/carousel"
	"granrah.cl/granrah-web/internal/observability"
)

// albumSlider matches the markup of the album section on the home page.
var albumSlider = carousel.Config{
	TrackSelector: ".albums-track",
	PrevButtonID:  "slider-prev",
	NextButtonID:  "slider-next",
	DotsSelector:  ".slider-dots",
	CardSelector:  ".album-card",
	CardWidth:     320,
	Gap:           24,
}

func main() {
	// stdout is the browser console under js/wasm
	logger, err := observability.NewLogger("info", "stdout")
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	c, err := carousel.New(carousel.NewBrowserDocument(), albumSlider)
	if err != nil {
		// pages without the album section simply skip the slider
		logger.Warn("album slider disabled", zap.Error(err))
		return
	}
	if err := c.Init(); err != nil {
		logger.Error("album slider init failed", zap.Error(err))
		return
	}
	// keep the registered callbacks alive
	select {}
}
