package handlers

import "granrah.cl/granrah-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// Enabled reports whether the measurement snippet should be rendered.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }

// AnalyticsFromConfig maps the loaded configuration onto the template view.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{
		GA4MeasurementID: cfg.GA4MeasurementID,
		Debug:            cfg.Debug,
	}
}
