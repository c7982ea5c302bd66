// Package config loads runtime configuration from defaults, an optional .env
// file, the process environment and an optional site YAML file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "GRANRAH_WEB_"

	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultCMSTimeout    = 5 * time.Second
	defaultCacheTTL      = 5 * time.Minute
	defaultContactFormID = "198"
	defaultContactTag    = "wpcf7-123"
	defaultLogLevel      = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	CMS       CMSConfig
	Contact   ContactConfig
	Cache     CacheConfig
	Site      Site
	Log       LogConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures the HTTP server and the on-disk assets it serves.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TemplatesDir string
	PublicDir    string
	DevMode      bool
}

// CMSConfig points at the headless WordPress backend.
type CMSConfig struct {
	BaseURL    string // e.g. https://granrahback.cl; empty serves local content only
	Timeout    time.Duration
	ContentDir string // local markdown fallback
}

// ContactConfig addresses the Contact Form 7 endpoint.
type ContactConfig struct {
	BaseURL string // defaults to CMS.BaseURL
	FormID  string
	UnitTag string
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string // empty selects the in-memory cache
	RedisPassword string
	RedisDB       int
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string
}

// AnalyticsConfig enables client-side measurement. Empty IDs render nothing.
type AnalyticsConfig struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	Debug            bool
}

// Site holds the immutable identity of the band used across pages.
type Site struct {
	Name     string      `yaml:"name"`
	BaseURL  string      `yaml:"base_url"`
	WhatsApp string      `yaml:"whatsapp"`
	Email    string      `yaml:"email"`
	Location string      `yaml:"location"`
	Social   SocialLinks `yaml:"social"`
}

// SocialLinks are the band's profile URLs.
type SocialLinks struct {
	Spotify   string `yaml:"spotify"`
	Instagram string `yaml:"instagram"`
	YouTube   string `yaml:"youtube"`
	Facebook  string `yaml:"facebook"`
}

// DefaultSite returns the built-in site identity.
func DefaultSite() Site {
	return Site{
		Name:     "Gran Rah",
		BaseURL:  "https://granrah.cl",
		WhatsApp: "56949260725",
		Email:    "contacto@granrah.cl",
		Location: "Santiago, Chile",
		Social: SocialLinks{
			Spotify:   "https://open.spotify.com/artist/6JjrF0EnCW3Ylj9gj3FXWZ",
			Instagram: "https://www.instagram.com/granrah/",
			YouTube:   "https://www.youtube.com/@granrah",
			Facebook:  "https://www.facebook.com/granrah",
		},
	}
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects explicit values that take precedence over the environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv disables reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load assembles the configuration. Precedence: defaults < .env < OS env < WithEnvMap.
// The site identity starts from DefaultSite and is overlaid by GRANRAH_WEB_SITE_FILE.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		key = envPrefix + key
		if options.envMap != nil {
			if v, ok := options.envMap[key]; ok {
				return v, true
			}
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		if v, ok := dotEnv[key]; ok {
			return v, true
		}
		return "", false
	}

	cmsBase := strings.TrimRight(stringWithDefault(lookup, "CMS_BASE_URL", ""), "/")
	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "IDLE_TIMEOUT", defaultIdleTimeout),
			TemplatesDir: stringWithDefault(lookup, "TEMPLATES_DIR", "templates"),
			PublicDir:    stringWithDefault(lookup, "PUBLIC_DIR", "public"),
			DevMode:      boolWithDefault(lookup, "DEV", false),
		},
		CMS: CMSConfig{
			BaseURL:    cmsBase,
			Timeout:    durationWithDefault(lookup, "CMS_TIMEOUT", defaultCMSTimeout),
			ContentDir: stringWithDefault(lookup, "CONTENT_DIR", "content"),
		},
		Contact: ContactConfig{
			BaseURL: strings.TrimRight(stringWithDefault(lookup, "CONTACT_BASE_URL", cmsBase), "/"),
			FormID:  stringWithDefault(lookup, "CONTACT_FORM_ID", defaultContactFormID),
			UnitTag: stringWithDefault(lookup, "CONTACT_UNIT_TAG", defaultContactTag),
		},
		Cache: CacheConfig{
			TTL:           durationWithDefault(lookup, "CACHE_TTL", defaultCacheTTL),
			RedisAddr:     stringWithDefault(lookup, "REDIS_ADDR", ""),
			RedisPassword: stringWithDefault(lookup, "REDIS_PASSWORD", ""),
			RedisDB:       intWithDefault(lookup, "REDIS_DB", 0),
		},
		Site: DefaultSite(),
		Log:  LogConfig{Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "GA_MEASUREMENT_ID", ""),
			Debug:            boolWithDefault(lookup, "ANALYTICS_DEBUG", false),
		},
	}

	if path := stringWithDefault(lookup, "SITE_FILE", ""); path != "" {
		if cfg.Site, err = loadSite(path, cfg.Site); err != nil {
			return Config{}, err
		}
	}
	if phone := stringWithDefault(lookup, "WHATSAPP", ""); phone != "" {
		cfg.Site.WhatsApp = phone
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadSite overlays the YAML file at path onto base; keys absent from the file keep base values.
func loadSite(path string, base Site) (Site, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("config: read site file: %w", err)
	}
	site := base
	if err := yaml.Unmarshal(b, &site); err != nil {
		return Site{}, fmt.Errorf("config: parse site file %s: %w", path, err)
	}
	return site, nil
}

func validateConfig(cfg Config) error {
	var invalid []string
	if cfg.Server.Port == "" {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.CMS.BaseURL != "" && !isHTTPURL(cfg.CMS.BaseURL) {
		invalid = append(invalid, "CMS.BaseURL")
	}
	if cfg.CMS.Timeout <= 0 {
		invalid = append(invalid, "CMS.Timeout")
	}
	if cfg.Contact.BaseURL != "" && !isHTTPURL(cfg.Contact.BaseURL) {
		invalid = append(invalid, "Contact.BaseURL")
	}
	if strings.TrimSpace(cfg.Contact.FormID) == "" {
		invalid = append(invalid, "Contact.FormID")
	}
	if cfg.Cache.TTL < 0 {
		invalid = append(invalid, "Cache.TTL")
	}
	if !isDigits(cfg.Site.WhatsApp) {
		invalid = append(invalid, "Site.WhatsApp")
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
