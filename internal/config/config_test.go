package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.CMS.Timeout != 5*time.Second {
		t.Errorf("unexpected cms timeout: %s", cfg.CMS.Timeout)
	}
	if cfg.CMS.BaseURL != "" || cfg.Contact.BaseURL != "" {
		t.Errorf("expected local-only defaults, got cms=%q contact=%q", cfg.CMS.BaseURL, cfg.Contact.BaseURL)
	}
	if cfg.Contact.FormID != "198" || cfg.Contact.UnitTag != "wpcf7-123" {
		t.Errorf("unexpected contact defaults: %+v", cfg.Contact)
	}
	if cfg.Site.WhatsApp != "56949260725" {
		t.Errorf("unexpected whatsapp default: %s", cfg.Site.WhatsApp)
	}
	if cfg.Cache.RedisAddr != "" || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"GRANRAH_WEB_PORT":            "9090",
		"GRANRAH_WEB_CMS_BASE_URL":    "https://cms.example.cl/",
		"GRANRAH_WEB_CMS_TIMEOUT":     "2s",
		"GRANRAH_WEB_CACHE_TTL":       "30s",
		"GRANRAH_WEB_REDIS_ADDR":      "localhost:6379",
		"GRANRAH_WEB_REDIS_DB":        "2",
		"GRANRAH_WEB_DEV":             "yes",
		"GRANRAH_WEB_WHATSAPP":        "56911112222",
		"GRANRAH_WEB_LOG_LEVEL":       "debug",
		"GRANRAH_WEB_READ_TIMEOUT":    "not-a-duration",
		"GRANRAH_WEB_CONTACT_FORM_ID": "42",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" || !cfg.Server.DevMode {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("invalid duration should keep default, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.CMS.BaseURL != "https://cms.example.cl" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.CMS.BaseURL)
	}
	if cfg.Contact.BaseURL != cfg.CMS.BaseURL {
		t.Errorf("contact base should default to cms base, got %s", cfg.Contact.BaseURL)
	}
	if cfg.Contact.FormID != "42" {
		t.Errorf("unexpected form id %s", cfg.Contact.FormID)
	}
	if cfg.Cache.RedisDB != 2 || cfg.Cache.TTL != 30*time.Second {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Site.WhatsApp != "56911112222" {
		t.Errorf("unexpected whatsapp: %s", cfg.Site.WhatsApp)
	}
}

func TestLoadFromDotEnvAndSiteFile(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(site, []byte("name: Gran Rah Oficial\nsocial:\n  instagram: https://instagram.com/otra\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	envFile := filepath.Join(dir, ".env")
	content := "# local\nexport GRANRAH_WEB_PORT=7070\nGRANRAH_WEB_SITE_FILE=\"" + site + "\"\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected port from .env, got %s", cfg.Server.Port)
	}
	if cfg.Site.Name != "Gran Rah Oficial" || cfg.Site.Social.Instagram != "https://instagram.com/otra" {
		t.Errorf("site file not applied: %+v", cfg.Site)
	}
	if cfg.Site.Social.Spotify == "" || cfg.Site.WhatsApp != "56949260725" {
		t.Errorf("keys absent from the site file should keep defaults: %+v", cfg.Site)
	}

	// explicit map wins over .env
	cfg, err = Load(WithoutSystemEnv(), WithEnvFile(envFile), WithEnvMap(map[string]string{"GRANRAH_WEB_PORT": "6060"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "6060" {
		t.Errorf("expected env map precedence, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"GRANRAH_WEB_CMS_BASE_URL": "ftp://cms",
		"GRANRAH_WEB_WHATSAPP":     "+56 9 4926",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := verr.Fields()
	want := []string{"CMS.BaseURL", "Contact.BaseURL", "Site.WhatsApp"}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, fields)
		}
	}
}

func TestLoadMissingSiteFile(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{"GRANRAH_WEB_SITE_FILE": "/does/not/exist.yaml"}), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatalf("expected error for missing site file")
	}
}
