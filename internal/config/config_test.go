package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "UPLOAD_DIR", "UPLOAD_DIR_CHOUFFEUR", "MAX_FILE_SIZE", "ALLOWED_MIME_TYPES",
		"RATE_LIMIT_WINDOW_MINUTES", "RATE_LIMIT_MAX_REQUESTS", "CORS_ORIGINS", "JWT_SECRET",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.MaxFileSize != 10*1024*1024 {
		t.Fatalf("expected 10MiB max size, got %d", cfg.MaxFileSize)
	}
	if cfg.RateLimitWindow != 15*time.Minute || cfg.RateLimitMax != 100 {
		t.Fatalf("unexpected rate limit defaults: %v / %d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	want := []string{"image/jpeg", "image/png", "image/gif"}
	if !reflect.DeepEqual(cfg.AllowedMimeTypes, want) {
		t.Fatalf("expected mime types %v, got %v", want, cfg.AllowedMimeTypes)
	}
	if got := cfg.UploadDirs(); len(got) != 2 || got[0] != "./uploads" || got[1] != "./uploads/chouffeur" {
		t.Fatalf("unexpected upload dirs %v", got)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_FILE_SIZE", "2048")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "1")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("STRICT_CONTENT_CHECK", "true")

	cfg := FromEnv()
	if cfg.Port != "9090" || cfg.MaxFileSize != 2048 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if !cfg.StrictContentCheck {
		t.Fatal("expected strict content check to be enabled")
	}
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "lots")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "-3")

	cfg := FromEnv()
	if cfg.MaxFileSize != 10*1024*1024 || cfg.RateLimitMax != 100 {
		t.Fatalf("expected defaults for invalid values, got %d / %d", cfg.MaxFileSize, cfg.RateLimitMax)
	}
}
