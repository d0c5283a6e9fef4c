package config

import (
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL",
		"LOG_PRETTY", "API_BASE_PATH", "STOPWORDS_PATH", "STOPWORDS_EN_PATH",
		"MAX_UPLOAD_BYTES", "REPORT_TTL", "WORD_LIMIT", "RATE_RPS",
		"RATE_BURST", "CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME",
		"OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.ReportTTL != time.Hour || cfg.WordLimit != 25 {
		t.Fatalf("analysis defaults = ttl %v, words %d", cfg.ReportTTL, cfg.WordLimit)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoad_OverridesAndNormalization(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "WARNING") // normalized to warn
	t.Setenv("GIN_MODE", "bogus")    // coerced to release
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REPORT_TTL", "30m")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" || cfg.LogLevel != "warn" || cfg.GinMode != "release" {
		t.Fatalf("overrides = %+v", cfg)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ReportTTL != 30*time.Minute || cfg.MaxUploadBytes != 1024 {
		t.Fatalf("ttl=%v bytes=%d", cfg.ReportTTL, cfg.MaxUploadBytes)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":               "verbose",
		"READ_TIMEOUT":            "-1s",
		"MAX_HEADER_BYTES":        "-1",
		"MAX_UPLOAD_BYTES":        "-5",
		"REPORT_TTL":              "-1h",
		"WORD_LIMIT":              "0",
		"RATE_RPS":                "-2",
		"RATE_BURST":              "0",
		"OTEL_TRACES_SAMPLER_ARG": "1.5",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", k, v)
			}
		})
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if recover() == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	MustLoad()
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		" /api/ ": "/api",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}
