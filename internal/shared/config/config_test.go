package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "PUBLIC_BASE_URL", "MAX_VIDEO_BYTES", "OBJECT_STORE", "QR_LEVEL", "QR_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.MaxVideoBytes != 500*1024*1024 {
		t.Fatalf("expected 500 MiB limit, got %d", cfg.MaxVideoBytes)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.QRLevel != "M" || cfg.QRSize != 256 {
		t.Fatalf("unexpected qr defaults %q/%d", cfg.QRLevel, cfg.QRSize)
	}
	if cfg.PublicBaseURL != "" {
		t.Fatalf("expected empty base url, got %q", cfg.PublicBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PUBLIC_BASE_URL", " https://qr.example.com ")
	t.Setenv("MAX_VIDEO_BYTES", "1024")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("TRUST_FORWARDED_HEADERS", "true")
	t.Setenv("QR_LEVEL", "h")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.PublicBaseURL != "https://qr.example.com" {
		t.Fatalf("unexpected base url %q", cfg.PublicBaseURL)
	}
	if cfg.MaxVideoBytes != 1024 {
		t.Fatalf("expected 1024, got %d", cfg.MaxVideoBytes)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3, got %q", cfg.ObjectStoreType)
	}
	if !cfg.TrustForwardedHeaders {
		t.Fatalf("expected forwarded headers trusted")
	}
	if cfg.QRLevel != "H" {
		t.Fatalf("expected H, got %q", cfg.QRLevel)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_VIDEO_BYTES", "-5")
	t.Setenv("QR_SIZE", "abc")

	cfg := Load()
	if cfg.MaxVideoBytes != DefaultMaxVideoBytes {
		t.Fatalf("expected default limit, got %d", cfg.MaxVideoBytes)
	}
	if cfg.QRSize != 256 {
		t.Fatalf("expected default size, got %d", cfg.QRSize)
	}
}
