package config

import (
	"os"
	"testing"
	"time"
)

func chtmp(t *testing.T) {
	t.Helper()

	// Switch to a temp directory to avoid loading a real .env
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func requiredEnv() map[string]string {
	return map[string]string{
		"MARIADB_DSN":      "user:pass@tcp(localhost:3306)/db",
		"SERVER_PORT":      "8080",
		"REDIS_ADDR":       "localhost:6379",
		"MINIO_ENDPOINT":   "localhost:9000",
		"MINIO_ACCESS_KEY": "minio",
		"MINIO_SECRET_KEY": "minio123",
	}
}

func TestLoad_Success(t *testing.T) {
	chtmp(t)

	reqs := requiredEnv()
	for k, v := range reqs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MariaDBDSN != reqs["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", reqs["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.RedisAddr != reqs["REDIS_ADDR"] {
		t.Errorf("RedisAddr: expected %q, got %q", reqs["REDIS_ADDR"], cfg.RedisAddr)
	}
	if cfg.Bucket != "picstream" {
		t.Errorf("Bucket: expected default %q, got %q", "picstream", cfg.Bucket)
	}
	if len(cfg.AllowedMimeTypes) != 3 {
		t.Errorf("AllowedMimeTypes: expected 3 defaults, got %v", cfg.AllowedMimeTypes)
	}
	if len(cfg.RenditionWidths) != 3 || cfg.RenditionWidths[0] != 200 {
		t.Errorf("RenditionWidths: expected defaults [200 640 1280], got %v", cfg.RenditionWidths)
	}
	if cfg.MaxJobRetry != 5 {
		t.Errorf("MaxJobRetry: expected default %d, got %d", 5, cfg.MaxJobRetry)
	}
	if cfg.StartupTimeout != 15*time.Second {
		t.Errorf("StartupTimeout: expected default %v, got %v", 15*time.Second, cfg.StartupTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	chtmp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("ALLOWED_MIME_TYPES", "image/jpeg, image/png")
	t.Setenv("RENDITION_WIDTHS", "320,800")
	t.Setenv("MAX_JOB_RETRY", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.AllowedMimeTypes) != 2 || cfg.AllowedMimeTypes[1] != "image/png" {
		t.Errorf("AllowedMimeTypes: got %v", cfg.AllowedMimeTypes)
	}
	if len(cfg.RenditionWidths) != 2 || cfg.RenditionWidths[1] != 800 {
		t.Errorf("RenditionWidths: got %v", cfg.RenditionWidths)
	}
	if cfg.MaxJobRetry != 2 {
		t.Errorf("MaxJobRetry: got %d, want 2", cfg.MaxJobRetry)
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	cases := []struct {
		missingKey string
		wantErr    string
	}{
		{"MARIADB_DSN", "MARIADB_DSN is required"},
		{"SERVER_PORT", "SERVER_PORT is required"},
		{"REDIS_ADDR", "REDIS_ADDR is required"},
		{"MINIO_ENDPOINT", "MINIO_ENDPOINT is required"},
		{"MINIO_ACCESS_KEY", "MINIO_ACCESS_KEY is required"},
		{"MINIO_SECRET_KEY", "MINIO_SECRET_KEY is required"},
	}

	for _, tc := range cases {
		t.Run(tc.missingKey, func(t *testing.T) {
			chtmp(t)

			for k, v := range requiredEnv() {
				if k == tc.missingKey {
					continue
				}
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error when %s is missing, got nil", tc.missingKey)
			}
			if err.Error() != tc.wantErr {
				t.Errorf("error: expected %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoad_InvalidWidths(t *testing.T) {
	chtmp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("RENDITION_WIDTHS", "640,-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative width, got nil")
	}
}
