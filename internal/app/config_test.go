package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_TIMEZONE", "DB_DRIVER", "JWT_SECRET_KEY", "NARRATIVE_CACHE_TTL_SECONDS", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())
	if cfg.Location != time.UTC {
		t.Fatalf("location: got %v", cfg.Location)
	}
	if cfg.DB.Driver != "postgres" {
		t.Fatalf("driver: got %q", cfg.DB.Driver)
	}
	if cfg.JWTSecretKey == "" {
		t.Fatal("expected a development secret")
	}
	if cfg.NarrativeCacheTTL != 6*time.Hour {
		t.Fatalf("cache ttl: got %v", cfg.NarrativeCacheTTL)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("cors: got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Asia/Seoul")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	cfg := LoadConfig(logger.Nop())
	if cfg.Location.String() != "Asia/Seoul" {
		t.Fatalf("location: got %v", cfg.Location)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("driver: got %q", cfg.DB.Driver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors: got %v", cfg.CORSOrigins)
	}

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if cfg := LoadConfig(logger.Nop()); cfg.Location != time.UTC {
		t.Fatalf("invalid timezone should fall back to UTC, got %v", cfg.Location)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LIFETWIN_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DOTENV_DISABLED", "")
	t.Setenv("LIFETWIN_DOTENV_PROBE", "")
	_ = os.Unsetenv("LIFETWIN_DOTENV_PROBE")

	loaded, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != ".env" {
		t.Fatalf("loaded: got %v", loaded)
	}
	if got := os.Getenv("LIFETWIN_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("probe: got %q", got)
	}
}
