package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.BrandName != "Esihle Skin Hair" {
		t.Fatalf("unexpected brand default %q", cfg.App.BrandName)
	}
	if cfg.Catalog.UsesDB() {
		t.Fatalf("fixture catalog should be the default")
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url/address")
	}
	if got := cfg.Session.TTL; got != 2*time.Hour {
		t.Fatalf("expected session ttl 2h, got %v", got)
	}
	if cfg.WhatsApp.PhoneNumber != "+1234567890" {
		t.Fatalf("unexpected whatsapp phone %q", cfg.WhatsApp.PhoneNumber)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two default origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvSessionSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvSessionSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "s3")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), EnvCatalogSource) {
		t.Fatalf("expected catalog source error, got %v", err)
	}
}

func TestLoad_DBSourceBuildsLegacyDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "db")
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvDBUser, "shop")
	t.Setenv(EnvDBPassword, "pw")
	t.Setenv(EnvDBName, "catalog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	want := "postgres://shop:pw@db.internal:5432/catalog?sslmode=disable"
	if cfg.DB.DSN != want {
		t.Fatalf("expected dsn %q, got %q", want, cfg.DB.DSN)
	}
}

func TestLoad_DBSourceRequiresDSNForSQLite(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "db")
	t.Setenv(EnvDBDriver, "sqlite")

	if _, err := Load(); err == nil {
		t.Fatal("expected sqlite without dsn to fail")
	}
}

func TestLoad_DBSourceMissingLegacyVars(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "db")
	t.Setenv(EnvDBHost, "db.internal")

	_, err := Load()
	if err == nil {
		t.Fatal("expected missing legacy vars to fail")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should list missing vars, got %v", err)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatal("expected DEV to count as dev")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatal("expected prod")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvCatalogSource, EnvDBDSN, EnvDBDriver, EnvDBHost, EnvDBUser, EnvDBName, EnvDBPassword, EnvRedisURL, "ESIHLE_REDIS_ADDR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvSessionSecret, "secret")
}
