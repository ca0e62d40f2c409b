package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadAPIDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CLICKSHIP_API_ADDR", "DATABASE_URL", "CLICKSHIP_SQLITE_PATH",
		"CLICKSHIP_SNAPSHOT_DIR", "CLICKSHIP_SNAPSHOT_NAME", "CLICKSHIP_PRODUCTION_TICK",
		"CLICKSHIP_SHIPPING_TICK", "CLICKSHIP_EXPIRY_EVERY", "CLICKSHIP_AUTOSAVE",
		"CLICKSHIP_AUTOSAVE_ENABLED", "CLICKSHIP_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.SnapshotName != "click-ship-tycoon-storage" {
		t.Fatalf("unexpected snapshot name %q", cfg.SnapshotName)
	}
	if cfg.ProductionTick != time.Second || cfg.ShippingTick != time.Second || cfg.ExpiryEvery != 5*time.Second {
		t.Fatalf("unexpected ticks %+v", cfg)
	}
	if cfg.Autosave != "@every 15s" || !cfg.AutosaveOn {
		t.Fatalf("unexpected autosave %q on=%v", cfg.Autosave, cfg.AutosaveOn)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected level %v", cfg.LogLevel)
	}
}

func TestLoadAPIOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CLICKSHIP_SQLITE_PATH", " /tmp/cs.db ")
	t.Setenv("CLICKSHIP_PRODUCTION_TICK", "250ms")
	t.Setenv("CLICKSHIP_SHIPPING_TICK", "bogus")
	t.Setenv("CLICKSHIP_AUTOSAVE", "*/30 * * * * *")
	t.Setenv("CLICKSHIP_LOG_LEVEL", "debug")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.SQLitePath != "/tmp/cs.db" {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.ProductionTick != 250*time.Millisecond || cfg.ShippingTick != time.Second {
		t.Fatalf("unexpected ticks production=%v shipping=%v", cfg.ProductionTick, cfg.ShippingTick)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadAPIRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "autosave", key: "CLICKSHIP_AUTOSAVE", val: "whenever"},
		{name: "negative tick", key: "CLICKSHIP_EXPIRY_EVERY", val: "-1s"},
		{name: "snapshot path", key: "CLICKSHIP_SNAPSHOT_NAME", val: "../escape"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := LoadAPIFromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}

func TestLoadCLI(t *testing.T) {
	t.Setenv("CLICKSHIP_API_BASE_URL", "http://example.test:9000/")
	if got := LoadCLIFromEnv().APIBaseURL; got != "http://example.test:9000" {
		t.Fatalf("unexpected base url %q", got)
	}
}
