package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type APIConfig struct {
	Addr           string
	DatabaseURL    string
	SQLitePath     string
	SnapshotDir    string
	SnapshotName   string
	ProductionTick time.Duration
	ShippingTick   time.Duration
	ExpiryEvery    time.Duration
	Autosave       string
	AutosaveOn     bool
	LogLevel       slog.Level
}

type CLIConfig struct {
	APIBaseURL string
}

var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("CLICKSHIP_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:           addr,
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:     strings.TrimSpace(os.Getenv("CLICKSHIP_SQLITE_PATH")),
		SnapshotDir:    strings.TrimSpace(os.Getenv("CLICKSHIP_SNAPSHOT_DIR")),
		SnapshotName:   envDefault("CLICKSHIP_SNAPSHOT_NAME", "click-ship-tycoon-storage"),
		ProductionTick: envDurationDefault("CLICKSHIP_PRODUCTION_TICK", time.Second),
		ShippingTick:   envDurationDefault("CLICKSHIP_SHIPPING_TICK", time.Second),
		ExpiryEvery:    envDurationDefault("CLICKSHIP_EXPIRY_EVERY", 5*time.Second),
		Autosave:       envDefault("CLICKSHIP_AUTOSAVE", "@every 15s"),
		AutosaveOn:     envBoolDefault("CLICKSHIP_AUTOSAVE_ENABLED", true),
		LogLevel:       envLevelDefault("CLICKSHIP_LOG_LEVEL", slog.LevelInfo),
	}
	if cfg.ProductionTick <= 0 || cfg.ShippingTick <= 0 || cfg.ExpiryEvery <= 0 {
		return cfg, fmt.Errorf("tick intervals must be positive")
	}
	if strings.ContainsAny(cfg.SnapshotName, `/\`) {
		return cfg, fmt.Errorf("CLICKSHIP_SNAPSHOT_NAME must not contain path separators")
	}
	if cfg.AutosaveOn {
		if _, err := scheduleParser.Parse(cfg.Autosave); err != nil {
			return cfg, fmt.Errorf("CLICKSHIP_AUTOSAVE: %w", err)
		}
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("CLICKSHIP_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envLevelDefault(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return lvl
}
