package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr          string
	LogLevel          slog.Level
	LogFormat         string
	LogFile           string
	LayoutID          string
	DoubleClickMode   string
	DoubleClickWindow time.Duration
	ShuffleSeed       uint64
	SnapshotPath      string
}

// Load reads the environment, after merging an optional .env file from
// the working directory. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		LogFormat:         strings.ToLower(envOr("LOG_FORMAT", "json")),
		LogFile:           envOr("LOG_FILE", "cardtable.log"),
		LayoutID:          envOr("LAYOUT_ID", "default"),
		DoubleClickMode:   envOr("DOUBLE_CLICK_MODE", "retoggle"),
		DoubleClickWindow: 400 * time.Millisecond,
		SnapshotPath:      envOr("SNAPSHOT_PATH", "table.png"),
	}

	if v := os.Getenv("DOUBLE_CLICK_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DOUBLE_CLICK_WINDOW %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("DOUBLE_CLICK_WINDOW must be positive, got %s", d)
		}
		c.DoubleClickWindow = d
	}

	if v := os.Getenv("SHUFFLE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUFFLE_SEED %q: %w", v, err)
		}
		c.ShuffleSeed = seed
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	switch c.LogFormat {
	case "json", "pretty":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}

	switch c.DoubleClickMode {
	case "retoggle", "flip_only":
	default:
		return Config{}, fmt.Errorf("invalid DOUBLE_CLICK_MODE %q", c.DoubleClickMode)
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
