// Package config loads runtime settings from an optional .env file and the
// process environment.
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"watermark-studio/internal/logger"
	"watermark-studio/pkg/colorutil"
)

// Slider bounds shared by the window and the config clamps.
const (
	MinFontSize  = 10
	MaxFontSize  = 80
	MinLogoScale = 10
	MaxLogoScale = 100
)

// Config holds everything the application reads at startup.
type Config struct {
	Mode string
	Log  logger.LogConfig

	// FontDirs is searched before the platform font directories.
	FontDirs      []string
	FontCacheSize int

	// TextPlacement is "center" or "bottom-right".
	TextPlacement string
	TextMargin    int

	// MaxCanvas downscales uploaded images whose longer side exceeds it.
	// Zero keeps the original resolution.
	MaxCanvas int

	Defaults Defaults

	// EnvFile is the .env file that was loaded, empty when none was found.
	EnvFile string
}

// Defaults seeds the watermark style of a new session.
type Defaults struct {
	Text      string
	Font      string
	FontSize  float64
	Color     color.RGBA
	Opacity   uint8
	LogoScale int
}

// Load reads the .env file named by WM_ENV_FILE (".env" when unset) and then
// the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	envFile := getStringOrDefault("WM_ENV_FILE", ".env")
	loaded := ""
	if err := godotenv.Load(envFile); err == nil {
		loaded = envFile
	}

	c, err := colorutil.ParseHex(getStringOrDefault("WM_DEFAULT_COLOR", "#ffffff"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode: getStringOrDefault("WM_MODE", "production"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("WM_LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("WM_LOG_FILE", defaultLogFile()),
			MaxSize:    getIntOrDefault("WM_LOG_MAX_SIZE", 10),
			MaxAge:     getIntOrDefault("WM_LOG_MAX_AGE", 14),
			MaxBackups: getIntOrDefault("WM_LOG_MAX_BACKUPS", 3),
		},
		FontDirs:      splitList(os.Getenv("WM_FONT_DIRS")),
		FontCacheSize: getIntOrDefault("WM_FONT_CACHE_SIZE", 32),
		TextPlacement: strings.ToLower(getStringOrDefault("WM_TEXT_PLACEMENT", "center")),
		TextMargin:    getIntOrDefault("WM_TEXT_MARGIN", 30),
		MaxCanvas:     getIntOrDefault("WM_MAX_CANVAS", 0),
		Defaults: Defaults{
			Text:      getStringOrDefault("WM_DEFAULT_TEXT", "Your Watermark"),
			Font:      getStringOrDefault("WM_DEFAULT_FONT", "Arial"),
			FontSize:  clampFloat(getFloatOrDefault("WM_DEFAULT_SIZE", 30), MinFontSize, MaxFontSize),
			Color:     c,
			Opacity:   uint8(clampInt(getIntOrDefault("WM_DEFAULT_OPACITY", 128), 0, 255)),
			LogoScale: clampInt(getIntOrDefault("WM_DEFAULT_LOGO_SCALE", 30), MinLogoScale, MaxLogoScale),
		},
		EnvFile: loaded,
	}
	if cfg.FontCacheSize <= 0 {
		cfg.FontCacheSize = 32
	}
	return cfg, nil
}

// Development reports whether the config selects development mode.
func (c *Config) Development() bool {
	return c.Mode == "dev" || c.Mode == "development"
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join("logs", "watermark-studio.log")
	}
	return filepath.Join(dir, "watermark-studio", "watermark-studio.log")
}

// getStringOrDefault returns the variable's value, or def when unset or empty.
func getStringOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getIntOrDefault returns def when the variable is unset or not an integer.
func getIntOrDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

func getFloatOrDefault(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return f
}

func splitList(v string) []string {
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
