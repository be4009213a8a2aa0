package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// DefaultUpdateRepo is the GitHub repository queried by the update check.
const DefaultUpdateRepo = "Fepozopo/picfx"

// Config holds runtime settings read from the environment (and an optional
// .env file in the working directory).
type Config struct {
	LogLevel       slog.Level
	GaussianRadius int
	GaussianSigma  float64
	JPEGQuality    int
	UpdateRepo     string
	PreviewDebug   bool
	// PreviewMaxWidth caps the pixel width sent to the terminal. 0 disables
	// downscaling.
	PreviewMaxWidth int
}

// DefaultConfig returns the settings used when no variable is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:        slog.LevelWarn,
		GaussianRadius:  stdimg.DefaultGaussianRadius,
		GaussianSigma:   stdimg.DefaultGaussianSigma,
		JPEGQuality:     92,
		UpdateRepo:      DefaultUpdateRepo,
		PreviewMaxWidth: 640,
	}
}

// LoadConfig loads .env (if present) and then reads the environment. A
// missing .env is not an error; malformed values are.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds a Config from lookup, starting from DefaultConfig.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v, ok := lookup("PICFX_LOG_LEVEL"); ok && v != "" {
		lvl, err := ParseLogLevel(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := lookup("PICFX_GAUSSIAN_RADIUS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > stdimg.MaxGaussianRadius {
			errs = append(errs, fmt.Errorf("PICFX_GAUSSIAN_RADIUS: invalid radius %q (want 0..%d)", v, stdimg.MaxGaussianRadius))
		} else {
			cfg.GaussianRadius = n
		}
	}
	if v, ok := lookup("PICFX_GAUSSIAN_SIGMA"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) {
			errs = append(errs, fmt.Errorf("PICFX_GAUSSIAN_SIGMA: invalid sigma %q", v))
		} else {
			cfg.GaussianSigma = f
		}
	}
	if v, ok := lookup("PICFX_JPEG_QUALITY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			errs = append(errs, fmt.Errorf("PICFX_JPEG_QUALITY: want 1-100, got %q", v))
		} else {
			cfg.JPEGQuality = n
		}
	}
	if v, ok := lookup("PICFX_UPDATE_REPO"); ok && v != "" {
		if strings.Count(v, "/") != 1 {
			errs = append(errs, fmt.Errorf("PICFX_UPDATE_REPO: want owner/name, got %q", v))
		} else {
			cfg.UpdateRepo = v
		}
	}
	if v, ok := lookup("PREVIEW_DEBUG"); ok {
		cfg.PreviewDebug = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := lookup("PREVIEW_MAX_WIDTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("PREVIEW_MAX_WIDTH: invalid width %q", v))
		} else {
			cfg.PreviewMaxWidth = n
		}
	}
	return cfg, errors.Join(errs...)
}

// ParseLogLevel accepts debug, info, warn/warning and error (any case).
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

// NewLogger returns a text logger writing to w at cfg.LogLevel.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// Setup wires the engine logger and preview debugging from cfg.
func Setup(cfg Config) {
	stdimg.SetLogger(NewLogger(os.Stderr, cfg))
	SetPreviewDebug(cfg.PreviewDebug)
}
