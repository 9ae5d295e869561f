package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
)

// Event sources
const (
	ModeLocal = "local"
	ModeMPRIS = "mpris"
)

// AppConfig holds application configuration
type AppConfig struct {
	Mode          string        `env:"AMPLAYER_MODE, default=local"`
	OutputDir     string        `env:"AMPLAYER_OUTPUT_DIR, default=/tmp/amplayer"`
	CatalogFile   string        `env:"AMPLAYER_CATALOG"`
	Autoplay      bool          `env:"AMPLAYER_AUTOPLAY, default=true"`
	ArtworkMode   string        `env:"AMPLAYER_ARTWORK_MODE, default=cover"`
	ArtworkSize   int           `env:"AMPLAYER_ARTWORK_SIZE, default=512"`
	MaxFetchBytes int64         `env:"AMPLAYER_MAX_FETCH_BYTES, default=16777216"`
	Debounce      time.Duration `env:"AMPLAYER_DEBOUNCE, default=500ms"`
}

// LoadEnv loads a .env file from the working directory if there is one.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// NewAppConfig reads the configuration from the process environment
func NewAppConfig(logger *zap.Logger) (*AppConfig, error) {
	return NewAppConfigFrom(context.Background(), envconfig.OsLookuper(), logger)
}

// NewAppConfigFrom reads the configuration from l
func NewAppConfigFrom(ctx context.Context, l envconfig.Lookuper, logger *zap.Logger) (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	cfg.OutputDir = expandPath(cfg.OutputDir)
	cfg.CatalogFile = expandPath(cfg.CatalogFile)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("mode", cfg.Mode),
		zap.String("outputDir", cfg.OutputDir),
		zap.String("catalog", cfg.CatalogFile),
		zap.String("artworkMode", cfg.ArtworkMode),
		zap.Duration("debounce", cfg.Debounce))

	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Mode {
	case ModeLocal, ModeMPRIS:
	default:
		return fmt.Errorf("unknown AMPLAYER_MODE %q (want %q or %q)", c.Mode, ModeLocal, ModeMPRIS)
	}
	switch c.ArtworkMode {
	case domain.ArtworkCover, domain.ArtworkBlur:
	default:
		return fmt.Errorf("unknown AMPLAYER_ARTWORK_MODE %q (want %q or %q)", c.ArtworkMode, domain.ArtworkCover, domain.ArtworkBlur)
	}
	if c.ArtworkSize <= 0 {
		return fmt.Errorf("AMPLAYER_ARTWORK_SIZE must be positive, got %d", c.ArtworkSize)
	}
	if c.MaxFetchBytes <= 0 {
		return fmt.Errorf("AMPLAYER_MAX_FETCH_BYTES must be positive, got %d", c.MaxFetchBytes)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("AMPLAYER_DEBOUNCE must not be negative, got %s", c.Debounce)
	}
	if c.OutputDir == "" {
		return errors.New("AMPLAYER_OUTPUT_DIR must not be empty")
	}
	return nil
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// GetMode returns the configured event source
func (c *AppConfig) GetMode() string {
	return c.Mode
}

// GetOutputDir returns the directory for published files
func (c *AppConfig) GetOutputDir() string {
	return c.OutputDir
}

func (c *AppConfig) GetArtworkMode() string { return c.ArtworkMode }

func (c *AppConfig) GetArtworkSize() int { return c.ArtworkSize }

func (c *AppConfig) GetMaxFetchBytes() int64 { return c.MaxFetchBytes }

// GetDebounce returns how long the engine waits for events to settle
func (c *AppConfig) GetDebounce() time.Duration { return c.Debounce }
