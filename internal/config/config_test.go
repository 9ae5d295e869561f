package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
)

func TestNewAppConfigFrom(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name          string
		env           map[string]string
		expected      *AppConfig
		expectedError string
	}{
		{
			name: "Defaults",
			env:  map[string]string{},
			expected: &AppConfig{
				Mode:          ModeLocal,
				OutputDir:     "/tmp/amplayer",
				Autoplay:      true,
				ArtworkMode:   domain.ArtworkCover,
				ArtworkSize:   512,
				MaxFetchBytes: 16 * 1024 * 1024,
				Debounce:      500 * time.Millisecond,
			},
		},
		{
			name: "Overrides With Home Expansion",
			env: map[string]string{
				"AMPLAYER_MODE":         "mpris",
				"AMPLAYER_OUTPUT_DIR":   "~/.cache/amplayer",
				"AMPLAYER_CATALOG":      "/etc/amplayer/catalog.yaml",
				"AMPLAYER_AUTOPLAY":     "false",
				"AMPLAYER_ARTWORK_MODE": "blur",
				"AMPLAYER_ARTWORK_SIZE": "256",
				"AMPLAYER_DEBOUNCE":     "2s",
			},
			expected: &AppConfig{
				Mode:          ModeMPRIS,
				OutputDir:     filepath.Join(home, ".cache/amplayer"),
				CatalogFile:   "/etc/amplayer/catalog.yaml",
				ArtworkMode:   domain.ArtworkBlur,
				ArtworkSize:   256,
				MaxFetchBytes: 16 * 1024 * 1024,
				Debounce:      2 * time.Second,
			},
		},
		{
			name:          "Error - Unknown Mode",
			env:           map[string]string{"AMPLAYER_MODE": "android"},
			expectedError: "unknown AMPLAYER_MODE",
		},
		{
			name:          "Error - Unknown Artwork Mode",
			env:           map[string]string{"AMPLAYER_ARTWORK_MODE": "gradient"},
			expectedError: "unknown AMPLAYER_ARTWORK_MODE",
		},
		{
			name:          "Error - Zero Artwork Size",
			env:           map[string]string{"AMPLAYER_ARTWORK_SIZE": "0"},
			expectedError: "AMPLAYER_ARTWORK_SIZE must be positive",
		},
		{
			name:          "Error - Negative Debounce",
			env:           map[string]string{"AMPLAYER_DEBOUNCE": "-1s"},
			expectedError: "AMPLAYER_DEBOUNCE must not be negative",
		},
		{
			name:          "Error - Bad Duration",
			env:           map[string]string{"AMPLAYER_DEBOUNCE": "soon"},
			expectedError: "failed to process environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewAppConfigFrom(context.Background(), envconfig.MapLookuper(tt.env), zap.NewNop())

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadEnv_MissingFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadEnv(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("AMPLAYER_TEST_DOTENV=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AMPLAYER_TEST_DOTENV", "")
	os.Unsetenv("AMPLAYER_TEST_DOTENV")

	if err := LoadEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("AMPLAYER_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
}

func TestAppConfig_Getters(t *testing.T) {
	cfg := &AppConfig{Mode: ModeMPRIS, OutputDir: "/out", ArtworkMode: domain.ArtworkBlur, ArtworkSize: 64, MaxFetchBytes: 10, Debounce: time.Second}
	if cfg.GetMode() != ModeMPRIS || cfg.GetOutputDir() != "/out" || cfg.GetArtworkMode() != domain.ArtworkBlur ||
		cfg.GetArtworkSize() != 64 || cfg.GetMaxFetchBytes() != 10 || cfg.GetDebounce() != time.Second {
		t.Errorf("getters disagree with fields: %+v", cfg)
	}
}
