package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/genricoloni/amplayer/internal/config"
	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/genricoloni/amplayer/internal/playback"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// TestAppGraphValidity verifies that the dependency graph is resolvable.
// This test will fail if you forget an fx.Provide for a required interface.
func TestAppGraphValidity(t *testing.T) {
	if err := fx.ValidateApp(AppOptions); err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
}

// TestNewLogger specifically verifies the logger configuration
func TestNewLogger(t *testing.T) {
	logger, err := newLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
	logger.Info("Test logger initialization")
}

func TestNewMonitor_ModeSelection(t *testing.T) {
	player := playback.NewQueuePlayer(zap.NewNop())

	local := newMonitor(zap.NewNop(), &config.AppConfig{Mode: config.ModeLocal}, player)
	if local != domain.Monitor(player) {
		t.Error("local mode should use the queue player as its monitor")
	}

	mpris := newMonitor(zap.NewNop(), &config.AppConfig{Mode: config.ModeMPRIS}, player)
	if mpris == domain.Monitor(player) {
		t.Error("mpris mode should not use the queue player")
	}
}

func TestNewSource_CatalogSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("tracks:\n  - uri: /music/only.mp3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		catalog  string
		expected int
	}{
		{name: "Builtin", expected: 2},
		{name: "File", catalog: path, expected: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource(zap.NewNop(), &config.AppConfig{CatalogFile: tt.catalog})
			if err := src.Load(t.Context()); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := len(src.Tracks()); got != tt.expected {
				t.Errorf("expected %d tracks, got %d", tt.expected, got)
			}
		})
	}
}

// TestEndToEndStartup runs a real local-mode startup and shutdown. The long
// debounce keeps the engine from fetching the sample tracks.
func TestEndToEndStartup(t *testing.T) {
	t.Setenv("AMPLAYER_MODE", "local")
	t.Setenv("AMPLAYER_OUTPUT_DIR", t.TempDir())
	t.Setenv("AMPLAYER_CATALOG", "")
	t.Setenv("AMPLAYER_AUTOPLAY", "true")
	t.Setenv("AMPLAYER_DEBOUNCE", "1h")

	app := fx.New(
		AppOptions,
		fx.NopLogger, // Silence Fx logs during tests
	)

	if err := app.Start(t.Context()); err != nil {
		t.Fatalf("App failed to start: %v", err)
	}
	if err := app.Stop(t.Context()); err != nil {
		t.Fatalf("App failed to stop: %v", err)
	}
}
