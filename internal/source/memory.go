package source

import (
	"context"
	"sync"

	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
)

// InMemorySource keeps the whole catalog in memory once loaded.
type InMemorySource struct {
	Readiness

	logger *zap.Logger
	loader CatalogLoader

	mu      sync.RWMutex
	catalog []domain.Track
}

// NewInMemorySource creates a source that is already initializing, so
// actions registered before Load are queued.
func NewInMemorySource(logger *zap.Logger, loader CatalogLoader) *InMemorySource {
	s := &InMemorySource{logger: logger, loader: loader}
	s.onChange = func(from, to State) {
		logger.Debug("Music source state changed",
			zap.Stringer("from", from),
			zap.Stringer("to", to))
	}
	s.SetState(StateInitializing)
	return s
}

// Load runs the catalog loader. A failure moves the source to StateError
// and is returned.
func (s *InMemorySource) Load(ctx context.Context) error {
	tracks, err := s.loader(ctx)
	if err != nil {
		s.logger.Error("Failed to load catalog", zap.Error(err))
		s.SetState(StateError)
		return err
	}

	s.mu.Lock()
	s.catalog = tracks
	s.mu.Unlock()

	s.logger.Info("Catalog loaded", zap.Int("tracks", len(tracks)))
	s.SetState(StateInitialized)
	return nil
}

// Tracks returns a copy of the catalog.
func (s *InMemorySource) Tracks() []domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Track, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Find returns the track with the given media id.
func (s *InMemorySource) Find(mediaID string) (domain.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.catalog {
		if t.MediaID == mediaID {
			return t, true
		}
	}
	return domain.Track{}, false
}
