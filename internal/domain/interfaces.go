package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/genricoloni/amplayer/internal/domain Fetcher,ImageProcessor,Publisher,MusicSource,Player

// Monitor defines the interface for observing playback events.
// Implementations are the in-process queue player and the MPRIS monitor.
type Monitor interface {
	// Start begins monitoring for media events
	// It should block until context is cancelled or an error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the monitor and closes the events channel
	Stop(ctx context.Context) error

	// Events returns a read-only channel that emits MediaMetadata
	// when media playback state changes
	Events() <-chan MediaMetadata
}

// ImageProcessor defines the interface for in-memory image processing
// This is OS-agnostic and works purely with byte streams
type ImageProcessor interface {
	// Process turns embedded or fetched cover art into the published thumbnail
	Process(ctx context.Context, imageData []byte) ([]byte, error)
}

// Fetcher defines the interface for retrieving track and artwork bytes
type Fetcher interface {
	// Fetch downloads or reads data from a URL or local path
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Publisher makes the current track available for display
type Publisher interface {
	// Publish replaces whatever was published before
	Publish(ctx context.Context, np NowPlaying) error

	// Clear removes everything Publish wrote
	Clear(ctx context.Context) error
}

// MusicSource is a catalog that becomes usable once loaded
type MusicSource interface {
	// Load fetches the catalog and moves the source to its terminal state
	Load(ctx context.Context) error

	// WhenReady runs action once the source is loaded, with ok reporting
	// success. It returns true if action ran immediately and false if it
	// was queued until loading finishes.
	WhenReady(action func(ok bool)) bool

	// Tracks returns the catalog in playback order
	Tracks() []Track

	// Find looks a track up by media id
	Find(mediaID string) (Track, bool)
}

// Player is the playback surface the preparer drives
type Player interface {
	SetQueue(tracks []Track)
	SetPlayWhenReady(play bool)
	SeekTo(index int) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetMode returns where playback events come from ("local" or "mpris")
	GetMode() string

	// GetOutputDir returns the directory published files are written to
	GetOutputDir() string

	// GetArtworkMode returns how cover art is rendered ("cover" or "blur")
	GetArtworkMode() string

	// GetArtworkSize returns the edge length of the square thumbnail
	GetArtworkSize() int

	// GetMaxFetchBytes caps how much of a track is read to find its tag
	GetMaxFetchBytes() int64

	// GetDebounce returns the quiet period before an event is processed
	GetDebounce() time.Duration
}
