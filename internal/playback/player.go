package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
)

// ErrIndexOutOfRange is returned when seeking outside the queue.
var ErrIndexOutOfRange = errors.New("queue index out of range")

// QueuePlayer tracks a play queue and its playback status without decoding
// any audio. Every track or status change is published on Events, which
// makes the player usable as a domain.Monitor.
type QueuePlayer struct {
	logger *zap.Logger
	events chan domain.MediaMetadata

	mu              sync.Mutex
	queue           []domain.Track
	index           int
	playWhenReady   bool
	status          domain.PlayerStatus
	running         bool
	closed          bool
	cancel          context.CancelFunc
	lastDropWarning time.Time
}

// NewQueuePlayer creates a stopped player with an empty queue.
func NewQueuePlayer(logger *zap.Logger) *QueuePlayer {
	return &QueuePlayer{
		logger: logger,
		events: make(chan domain.MediaMetadata, 10),
		index:  -1,
		status: domain.StatusStopped,
	}
}

// SetQueue replaces the queue. The player is stopped on the first track
// until SeekTo prepares one.
func (p *QueuePlayer) SetQueue(tracks []domain.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = make([]domain.Track, len(tracks))
	copy(p.queue, tracks)
	p.index = -1
	if len(p.queue) > 0 {
		p.index = 0
	}
	p.status = domain.StatusStopped

	p.logger.Debug("Queue replaced", zap.Int("tracks", len(p.queue)))
}

// SetPlayWhenReady decides whether a prepared track plays or stays paused.
// A stopped player only records the flag.
func (p *QueuePlayer) SetPlayWhenReady(play bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playWhenReady = play
	if p.status == domain.StatusStopped || p.index < 0 {
		return
	}
	p.setStatusLocked(p.readyStatusLocked())
}

// SeekTo makes the track at index current and prepares it.
func (p *QueuePlayer) SeekTo(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seekLocked(index)
}

func (p *QueuePlayer) seekLocked(index int) error {
	if index < 0 || index >= len(p.queue) {
		return fmt.Errorf("seek to %d of %d: %w", index, len(p.queue), ErrIndexOutOfRange)
	}

	p.index = index
	p.status = p.readyStatusLocked()
	p.emitLocked()
	return nil
}

// Next advances to the following track.
func (p *QueuePlayer) Next() error {
	return p.skip(1)
}

// Previous goes back to the preceding track.
func (p *QueuePlayer) Previous() error {
	return p.skip(-1)
}

func (p *QueuePlayer) skip(delta int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index < 0 {
		return fmt.Errorf("skip on empty queue: %w", ErrIndexOutOfRange)
	}
	return p.seekLocked(p.index + delta)
}

// Play resumes the current track.
func (p *QueuePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playWhenReady = true
	if p.index >= 0 {
		p.setStatusLocked(domain.StatusPlaying)
	}
}

// Pause pauses the current track.
func (p *QueuePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playWhenReady = false
	if p.status == domain.StatusPlaying {
		p.setStatusLocked(domain.StatusPaused)
	}
}

// StopPlayback stops the player. With reset the queue is dropped as well.
func (p *QueuePlayer) StopPlayback(reset bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if reset {
		p.queue = nil
		p.index = -1
	}
	p.setStatusLocked(domain.StatusStopped)
}

// Current returns the current track, if any.
func (p *QueuePlayer) Current() (domain.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index < 0 {
		return domain.Track{}, false
	}
	return p.queue[p.index], true
}

// Status returns the playback status.
func (p *QueuePlayer) Status() domain.PlayerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Start blocks until ctx is cancelled or Stop is called.
func (p *QueuePlayer) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running || p.closed {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.logger.Info("Queue player started")
	<-runCtx.Done()
	p.logger.Info("Queue player stopped")
	return runCtx.Err()
}

// Stop ends Start and closes the events channel. Later changes are not
// published.
func (p *QueuePlayer) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.running = false
	p.closed = true
	close(p.events)
	return nil
}

// Events returns the channel track and status changes are published on.
func (p *QueuePlayer) Events() <-chan domain.MediaMetadata {
	return p.events
}

func (p *QueuePlayer) readyStatusLocked() domain.PlayerStatus {
	if p.playWhenReady {
		return domain.StatusPlaying
	}
	return domain.StatusPaused
}

func (p *QueuePlayer) setStatusLocked(s domain.PlayerStatus) {
	if p.status == s {
		return
	}
	p.status = s
	p.emitLocked()
}

// emitLocked sends the current state without blocking. A full channel drops
// the event.
func (p *QueuePlayer) emitLocked() {
	if p.closed {
		return
	}

	var meta domain.MediaMetadata
	if p.index >= 0 {
		meta = domain.MetadataFromTrack(p.queue[p.index], p.status)
	} else {
		meta.Status = p.status
	}

	select {
	case p.events <- meta:
		p.logger.Info("Playback changed",
			zap.String("mediaID", meta.MediaID),
			zap.String("title", meta.Title),
			zap.String("status", string(meta.Status)))
	default:
		const warningInterval = 5 * time.Second
		if now := time.Now(); now.Sub(p.lastDropWarning) >= warningInterval {
			p.logger.Warn("Events channel full, dropping playback change")
			p.lastDropWarning = now
		}
	}
}
