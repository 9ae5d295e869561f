package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"github.com/genricoloni/amplayer/internal/id3"
	"go.uber.org/zap"
)

// Engine turns playback events into published now-playing files. For each
// settled Playing event it reads the track's ID3 tag, decodes the lyrics
// and cover art and hands the result to the publisher. Lyrics and art are
// optional: any failure on that path is logged and publishing goes on
// without them.
type Engine struct {
	logger    *zap.Logger
	debounce  time.Duration
	monitor   domain.Monitor
	fetcher   domain.Fetcher
	processor domain.ImageProcessor
	publisher domain.Publisher

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// Only touched by the loop goroutine.
	current   domain.NowPlaying
	track     domain.MediaMetadata // event current was built from
	published bool
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	mon domain.Monitor,
	fetch domain.Fetcher,
	proc domain.ImageProcessor,
	pub domain.Publisher,
) *Engine {
	return &Engine{
		logger:    logger,
		debounce:  cfg.GetDebounce(),
		monitor:   mon,
		fetcher:   fetch,
		processor: proc,
		publisher: pub,
	}
}

// Start launches the event loop and returns immediately. The loop outlives
// ctx, which is usually a startup hook's context, and ends on Stop.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil
	}

	e.logger.Info("Engine starting...", zap.Duration("debounce", e.debounce))

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.runLoop(loopCtx, e.done)
	return nil
}

// Stop ends the loop and clears the published files.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}

	e.logger.Info("Engine stopping...")
	cancel()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := e.publisher.Clear(ctx); err != nil {
		e.logger.Error("Failed to clear published files", zap.Error(err))
		return err
	}
	return nil
}

// runLoop debounces events: only the last event of a burst (fast skipping)
// is processed, once no new event arrived for the debounce window.
func (e *Engine) runLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	events := e.monitor.Events()

	timer := time.NewTimer(e.debounce)
	timer.Stop()
	defer timer.Stop()

	var pendingMeta *domain.MediaMetadata

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return

		case meta, ok := <-events:
			if !ok {
				e.logger.Info("Monitor events channel closed")
				return
			}
			e.logger.Debug("Event received, debouncing...",
				zap.String("title", meta.Title),
				zap.String("status", string(meta.Status)))

			pendingMeta = &meta
			timer.Reset(e.debounce)

		case <-timer.C:
			if pendingMeta != nil {
				e.processMetadata(ctx, *pendingMeta)
				pendingMeta = nil
			}
		}
	}
}

// processMetadata publishes what is known about a single settled event.
func (e *Engine) processMetadata(ctx context.Context, meta domain.MediaMetadata) {
	switch meta.Status {
	case domain.StatusStopped:
		if !e.published {
			return
		}
		e.logger.Info("Playback stopped, clearing published files")
		if err := e.publisher.Clear(ctx); err != nil {
			e.logger.Error("Failed to clear published files", zap.Error(err))
			return
		}
		e.current, e.track, e.published = domain.NowPlaying{}, domain.MediaMetadata{}, false
		return

	case domain.StatusPaused:
		// A paused track only gets its status updated; nothing is fetched.
		if e.published && e.sameTrack(meta) && e.current.Status != domain.StatusPaused {
			e.republish(ctx, domain.StatusPaused)
		}
		return
	}

	if e.published && e.sameTrack(meta) {
		if e.current.Status != domain.StatusPlaying {
			e.republish(ctx, domain.StatusPlaying)
		}
		return
	}

	e.logger.Info("Processing track",
		zap.String("mediaID", meta.MediaID),
		zap.String("track", meta.Title),
		zap.String("artist", meta.Artist),
		zap.String("album", meta.Album))

	np := e.buildNowPlaying(ctx, meta)
	if err := e.publisher.Publish(ctx, np); err != nil {
		e.logger.Error("Failed to publish now playing", zap.Error(err))
		return
	}
	e.current, e.track, e.published = np, meta, true
}

func (e *Engine) buildNowPlaying(ctx context.Context, meta domain.MediaMetadata) domain.NowPlaying {
	np := domain.NowPlaying{
		MediaID: meta.MediaID,
		Title:   meta.Title,
		Artist:  meta.Artist,
		Album:   meta.Album,
		Status:  meta.Status,
	}

	var art []byte
	if tag := e.readTag(ctx, meta.URL); tag != nil {
		if uslt, ok := tag.Lyrics(); ok && uslt.Lyrics != "" {
			np.Lyrics = uslt.Lyrics
			np.Language = uslt.LanguageCode()
		}
		np.Title = firstNonEmpty(np.Title, tag.Title())
		np.Artist = firstNonEmpty(np.Artist, tag.Artist())
		np.Album = firstNonEmpty(np.Album, tag.Album())
		if pic, ok := tag.Picture(); ok {
			art = pic.Data
		}
	}

	if np.Lyrics == "" && meta.Lyrics != "" {
		e.logger.Debug("Using inline lyrics from player", zap.String("track", np.Title))
		np.Lyrics = meta.Lyrics
	}

	if art == nil && meta.ArtUrl != "" {
		data, err := e.fetcher.Fetch(ctx, meta.ArtUrl)
		if err != nil {
			e.logger.Warn("Failed to fetch artwork", zap.String("url", meta.ArtUrl), zap.Error(err))
		} else {
			art = data
		}
	}

	if art != nil {
		cover, err := e.processor.Process(ctx, art)
		if err != nil {
			e.logger.Warn("Failed to process artwork", zap.Error(err))
		} else {
			np.Cover = cover
		}
	}

	if np.Lyrics == "" {
		e.logger.Info("No lyrics found", zap.String("track", np.Title))
	}
	return np
}

// readTag fetches the start of the track and parses its ID3 tag. It returns
// nil when there is no readable tag.
func (e *Engine) readTag(ctx context.Context, location string) *id3.Tag {
	if location == "" {
		return nil
	}

	data, err := e.fetcher.Fetch(ctx, location)
	if err != nil {
		e.logger.Warn("Failed to fetch track", zap.String("url", location), zap.Error(err))
		return nil
	}

	tag, err := id3.Parse(data)
	switch {
	case errors.Is(err, id3.ErrNoTag):
		e.logger.Debug("Track has no ID3 tag", zap.String("url", location))
		return nil
	case err != nil:
		e.logger.Warn("Failed to parse ID3 tag", zap.String("url", location), zap.Error(err))
		return nil
	}
	return tag
}

func (e *Engine) republish(ctx context.Context, status domain.PlayerStatus) {
	np := e.current
	np.Status = status
	if err := e.publisher.Publish(ctx, np); err != nil {
		e.logger.Error("Failed to publish status change", zap.Error(err))
		return
	}
	e.current = np
	e.logger.Info("Playback status updated",
		zap.String("track", np.Title),
		zap.String("status", string(status)))
}

// sameTrack compares by media id when the player provides one.
func (e *Engine) sameTrack(meta domain.MediaMetadata) bool {
	if meta.MediaID != "" || e.track.MediaID != "" {
		return meta.MediaID == e.track.MediaID
	}
	return meta.URL == e.track.URL && meta.Title == e.track.Title && meta.Artist == e.track.Artist
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
