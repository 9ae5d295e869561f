// Package playback prepares the catalog for playback and keeps the state
// of the in-process queue player.
package playback

import (
	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
)

// Action is a bitmask of preparation requests a preparer understands.
type Action uint64

const (
	ActionPrepare Action = 1 << iota
	ActionPlay
	ActionPrepareFromMediaID
	ActionPlayFromMediaID
)

// Has reports whether every bit of b is set in a.
func (a Action) Has(b Action) bool {
	return a&b == b
}

// Preparer turns catalog requests into player calls once the music source
// is ready.
type Preparer struct {
	logger *zap.Logger
	source domain.MusicSource
	player domain.Player
}

// NewPreparer creates a preparer driving player from source.
func NewPreparer(logger *zap.Logger, source domain.MusicSource, player domain.Player) *Preparer {
	return &Preparer{
		logger: logger,
		source: source,
		player: player,
	}
}

// SupportedActions returns the requests this preparer acts on.
func (p *Preparer) SupportedActions() Action {
	return ActionPrepare | ActionPlay | ActionPrepareFromMediaID | ActionPlayFromMediaID
}

// Prepare queues the catalog starting at its first track.
func (p *Preparer) Prepare(playWhenReady bool) {
	p.logger.Info("Prepare requested", zap.Bool("playWhenReady", playWhenReady))

	p.source.WhenReady(func(ok bool) {
		if !ok {
			p.logger.Warn("Music source failed to load, nothing to prepare")
			return
		}
		tracks := p.source.Tracks()
		if len(tracks) == 0 {
			p.logger.Warn("Catalog is empty, nothing to prepare")
			return
		}
		p.prepare(tracks, tracks[0].MediaID, playWhenReady)
	})
}

// PrepareFromMediaID queues the catalog starting at the track with mediaID.
// Unknown ids leave the player untouched.
func (p *Preparer) PrepareFromMediaID(mediaID string, playWhenReady bool) {
	p.logger.Info("Prepare from media id requested", zap.String("mediaID", mediaID))

	p.source.WhenReady(func(ok bool) {
		if !ok {
			p.logger.Warn("Music source failed to load, cannot prepare",
				zap.String("mediaID", mediaID))
			return
		}
		p.prepare(p.source.Tracks(), mediaID, playWhenReady)
	})
}

// PrepareFromSearch is accepted but does nothing.
func (p *Preparer) PrepareFromSearch(query string, playWhenReady bool) {}

// PrepareFromURI is accepted but does nothing.
func (p *Preparer) PrepareFromURI(uri string, playWhenReady bool) {}

func (p *Preparer) prepare(tracks []domain.Track, mediaID string, playWhenReady bool) {
	index := -1
	for i, t := range tracks {
		if t.MediaID == mediaID {
			index = i
			break
		}
	}
	if index < 0 {
		p.logger.Warn("Content not found", zap.String("mediaID", mediaID))
		return
	}

	p.player.SetPlayWhenReady(playWhenReady)
	p.player.SetQueue(tracks)
	if err := p.player.SeekTo(index); err != nil {
		p.logger.Error("Failed to seek to prepared track",
			zap.String("mediaID", mediaID),
			zap.Int("index", index),
			zap.Error(err))
		return
	}

	p.logger.Info("Track prepared",
		zap.String("mediaID", mediaID),
		zap.String("title", tracks[index].Title),
		zap.Int("index", index))
}
