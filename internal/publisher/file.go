// Package publisher exposes the current track to other programs (status
// bars, overlays, lyric viewers) as plain files in the output directory.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Files written into the output directory.
const (
	NowPlayingFile = "now_playing.json"
	LyricsFile     = "lyrics.txt"
	CoverFile      = "cover.jpg"
)

// document is the JSON written to NowPlayingFile.
type document struct {
	domain.NowPlaying
	Cover     string    `json:"cover,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FilePublisher writes each file through a temporary file and a rename, so
// readers never see a partial write.
type FilePublisher struct {
	logger *zap.Logger
	dir    string
	now    func() time.Time
}

// NewFilePublisher creates a publisher writing into cfg.GetOutputDir.
func NewFilePublisher(logger *zap.Logger, cfg domain.Config) *FilePublisher {
	return &FilePublisher{
		logger: logger,
		dir:    cfg.GetOutputDir(),
		now:    time.Now,
	}
}

// Publish replaces the published track. Files for absent lyrics or cover
// art are removed so they never describe an earlier track.
func (p *FilePublisher) Publish(ctx context.Context, np domain.NowPlaying) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if np.Lyrics != "" {
		if err := p.writeAtomic(LyricsFile, []byte(np.Lyrics)); err != nil {
			return err
		}
	} else if err := p.remove(LyricsFile); err != nil {
		return err
	}

	doc := document{NowPlaying: np, UpdatedAt: p.now().UTC()}
	if len(np.Cover) > 0 {
		if err := p.writeAtomic(CoverFile, np.Cover); err != nil {
			return err
		}
		doc.Cover = CoverFile
	} else if err := p.remove(CoverFile); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", NowPlayingFile, err)
	}
	// Written last so a reader that sees the new JSON also sees its files.
	if err := p.writeAtomic(NowPlayingFile, append(data, '\n')); err != nil {
		return err
	}

	p.logger.Info("Now playing published",
		zap.String("dir", p.dir),
		zap.String("title", np.Title),
		zap.Bool("lyrics", np.Lyrics != ""),
		zap.Bool("cover", doc.Cover != ""))
	return nil
}

// Clear removes every published file.
func (p *FilePublisher) Clear(ctx context.Context) error {
	var err error
	for _, name := range []string{NowPlayingFile, LyricsFile, CoverFile} {
		err = multierr.Append(err, p.remove(name))
	}
	if err == nil {
		p.logger.Info("Published files cleared", zap.String("dir", p.dir))
	}
	return err
}

func (p *FilePublisher) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(p.dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := multierr.Combine(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(p.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (p *FilePublisher) remove(name string) error {
	if err := os.Remove(filepath.Join(p.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
