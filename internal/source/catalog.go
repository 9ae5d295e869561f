package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/genricoloni/amplayer/internal/domain"
	"gopkg.in/yaml.v3"
)

// CatalogLoader produces the tracks of a catalog.
type CatalogLoader func(ctx context.Context) ([]domain.Track, error)

// catalogFile is the on-disk catalog format:
//
//	tracks:
//	  - uri: https://example.com/song.mp3
//	    title: Song
type catalogFile struct {
	Tracks []domain.Track `yaml:"tracks"`
}

var builtinTracks = []domain.Track{
	{
		MediaID: "https://storage.googleapis.com/maison-great-dev/oss/musicplayer/tagmp3_1473200_1.mp3",
		URI:     "https://storage.googleapis.com/maison-great-dev/oss/musicplayer/tagmp3_1473200_1.mp3",
		Title:   "TEST_1",
	},
	{
		MediaID: "https://storage.googleapis.com/maison-great-dev/oss/musicplayer/tagmp3_2160166.mp3",
		URI:     "https://storage.googleapis.com/maison-great-dev/oss/musicplayer/tagmp3_2160166.mp3",
		Title:   "TEST_2",
	},
}

// BuiltinCatalog returns the two sample tracks used when no catalog file
// is configured.
func BuiltinCatalog() CatalogLoader {
	return func(ctx context.Context) ([]domain.Track, error) {
		out := make([]domain.Track, len(builtinTracks))
		copy(out, builtinTracks)
		return out, ctx.Err()
	}
}

// FileCatalog reads a YAML catalog from path.
func FileCatalog(path string) CatalogLoader {
	return func(ctx context.Context) ([]domain.Track, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		return ParseCatalog(data)
	}
}

// ParseCatalog decodes and validates a YAML catalog. Missing media ids
// default to the track URI.
func ParseCatalog(data []byte) ([]domain.Track, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Tracks))
	for i := range file.Tracks {
		t := &file.Tracks[i]
		if t.URI == "" {
			return nil, fmt.Errorf("catalog track %d: uri is required", i)
		}
		if t.MediaID == "" {
			t.MediaID = t.URI
		}
		if _, dup := seen[t.MediaID]; dup {
			return nil, fmt.Errorf("catalog track %d: duplicate media_id %q", i, t.MediaID)
		}
		seen[t.MediaID] = struct{}{}
	}

	if len(file.Tracks) == 0 {
		return nil, errors.New("catalog has no tracks")
	}
	return file.Tracks, nil
}
