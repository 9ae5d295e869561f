package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
)

// ErrUnsupportedScheme is returned for locations that are neither HTTP(S),
// file:// nor a plain path.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Fetcher reads the leading bytes of tracks and artwork from the network or
// the local filesystem. At most GetMaxFetchBytes are read, which is enough
// for the ID3 tag at the start of a file.
type Fetcher struct {
	logger   *zap.Logger
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a fetcher capped at cfg.GetMaxFetchBytes.
func NewFetcher(logger *zap.Logger, cfg domain.Config) *Fetcher {
	return &Fetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxBytes: cfg.GetMaxFetchBytes(),
	}
}

// Fetch returns up to the configured number of bytes from location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", location, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, location)
	case "file":
		return f.readFile(ctx, u.Path)
	case "":
		return f.readFile(ctx, location)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "amplayer/1.0")
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", f.maxBytes-1))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	// Servers that ignore Range answer 200 with the whole body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	f.logger.Debug("Fetched over HTTP",
		zap.String("url", location),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))
	return data, nil
}

func (f *Fetcher) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f.logger.Debug("Read local file", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}
