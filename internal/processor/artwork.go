package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG covers are common in APIC frames

	"github.com/disintegration/imaging"
	"github.com/genricoloni/amplayer/internal/domain"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // some players point artUrl at WebP thumbnails
)

const (
	defaultBlurRadius = 15.0
	coverSizeRatio    = 0.80 // sharp cover edge relative to the thumbnail in blur mode
	jpegQuality       = 90
)

// ProcessorConfig holds configuration for image processing
type ProcessorConfig struct {
	Mode             string
	Size             int
	BlurRadius       float64
	CoverSizePercent float64
}

// ArtworkProcessor turns embedded or fetched cover art into a square JPEG
// thumbnail. In cover mode the art is cropped to fill the square. In blur
// mode the whole cover sits centered on a blurred copy of itself.
type ArtworkProcessor struct {
	logger *zap.Logger
	config ProcessorConfig
}

// NewArtworkProcessor creates a processor from the artwork settings in cfg.
func NewArtworkProcessor(logger *zap.Logger, cfg domain.Config) *ArtworkProcessor {
	return &ArtworkProcessor{
		logger: logger,
		config: ProcessorConfig{
			Mode:             cfg.GetArtworkMode(),
			Size:             cfg.GetArtworkSize(),
			BlurRadius:       defaultBlurRadius,
			CoverSizePercent: coverSizeRatio,
		},
	}
}

// Process decodes imageData and renders the thumbnail.
func (p *ArtworkProcessor) Process(ctx context.Context, imageData []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	size := p.config.Size
	var result image.Image
	switch p.config.Mode {
	case domain.ArtworkBlur:
		result = p.blurred(img, size)
	default:
		result = imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, result, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	p.logger.Debug("Artwork processed",
		zap.String("format", format),
		zap.String("mode", p.config.Mode),
		zap.Int("size", size),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (p *ArtworkProcessor) blurred(img image.Image, size int) image.Image {
	background := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	background = imaging.Blur(background, p.config.BlurRadius)

	edge := max(int(float64(size)*p.config.CoverSizePercent), 1)
	cover := imaging.Fit(img, edge, edge, imaging.Lanczos)

	cb := cover.Bounds()
	return imaging.Paste(background, cover, image.Pt((size-cb.Dx())/2, (size-cb.Dy())/2))
}
