// Package imaging generates the blurred low-resolution placeholder variants
// for gallery images using pure decode + resize with a libwebp encoder.
package imaging

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Generator produces low-resolution placeholder variants: downscale to a
// fixed target width, strong gaussian blur, heavily compressed WebP.
type Generator struct {
	targetWidth int
	blurSigma   float64
	quality     float32
}

func NewGenerator(targetWidth int, blurSigma float64, quality float32) *Generator {
	return &Generator{
		targetWidth: targetWidth,
		blurSigma:   blurSigma,
		quality:     quality,
	}
}

// GenerateLowRes decodes the primary image and returns the encoded WebP
// placeholder. Images narrower than the target width keep their size.
func (g *Generator) GenerateLowRes(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Normalize to 8-bit RGBA so the encoder accepts any source color mode
	nrgba := imaging.Clone(img)

	if nrgba.Bounds().Dx() > g.targetWidth {
		// Height follows proportionally, never below 1
		nrgba = imaging.Resize(nrgba, g.targetWidth, 0, imaging.Lanczos)
	}

	nrgba = imaging.Blur(nrgba, g.blurSigma)

	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, g.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to build encoder options: %w", err)
	}
	// Slowest method trades CPU for the smallest output
	opts.Method = 6

	var buf bytes.Buffer
	if err := webp.Encode(&buf, nrgba, opts); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

// LowResKey derives the placeholder storage key from the primary asset key:
// same base name with a .webp extension, under a "low/" segment next to the
// original ("projects/abc.png" -> "projects/low/abc.webp").
func LowResKey(imageKey string) string {
	dir := path.Dir(imageKey)
	base := strings.TrimSuffix(path.Base(imageKey), path.Ext(imageKey))
	if dir == "." || dir == "/" {
		return path.Join("low", base+".webp")
	}
	return path.Join(dir, "low", base+".webp")
}
