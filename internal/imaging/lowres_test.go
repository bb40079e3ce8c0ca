package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateLowResDownscalesWideImages(t *testing.T) {
	gen := NewGenerator(240, 12, 40)

	low, err := gen.GenerateLowRes(encodePNG(t, 600, 400))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(low))
	require.NoError(t, err)
	assert.Equal(t, 240, cfg.Width)
	assert.Equal(t, 160, cfg.Height)
}

func TestGenerateLowResKeepsNarrowImages(t *testing.T) {
	gen := NewGenerator(240, 12, 40)

	low, err := gen.GenerateLowRes(encodePNG(t, 100, 80))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(low))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestGenerateLowResTallImageHeightAtLeastOne(t *testing.T) {
	gen := NewGenerator(240, 12, 40)

	low, err := gen.GenerateLowRes(encodePNG(t, 2400, 4))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(low))
	require.NoError(t, err)
	assert.Equal(t, 240, cfg.Width)
	assert.GreaterOrEqual(t, cfg.Height, 1)
}

func TestGenerateLowResRejectsGarbage(t *testing.T) {
	gen := NewGenerator(240, 12, 40)

	_, err := gen.GenerateLowRes([]byte("definitely not an image"))
	assert.Error(t, err)
}
