package benchmark

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nvr-ai/go-pngbench/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDecode(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	data := buf.Bytes()

	img, err := images.Decode(data, images.NativeLayout)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Width)
	assert.Equal(t, 256, img.Height)
	assert.Equal(t, images.LayoutRGB, img.Layout)
	assert.Len(t, img.Pix, 196608)

	report, err := NewRunner(Options{}).Run("X", func() error {
		_, err := images.Decode(data, images.Hint(images.LayoutRGB))
		return err
	}, 100)
	require.NoError(t, err)

	assert.Equal(t, 100, report.Iterations)
	assert.LessOrEqual(t, report.Min, report.Mean)
	assert.LessOrEqual(t, report.Mean, report.Max)
}
