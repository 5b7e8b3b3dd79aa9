package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	assert.Equal(t, 3, LayoutRGB.BytesPerPixel())
	assert.Equal(t, 4, LayoutRGBA.BytesPerPixel())
	assert.Equal(t, 0, Layout(0).BytesPerPixel())
	assert.False(t, Layout(0).Valid())
	assert.Equal(t, "rgba", LayoutRGBA.String())
}

func TestParseLayout(t *testing.T) {
	for input, want := range map[string]LayoutHint{
		"":       NativeLayout,
		"native": NativeLayout,
		"RGB":    Hint(LayoutRGB),
		" rgba ": Hint(LayoutRGBA),
	} {
		got, err := ParseLayout(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLayout("bgr")
	assert.Error(t, err)
}

func TestNewImage(t *testing.T) {
	img, err := NewImage(5, 3, LayoutRGBA)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Stride())
	assert.Len(t, img.Pix, 60)
	assert.NoError(t, img.Validate())

	_, err = NewImage(0, 3, LayoutRGB)
	assert.Error(t, err)
	_, err = NewImage(3, 3, Layout(7))
	assert.Error(t, err)
}
