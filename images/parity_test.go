package images

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := func() *Image {
		img, err := NewImage(2, 2, LayoutRGB)
		require.NoError(t, err)
		for i := range img.Pix {
			img.Pix[i] = byte(i)
		}
		return img
	}

	assert.NoError(t, Diff(base(), base()), "equal images must not report a mismatch")

	t.Run("pixels", func(t *testing.T) {
		got := base()
		got.Pix[7] = 0xff

		var mismatch *MismatchError
		require.True(t, errors.As(Diff(base(), got), &mismatch))
		assert.Equal(t, "pixels", mismatch.Field)
		assert.Equal(t, 7, mismatch.Offset)
		assert.Equal(t, "0x07", mismatch.Want)
		assert.Equal(t, "0xff", mismatch.Got)
	})

	t.Run("dimensions", func(t *testing.T) {
		got, err := NewImage(1, 4, LayoutRGB)
		require.NoError(t, err)

		var mismatch *MismatchError
		require.True(t, errors.As(Diff(base(), got), &mismatch))
		assert.Equal(t, "dimensions", mismatch.Field)
		assert.Equal(t, "2x2", mismatch.Want)
		assert.Equal(t, "1x4", mismatch.Got)
	})

	t.Run("layout", func(t *testing.T) {
		got, err := NewImage(2, 2, LayoutRGBA)
		require.NoError(t, err)

		var mismatch *MismatchError
		require.True(t, errors.As(Diff(base(), got), &mismatch))
		assert.Equal(t, "layout", mismatch.Field)
	})

	t.Run("length", func(t *testing.T) {
		got := base()
		got.Pix = got.Pix[:9]

		var mismatch *MismatchError
		require.True(t, errors.As(Diff(base(), got), &mismatch))
		assert.Equal(t, 9, mismatch.Offset)
	})
}
