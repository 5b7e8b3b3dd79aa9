// Package images - Decoded image model and the decode adapter that produces it.
package images

import (
	"github.com/pkg/errors"
)

// Image is a decoded, tightly packed pixel buffer.
type Image struct {
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
	// The channel layout of Pix.
	Layout Layout `json:"layout" yaml:"layout"`
	// Pix holds the pixels row-major, top-to-bottom, with no row padding.
	// The image owns this buffer exclusively.
	Pix []byte `json:"-" yaml:"-"`
}

// NewImage allocates a zeroed image of the given size and layout.
//
// Arguments:
//   - width: The width in pixels, must be positive.
//   - height: The height in pixels, must be positive.
//   - layout: The pixel layout.
//
// Returns:
//   - *Image: The allocated image.
//   - error: An error if the dimensions or layout are invalid.
func NewImage(width, height int, layout Layout) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}
	if !layout.Valid() {
		return nil, errors.Errorf("invalid layout: %d", layout)
	}
	return &Image{
		Width:  width,
		Height: height,
		Layout: layout,
		Pix:    make([]byte, width*height*layout.BytesPerPixel()),
	}, nil
}

// Stride returns the number of bytes in one row.
func (img *Image) Stride() int {
	return img.Width * img.Layout.BytesPerPixel()
}

// Validate checks the buffer length invariant.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return errors.Errorf("invalid dimensions: width=%d, height=%d", img.Width, img.Height)
	}
	if !img.Layout.Valid() {
		return errors.Errorf("invalid layout: %d", img.Layout)
	}
	if want := img.Stride() * img.Height; len(img.Pix) != want {
		return errors.Errorf("buffer length %d does not match %dx%d %s (%d bytes)",
			len(img.Pix), img.Width, img.Height, img.Layout, want)
	}
	return nil
}
