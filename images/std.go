package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// StdDecoder decodes with image/png and packs the result into an Image.
type StdDecoder struct{}

// Name implements Decoder.
func (StdDecoder) Name() string {
	return "std"
}

// Decode implements Decoder.
func (d StdDecoder) Decode(data []byte, hint LayoutHint) (*Image, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(d.Name(), err)
	}
	img, err := FromImage(src, hint)
	if err != nil {
		return nil, decodeError(d.Name(), err)
	}
	return img, nil
}

// FromImage packs an 8-bit image.Image into an Image.
//
// Arguments:
//   - src: The source image. 16-bit-per-channel images are rejected.
//   - hint: The layout to produce. NativeLayout keeps alpha only when src has
//     an alpha channel.
//
// Returns:
//   - *Image: A new image that does not share memory with src.
//   - error: An error if src is empty or uses an unsupported bit depth.
func FromImage(src image.Image, hint LayoutHint) (*Image, error) {
	switch src.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return nil, errors.New("unsupported bit depth: 16")
	}

	bounds := src.Bounds()
	layout, hinted := hint.Layout()
	if !hinted {
		layout = nativeLayout(src)
	}
	dst, err := NewImage(bounds.Dx(), bounds.Dy(), layout)
	if err != nil {
		return nil, err
	}

	switch s := src.(type) {
	case *image.NRGBA:
		pack(dst, s.Pix[s.PixOffset(bounds.Min.X, bounds.Min.Y):], s.Stride)
		return dst, nil
	case *image.RGBA:
		// Premultiplied and straight alpha only agree when every pixel is opaque.
		if s.Opaque() {
			pack(dst, s.Pix[s.PixOffset(bounds.Min.X, bounds.Min.Y):], s.Stride)
			return dst, nil
		}
	}

	nrgba := imaging.Clone(src)
	pack(dst, nrgba.Pix, nrgba.Stride)
	return dst, nil
}

func nativeLayout(src image.Image) Layout {
	switch s := src.(type) {
	case *image.NRGBA:
		return LayoutRGBA
	case *image.Paletted:
		for _, c := range s.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return LayoutRGBA
			}
		}
		return LayoutRGB
	}
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		return LayoutRGB
	}
	return LayoutRGBA
}

// pack copies 4-byte RGBA rows into dst, dropping alpha for LayoutRGB.
func pack(dst *Image, pix []byte, stride int) {
	rowLen := dst.Stride()
	for y := 0; y < dst.Height; y++ {
		src := pix[y*stride : y*stride+dst.Width*4]
		row := dst.Pix[y*rowLen : (y+1)*rowLen]
		if dst.Layout == LayoutRGBA {
			copy(row, src)
			continue
		}
		for x := 0; x < dst.Width; x++ {
			row[x*3+0] = src[x*4+0]
			row[x*3+1] = src[x*4+1]
			row[x*3+2] = src[x*4+2]
		}
	}
}
