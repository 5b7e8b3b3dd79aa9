package images

import (
	"bytes"
	"fmt"
)

// Diff compares two decoded images.
//
// Arguments:
//   - want: The reference image.
//   - got: The image under test.
//
// Returns:
//   - error: nil when both images have the same dimensions, layout and pixel
//     bytes, otherwise a *MismatchError describing the first difference.
func Diff(want, got *Image) error {
	if want.Width != got.Width || want.Height != got.Height {
		return &MismatchError{
			Field: "dimensions",
			Want:  fmt.Sprintf("%dx%d", want.Width, want.Height),
			Got:   fmt.Sprintf("%dx%d", got.Width, got.Height),
		}
	}
	if want.Layout != got.Layout {
		return &MismatchError{Field: "layout", Want: want.Layout.String(), Got: got.Layout.String()}
	}
	if bytes.Equal(want.Pix, got.Pix) {
		return nil
	}

	n := min(len(want.Pix), len(got.Pix))
	for i := 0; i < n; i++ {
		if want.Pix[i] != got.Pix[i] {
			return &MismatchError{
				Field:  "pixels",
				Offset: i,
				Want:   fmt.Sprintf("%#04x", want.Pix[i]),
				Got:    fmt.Sprintf("%#04x", got.Pix[i]),
			}
		}
	}
	return &MismatchError{
		Field:  "pixels",
		Offset: n,
		Want:   fmt.Sprintf("%d bytes", len(want.Pix)),
		Got:    fmt.Sprintf("%d bytes", len(got.Pix)),
	}
}
