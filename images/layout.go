package images

import (
	"strings"

	"github.com/pkg/errors"
)

// Layout is the channel arrangement of a decoded pixel buffer.
type Layout int

const (
	// LayoutRGB is 8-bit red, green, blue. 3 bytes per pixel.
	LayoutRGB Layout = iota + 1
	// LayoutRGBA is 8-bit red, green, blue, alpha (not premultiplied). 4 bytes per pixel.
	LayoutRGBA
)

type layoutInfo struct {
	name          string
	bytesPerPixel int
}

var layouts = map[Layout]layoutInfo{
	LayoutRGB:  {name: "rgb", bytesPerPixel: 3},
	LayoutRGBA: {name: "rgba", bytesPerPixel: 4},
}

// BytesPerPixel returns the number of bytes a single pixel occupies, or 0 for
// an unknown layout.
func (l Layout) BytesPerPixel() int {
	return layouts[l].bytesPerPixel
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	_, ok := layouts[l]
	return ok
}

func (l Layout) String() string {
	if info, ok := layouts[l]; ok {
		return info.name
	}
	return "unknown"
}

// LayoutHint selects the layout a decoder should produce. The zero value,
// NativeLayout, lets the decoder keep the layout it decoded natively.
type LayoutHint Layout

// NativeLayout asks the decoder for its natively decoded layout.
const NativeLayout LayoutHint = 0

// Hint returns a LayoutHint requesting l.
func Hint(l Layout) LayoutHint {
	return LayoutHint(l)
}

// Layout returns the requested layout and whether one was requested at all.
func (h LayoutHint) Layout() (Layout, bool) {
	if h == NativeLayout {
		return 0, false
	}
	return Layout(h), true
}

func (h LayoutHint) String() string {
	if h == NativeLayout {
		return "native"
	}
	return Layout(h).String()
}

// ParseLayout converts a config string ("rgb", "rgba", "native" or "") into a
// LayoutHint.
func ParseLayout(s string) (LayoutHint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return NativeLayout, nil
	case "rgb":
		return Hint(LayoutRGB), nil
	case "rgba":
		return Hint(LayoutRGBA), nil
	default:
		return NativeLayout, errors.Errorf("unknown layout %q", s)
	}
}
