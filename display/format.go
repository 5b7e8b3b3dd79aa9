package display

import "github.com/nvr-ai/go-pngbench/images"

type textureFormat struct {
	pixelFormat   PixelFormat
	bytesPerPixel int
}

// textureFormats maps image layouts to the texture format that holds them.
var textureFormats = map[images.Layout]textureFormat{
	images.LayoutRGB:  {pixelFormat: PixelFormatRGB24, bytesPerPixel: 3},
	images.LayoutRGBA: {pixelFormat: PixelFormatRGBA32, bytesPerPixel: 4},
}

func lookupFormat(layout images.Layout) (textureFormat, bool) {
	f, ok := textureFormats[layout]
	return f, ok
}
