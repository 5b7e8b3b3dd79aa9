package images

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// OpenCVDecoder decodes with OpenCV's imgcodecs through gocv.
type OpenCVDecoder struct{}

type conversionKey struct {
	channels int
	layout   Layout
}

// conversions maps decoded channel counts to the OpenCV conversion producing
// each layout. OpenCV decodes color images as BGR(A).
var conversions = map[conversionKey]gocv.ColorConversionCode{
	{1, LayoutRGB}:  gocv.ColorGrayToBGR,
	{1, LayoutRGBA}: gocv.ColorGrayToBGRA,
	{3, LayoutRGB}:  gocv.ColorBGRToRGB,
	{3, LayoutRGBA}: gocv.ColorBGRToRGBA,
	{4, LayoutRGB}:  gocv.ColorBGRAToRGB,
	{4, LayoutRGBA}: gocv.ColorBGRAToRGBA,
}

// Name implements Decoder.
func (OpenCVDecoder) Name() string {
	return "opencv"
}

// Decode implements Decoder.
func (d OpenCVDecoder) Decode(data []byte, hint LayoutHint) (*Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return nil, decodeError(d.Name(), err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, &DecodeError{Decoder: d.Name(), Reason: "truncated or malformed input"}
	}

	var channels int
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		channels = 1
	case gocv.MatTypeCV8UC3:
		channels = 3
	case gocv.MatTypeCV8UC4:
		channels = 4
	default:
		return nil, decodeError(d.Name(), errors.Errorf("unsupported bit depth or color mode (mat type %d)", int(mat.Type())))
	}

	layout, hinted := hint.Layout()
	if !hinted {
		layout = LayoutRGB
		if channels == 4 {
			layout = LayoutRGBA
		}
	}
	code, ok := conversions[conversionKey{channels, layout}]
	if !ok {
		return nil, decodeError(d.Name(), errors.Errorf("no conversion from %d channels to %s", channels, layout))
	}

	return convertMat(d.Name(), mat, code, layout)
}

// convertMat applies code to mat and copies the result out as an Image in
// layout. OpenCV failures are returned as the decoder's own reason.
func convertMat(decoder string, mat gocv.Mat, code gocv.ColorConversionCode, layout Layout) (*Image, error) {
	converted := gocv.NewMat()
	defer converted.Close()
	if err := gocv.CvtColor(mat, &converted, code); err != nil {
		return nil, decodeError(decoder, errors.Wrapf(err, "convert to %s", layout))
	}
	if converted.Empty() {
		return nil, &DecodeError{Decoder: decoder, Reason: "conversion to " + layout.String() + " produced no pixels"}
	}

	return &Image{
		Width:  converted.Cols(),
		Height: converted.Rows(),
		Layout: layout,
		Pix:    converted.ToBytes(),
	}, nil
}
