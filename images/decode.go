package images

import (
	"sort"

	"github.com/pkg/errors"
)

// Decoder is a PNG decode primitive. Implementations return pixel data in the
// hinted layout, or in their natively decoded layout for NativeLayout.
type Decoder interface {
	// Name identifies the decode path in reports and errors.
	Name() string
	// Decode turns encoded bytes into an Image.
	Decode(data []byte, hint LayoutHint) (*Image, error)
}

// Adapter wraps a Decoder and normalizes its results: failures always come
// back as *DecodeError and successful images are checked against the
// buffer invariant and the requested layout.
type Adapter struct {
	decoder Decoder
}

// NewAdapter wraps d.
func NewAdapter(d Decoder) *Adapter {
	return &Adapter{decoder: d}
}

// Name returns the name of the wrapped decoder.
func (a *Adapter) Name() string {
	return a.decoder.Name()
}

// Decode decodes data into an Image.
//
// Arguments:
//   - data: The encoded image bytes.
//   - hint: The layout to produce, or NativeLayout.
//
// Returns:
//   - *Image: The decoded image, never partially filled.
//   - error: A *DecodeError if the input is empty, truncated, malformed or
//     uses an unsupported bit depth or color mode.
func (a *Adapter) Decode(data []byte, hint LayoutHint) (*Image, error) {
	name := a.decoder.Name()
	if len(data) == 0 {
		return nil, &DecodeError{Decoder: name, Reason: "empty input"}
	}
	want, hinted := hint.Layout()
	if hinted && !want.Valid() {
		return nil, &DecodeError{Decoder: name, Reason: "unsupported layout hint " + hint.String()}
	}

	img, err := a.decoder.Decode(data, hint)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			return nil, decodeErr
		}
		return nil, decodeError(name, err)
	}
	if err := img.Validate(); err != nil {
		return nil, decodeError(name, err)
	}
	if hinted && img.Layout != want {
		return nil, &DecodeError{
			Decoder: name,
			Reason:  "decoder produced " + img.Layout.String() + " for requested " + want.String(),
		}
	}
	return img, nil
}

// Decode decodes PNG data with the pure Go decoder.
func Decode(data []byte, hint LayoutHint) (*Image, error) {
	return NewAdapter(StdDecoder{}).Decode(data, hint)
}

var decoders = map[string]func() Decoder{
	"std":    func() Decoder { return StdDecoder{} },
	"opencv": func() Decoder { return OpenCVDecoder{} },
}

// LookupDecoder returns the named decoder wrapped in an Adapter.
func LookupDecoder(name string) (*Adapter, error) {
	newDecoder, ok := decoders[name]
	if !ok {
		return nil, errors.Errorf("unknown decoder %q (available: %v)", name, DecoderNames())
	}
	return NewAdapter(newDecoder()), nil
}

// DecoderNames lists the registered decoder names in sorted order.
func DecoderNames() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
