package images

import "fmt"

// DecodeError is returned when encoded input cannot be turned into an Image.
// Reason is surfaced verbatim from the decoder that failed.
type DecodeError struct {
	Decoder string
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode (%s): %s", e.Decoder, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeError(decoder string, err error) *DecodeError {
	return &DecodeError{Decoder: decoder, Reason: err.Error(), Err: err}
}

// MismatchError describes the first difference between two decoded images.
type MismatchError struct {
	// Field is the property that differs: "dimensions", "layout" or "pixels".
	Field string
	// Offset is the index of the first differing byte when Field is "pixels".
	Offset int
	Want   string
	Got    string
}

func (e *MismatchError) Error() string {
	if e.Field == "pixels" {
		return fmt.Sprintf("image data does not match at byte %d: want %s, got %s", e.Offset, e.Want, e.Got)
	}
	return fmt.Sprintf("image %s mismatch: want %s, got %s", e.Field, e.Want, e.Got)
}
