package images

import (
	"crypto/md5"
	"fmt"
)

// Checksum generates a deterministic checksum of an image's dimensions, layout
// and pixels, used to confirm that repeated decodes are byte-identical.
//
// Arguments:
// - img: The image to compute the checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	checksum := Checksum(img)
//	fmt.Printf("Image checksum: %s\n", checksum)
//
// ```
func Checksum(img *Image) string {
	if img == nil || len(img.Pix) == 0 {
		return "empty"
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d:%s:", img.Width, img.Height, img.Layout)
	hash.Write(img.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
