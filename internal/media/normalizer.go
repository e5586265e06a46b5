// Package media normalizes uploaded images and stores them as public files.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// Decoders registered for image.Decode. x/image adds the formats
	// phones commonly send beyond the stdlib trio.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegQuality matches the normalized output contract: every upload is
// re-encoded as JPEG at quality 85.
const jpegQuality = 85

// DecodeError reports an input that claimed to be an image but could not be
// decoded. Distinct from an unsupported content type, which the HTTP layer
// rejects before decoding.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NormalizeJPEG decodes any supported image format and re-encodes it as
// JPEG. JPEG encoding flattens alpha, so no explicit mode conversion is
// needed.
func NormalizeJPEG(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
