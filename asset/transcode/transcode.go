package transcode

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Threshold is the byte size above which uploads are recompressed.
const Threshold = 5 << 20 // 5 MiB

// Quality is the JPEG quality applied when recompressing.
const Quality = 75

// Decision is the outcome of the size policy for one upload.
type Decision struct {
	Compress bool
	Quality  int
	Format   string
}

// Decide applies the size policy: inputs at or below Threshold pass through
// unchanged, larger inputs are recompressed to JPEG. Pure function, no I/O.
func Decide(byteSize int64) Decision {
	if byteSize <= Threshold {
		return Decision{}
	}

	return Decision{Compress: true, Quality: Quality, Format: "jpeg"}
}

// Recode decodes the source image (jpeg, png or webp) and re-encodes it as a
// JPEG at the decision's quality. The caller owns both readers.
func Recode(src io.Reader, d Decision) (io.Reader, int64, error) {
	if !d.Compress {
		return nil, 0, fmt.Errorf("recode called with a passthrough decision")
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, fmt.Errorf("decode source image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: d.Quality}); err != nil {
		return nil, 0, fmt.Errorf("encode jpeg: %w", err)
	}

	return &buf, int64(buf.Len()), nil
}
