// Package image re-encodes uploaded room photos before they are stored.
package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

const (
	Quality = 85
	// MaxUploadSize caps a single room photo before it is decoded.
	MaxUploadSize = 10 << 20
)

// formats maps accepted file extensions to the decoder name image.Decode reports.
var formats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".webp": "webp",
}

// FormatFromName returns the image format a file name claims to be.
func FormatFromName(name string) (string, bool) {
	format, ok := formats[strings.ToLower(filepath.Ext(name))]
	return format, ok
}

// Processed is a re-encoded image ready for upload.
type Processed struct {
	Body        []byte
	ContentType string
	Ext         string
}

// Process decodes r and encodes it again in the same format. Anything that is
// not JPEG, PNG or WebP is rejected.
func Process(r io.Reader) (*Processed, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	buf := new(bytes.Buffer)
	var ext string
	switch format {
	case "jpeg":
		ext = "jpg"
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: Quality})
	case "png":
		ext = "png"
		err = png.Encode(buf, img)
	case "webp":
		ext = "webp"
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: Quality})
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}

	return &Processed{
		Body:        buf.Bytes(),
		ContentType: "image/" + format,
		Ext:         ext,
	}, nil
}
