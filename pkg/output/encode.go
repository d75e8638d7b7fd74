package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Format identifies an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// Formats lists every supported encoding
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP}

// ParseFormat maps a case-insensitive name onto a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPPM, FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: ppm, png, bmp)", name)
	}
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return "", false
	}
	return f, true
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for the format
func ContentType(f Format) string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}

// Encode writes frame to w in the given format
func Encode(f Format, w io.Writer, frame *renderer.Frame) error {
	switch f {
	case FormatPPM:
		return EncodePPM(w, frame)
	case FormatPNG:
		return EncodePNG(w, frame.Image())
	case FormatBMP:
		return EncodeBMP(w, frame.Image())
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// EncodeBMP writes img as an uncompressed BMP
func EncodeBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encoding bmp: %w", err)
	}
	return nil
}
