package output

import (
	"image"
	"path"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to maxWidth keeping its aspect ratio.
// Images already narrower than maxWidth are returned unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}

// ThumbnailKey derives the storage key of a thumbnail from the main image key
func ThumbnailKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key)) + "_thumb.png"
}
