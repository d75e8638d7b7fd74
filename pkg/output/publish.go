package output

import (
	"bytes"
	"context"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Publish encodes frame into sink under key, plus a PNG thumbnail when thumbWidth > 0.
// It returns the keys written.
func Publish(ctx context.Context, sink Sink, key string, f Format, frame *renderer.Frame, thumbWidth uint) ([]string, error) {
	var buf bytes.Buffer
	if err := Encode(f, &buf, frame); err != nil {
		return nil, err
	}
	if err := sink.Put(ctx, key, buf.Bytes(), ContentType(f)); err != nil {
		return nil, err
	}
	keys := []string{key}

	if thumbWidth == 0 {
		return keys, nil
	}

	buf.Reset()
	if err := EncodePNG(&buf, Thumbnail(frame.Image(), thumbWidth)); err != nil {
		return keys, fmt.Errorf("thumbnail: %w", err)
	}
	thumbKey := ThumbnailKey(key)
	if err := sink.Put(ctx, thumbKey, buf.Bytes(), ContentType(FormatPNG)); err != nil {
		return keys, err
	}

	return append(keys, thumbKey), nil
}
