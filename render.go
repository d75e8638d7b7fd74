package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/df07/go-weekend-raytracer/internal/config"
	"github.com/df07/go-weekend-raytracer/internal/watcher"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene",
		Long: `Render a built-in scene or a scene file.

--scene takes a built-in name (see "weekend scenes"), the name of a file in
the scenes directory, or a path to a .yaml, .yml, .json or .toml file.
Without --out the image is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd)
		},
	}

	f := cmd.Flags()
	f.String("scene", "simple", "scene name or scene file")
	f.Int("width", 0, "image width (0 keeps the scene default)")
	f.Int("height", 0, "image height (0 derives it from the aspect ratio)")
	f.Int("samples", 0, "samples per pixel (0 keeps the scene default)")
	f.Int("depth", 0, "maximum bounces per path (0 keeps the scene default)")
	f.Int64("seed", 42, "sampler and scene seed")
	f.String("format", "", "ppm, png or bmp (default from --out, else ppm)")
	f.StringP("out", "o", "", "output file, or object key with --s3-bucket")
	f.Uint("thumbnail", 0, "also write a PNG thumbnail this many pixels wide")
	f.Bool("watch", false, "re-render whenever the scene file changes")
	f.String("s3-bucket", "", "upload to this S3 bucket")
	f.String("s3-prefix", "", "S3 key prefix")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3-compatible endpoint, e.g. a local MinIO")

	bindFlags(a.v, f, map[string]string{
		"scene":       "scene",
		"width":       "width",
		"height":      "height",
		"samples":     "samples",
		"depth":       "depth",
		"seed":        "seed",
		"format":      "format",
		"out":         "out",
		"thumbnail":   "thumbnail",
		"watch":       "watch",
		"s3-bucket":   "s3.bucket",
		"s3-prefix":   "s3.prefix",
		"s3-region":   "s3.region",
		"s3-endpoint": "s3.endpoint",
	})
	return cmd
}

func (a *app) runRender(cmd *cobra.Command) error {
	settings := config.Get(a.v)
	if err := settings.Validate(); err != nil {
		return err
	}
	format, err := settings.OutputFormat()
	if err != nil {
		return err
	}
	if settings.Watch && !scene.IsSceneFile(settings.Scene) {
		return fmt.Errorf("--watch needs a scene file, got %q", settings.Scene)
	}

	sink, key, err := a.openSink(cmd, settings, format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.renderOnce(ctx, settings, sink, key, format); err != nil {
		return err
	}
	if !settings.Watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, a.logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	err = fw.Watch([]string{settings.Scene}, func(path string) {
		mu.Lock()
		defer mu.Unlock()
		a.logger.Info().Str("file", path).Msg("scene changed, re-rendering")
		if err := a.renderOnce(ctx, settings, sink, key, format); err != nil {
			a.logger.Error().Err(err).Msg("re-render failed")
		}
	})
	if err != nil {
		return err
	}

	a.logger.Info().Str("file", settings.Scene).Msg("watching for changes, press Ctrl+C to stop")
	fw.Run(ctx)
	return nil
}

func (a *app) renderOnce(ctx context.Context, settings config.Settings, sink output.Sink, key string, format output.Format) error {
	sc, err := resolveScene(settings)
	if err != nil {
		return err
	}

	raytracer, err := renderer.NewRaytracer(sc, sc.RenderConfig, core.NewSeededSampler(settings.Seed), a.logger)
	if err != nil {
		return err
	}

	frame, stats, err := raytracer.RenderContext(ctx)
	if err != nil {
		return err
	}

	keys, err := output.Publish(ctx, sink, key, format, frame, settings.Thumbnail)
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("scene", settings.Scene).
		Strs("keys", keys).
		Int("samples", stats.TotalSamples).
		Float64("avgBounces", stats.AverageBounces()).
		Dur("duration", stats.Duration).
		Msg("render published")
	return nil
}

// openSink picks where the image goes: S3 when a bucket is set, a file when --out is set, else stdout
func (a *app) openSink(cmd *cobra.Command, settings config.Settings, format output.Format) (output.Sink, string, error) {
	if settings.S3.Bucket != "" {
		cfg := settings.S3
		cfg.Timeout = settings.UploadTimeout()
		sink, err := output.NewS3Sink(cfg)
		if err != nil {
			return nil, "", err
		}
		key := settings.Out
		if key == "" {
			key = sceneBaseName(settings.Scene) + format.Extension()
		}
		return sink, key, nil
	}

	if settings.Out != "" {
		return output.NewFileSink(filepath.Dir(settings.Out)), filepath.Base(settings.Out), nil
	}

	if settings.Thumbnail > 0 {
		return nil, "", fmt.Errorf("--thumbnail needs --out or --s3-bucket")
	}
	return output.NewWriterSink(cmd.OutOrStdout()), "stdout" + format.Extension(), nil
}

// resolveScene builds a scene from a file path, a built-in name, or a file in the scenes directory
func resolveScene(settings config.Settings) (*scene.Scene, error) {
	opts := scene.Options{
		Width:           settings.Width,
		Height:          settings.Height,
		SamplesPerPixel: settings.Samples,
		MaxDepth:        settings.Depth,
		Seed:            settings.Seed,
	}

	name := settings.Scene
	if name == "" {
		return nil, fmt.Errorf("scene name is required")
	}

	if scene.IsSceneFile(name) {
		return loadSceneFile(name, opts)
	}

	if s, err := scene.Create(name, opts); err == nil {
		return s, nil
	}

	files, err := scene.ListSceneFiles(settings.ScenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if sceneBaseName(info.FilePath) == name {
			return loadSceneFile(info.FilePath, opts)
		}
	}

	return nil, fmt.Errorf("unknown scene %q: not a built-in and not found in %s", name, settings.ScenesDir)
}

func loadSceneFile(path string, opts scene.Options) (*scene.Scene, error) {
	s, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s.Apply(opts)
	if err := s.RenderConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// sceneBaseName strips the directory and extension from a scene path
func sceneBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
