package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/df07/go-weekend-raytracer/pkg/output"
)

// EnvPrefix namespaces environment overrides, e.g. WEEKEND_WIDTH
const EnvPrefix = "WEEKEND"

// Settings is the resolved configuration for one command run
type Settings struct {
	LogLevel  string
	Scene     string
	ScenesDir string
	Width     int
	Height    int
	Samples   int
	Depth     int
	Seed      int64
	Format    string
	Out       string // Empty writes to stdout
	Thumbnail uint
	Watch     bool
	Port      int
	S3        output.S3Config
}

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("scene", "simple")
	v.SetDefault("scenesDir", "scenes")
	// Zero render dimensions keep the scene's own values
	v.SetDefault("width", 0)
	v.SetDefault("height", 0)
	v.SetDefault("samples", 0)
	v.SetDefault("depth", 0)
	v.SetDefault("seed", 42)

	v.SetDefault("format", "") // Empty picks the format from the output extension, else ppm
	v.SetDefault("out", "")
	v.SetDefault("thumbnail", 0)
	v.SetDefault("watch", false)
	v.SetDefault("port", 8080)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.accessKey", "")
	v.SetDefault("s3.secretKey", "")
	v.SetDefault("s3.timeout", "30s")
}

// Load sets defaults, enables WEEKEND_* environment overrides and reads configFile if given
func Load(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		return nil
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Get resolves Settings from v
func Get(v *viper.Viper) Settings {
	return Settings{
		LogLevel:  v.GetString("logLevel"),
		Scene:     v.GetString("scene"),
		ScenesDir: v.GetString("scenesDir"),
		Width:     v.GetInt("width"),
		Height:    v.GetInt("height"),
		Samples:   v.GetInt("samples"),
		Depth:     v.GetInt("depth"),
		Seed:      v.GetInt64("seed"),
		Format:    v.GetString("format"),
		Out:       v.GetString("out"),
		Thumbnail: v.GetUint("thumbnail"),
		Watch:     v.GetBool("watch"),
		Port:      v.GetInt("port"),
		S3: output.S3Config{
			Bucket:    v.GetString("s3.bucket"),
			Prefix:    v.GetString("s3.prefix"),
			Region:    v.GetString("s3.region"),
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.accessKey"),
			SecretKey: v.GetString("s3.secretKey"),
			Timeout:   v.GetDuration("s3.timeout"),
		},
	}
}

// Validate rejects settings that cannot produce a render
func (s Settings) Validate() error {
	if s.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", s.Width)
	}
	if s.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", s.Height)
	}
	if s.Samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", s.Samples)
	}
	if s.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", s.Depth)
	}
	if _, err := s.OutputFormat(); err != nil {
		return err
	}
	if s.S3.Timeout < 0 {
		return fmt.Errorf("s3.timeout must not be negative, got %s", s.S3.Timeout)
	}
	return nil
}

// OutputFormat returns the explicit format, else the extension of Out, else PPM
func (s Settings) OutputFormat() (output.Format, error) {
	if s.Format != "" {
		return output.ParseFormat(s.Format)
	}
	if f, ok := output.FormatFromPath(s.Out); ok {
		return f, nil
	}
	return output.FormatPPM, nil
}

// UploadTimeout returns the S3 timeout, falling back to the sink default
func (s Settings) UploadTimeout() time.Duration {
	if s.S3.Timeout <= 0 {
		return output.DefaultUploadTimeout
	}
	return s.S3.Timeout
}
