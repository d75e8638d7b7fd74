package loaders

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// SceneFile is the description read from YAML, JSON or TOML
type SceneFile struct {
	Camera     CameraSpec              `mapstructure:"camera"`
	Background BackgroundSpec          `mapstructure:"background"`
	Render     RenderSpec              `mapstructure:"render"`
	Materials  map[string]MaterialSpec `mapstructure:"materials"`
	Objects    []ObjectSpec            `mapstructure:"objects"`
}

// CameraSpec mirrors geometry.CameraConfig with vectors as lists
type CameraSpec struct {
	Center        []float64 `mapstructure:"center"`
	LookAt        []float64 `mapstructure:"lookAt"`
	Up            []float64 `mapstructure:"up"`
	VFov          float64   `mapstructure:"vfov"`
	AspectRatio   float64   `mapstructure:"aspectRatio"`
	Aperture      float64   `mapstructure:"aperture"`
	FocusDistance float64   `mapstructure:"focusDistance"`
	Time0         float64   `mapstructure:"time0"`
	Time1         float64   `mapstructure:"time1"`
}

// BackgroundSpec holds the sky gradient
type BackgroundSpec struct {
	Top    []float64 `mapstructure:"top"`
	Bottom []float64 `mapstructure:"bottom"`
}

// RenderSpec holds image size and sampling. A zero height follows the aspect ratio.
type RenderSpec struct {
	Width   int `mapstructure:"width"`
	Height  int `mapstructure:"height"`
	Samples int `mapstructure:"samples"`
	Depth   int `mapstructure:"depth"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type   string    `mapstructure:"type"` // lambertian, metal, dielectric or glass
	Albedo []float64 `mapstructure:"albedo"`
	Fuzz   float64   `mapstructure:"fuzz"`
	IOR    float64   `mapstructure:"ior"`
}

// ObjectSpec describes one sphere or moving sphere
type ObjectSpec struct {
	Type     string    `mapstructure:"type"` // sphere or movingSphere
	Center   []float64 `mapstructure:"center"`
	Center1  []float64 `mapstructure:"center1"`
	Time0    float64   `mapstructure:"time0"`
	Time1    float64   `mapstructure:"time1"`
	Radius   float64   `mapstructure:"radius"`
	Material string    `mapstructure:"material"`
}

func setSceneDefaults(v *viper.Viper) {
	v.SetDefault("camera.center", []float64{0, 0, 0})
	v.SetDefault("camera.lookAt", []float64{0, 0, -1})
	v.SetDefault("camera.up", []float64{0, 1, 0})
	v.SetDefault("camera.vfov", 90.0)
	v.SetDefault("camera.aspectRatio", 16.0/9.0)

	v.SetDefault("background.top", []float64{0.5, 0.7, 1.0})
	v.SetDefault("background.bottom", []float64{1, 1, 1})

	v.SetDefault("render.width", 400)
	v.SetDefault("render.height", 0)
	v.SetDefault("render.samples", 50)
	v.SetDefault("render.depth", 50)
}

// ReadSceneFile parses path into a SceneFile, choosing the format by extension
func ReadSceneFile(path string) (*SceneFile, error) {
	v := viper.New()
	setSceneDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading scene file: %w", err)
	}

	var file SceneFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("error decoding scene file %s: %w", path, err)
	}
	return &file, nil
}

// LoadSceneFile reads path and builds a renderable scene
func LoadSceneFile(path string) (*scene.Scene, error) {
	file, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}

	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Build turns the description into a scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	top, err := toVec3("background.top", f.Background.Top)
	if err != nil {
		return nil, err
	}
	bottom, err := toVec3("background.bottom", f.Background.Bottom)
	if err != nil {
		return nil, err
	}

	// Viper folds map keys to lower case, so material names match case-insensitively
	materials := make(map[string]material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[strings.ToLower(name)] = mat
	}

	world := geometry.NewHittableList()
	for i, spec := range f.Objects {
		obj, err := spec.build(materials)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		world.Add(obj)
	}

	s := scene.New(cameraConfig, renderer.RenderConfig{}, world)
	s.TopColor = top
	s.BottomColor = bottom
	s.Apply(scene.Options{
		Width:           f.Render.Width,
		Height:          f.Render.Height,
		SamplesPerPixel: f.Render.Samples,
		MaxDepth:        f.Render.Depth,
	})

	if err := s.RenderConfig.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return s, nil
}

func (c CameraSpec) config() (geometry.CameraConfig, error) {
	center, err := toVec3("center", c.Center)
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	lookAt, err := toVec3("lookAt", c.LookAt)
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	up, err := toVec3("up", c.Up)
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	if center == lookAt {
		return geometry.CameraConfig{}, fmt.Errorf("center and lookAt must differ")
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return geometry.CameraConfig{}, fmt.Errorf("vfov must be in (0, 180), got %g", c.VFov)
	}
	if c.AspectRatio <= 0 {
		return geometry.CameraConfig{}, fmt.Errorf("aspectRatio must be positive, got %g", c.AspectRatio)
	}

	return geometry.CameraConfig{
		Center:        center,
		LookAt:        lookAt,
		Up:            up,
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
		Time0:         c.Time0,
		Time1:         c.Time1,
	}, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		albedo, err := toVec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := toVec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric", "glass":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("ior must be positive, got %g", m.IOR)
		}
		if strings.EqualFold(m.Type, "glass") {
			return material.NewFresnelDielectric(m.IOR), nil
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func (o ObjectSpec) build(materials map[string]material.Material) (geometry.Hittable, error) {
	mat, ok := materials[strings.ToLower(o.Material)]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", o.Material)
	}
	if o.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %g", o.Radius)
	}
	center, err := toVec3("center", o.Center)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		return geometry.NewSphere(center, o.Radius, mat), nil
	case "movingsphere":
		center1, err := toVec3("center1", o.Center1)
		if err != nil {
			return nil, err
		}
		return geometry.NewMovingSphere(center, center1, o.Time0, o.Time1, o.Radius, mat), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

func toVec3(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
