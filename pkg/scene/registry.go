package scene

import (
	"fmt"
	"sort"
)

// Builder constructs a scene with overrides applied
type Builder func(opts Options) *Scene

type entry struct {
	info  SceneInfo
	build Builder
}

var builtins = map[string]entry{}

func register(id, description string, build Builder) {
	name := titleCase(id)
	builtins[id] = entry{
		info: SceneInfo{
			ID:          id,
			Name:        name,
			DisplayName: name,
			Description: description,
			Type:        "builtin",
		},
		build: build,
	}
}

func init() {
	register("simple", "Diffuse sphere on a ground sphere", NewSimpleScene)
	register("materials", "Glass, diffuse and metal spheres side by side", NewMaterialsScene)
	register("defocus", "Materials scene with a wide aperture", NewDefocusScene)
	register("random", "Field of random small spheres around three large ones", NewRandomScene)
	register("bouncing", "Random field with diffuse spheres in motion", NewBouncingScene)
}

// Create builds the named built-in scene
func Create(name string, opts Options) (*Scene, error) {
	e, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return e.build(opts), nil
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, e := range builtins {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}
