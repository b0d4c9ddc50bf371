// Package sample generates test meshes from signed distance functions.
package sample

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/meshio"
)

// ErrUnknownShape is returned for shape names Solid does not know
var ErrUnknownShape = errors.New("unknown shape")

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 64

type builder func(size float64) (sdf.SDF3, error)

var shapes = map[string]builder{
	"sphere": func(size float64) (sdf.SDF3, error) {
		return sdf.Sphere3D(size / 2)
	},
	"box": func(size float64) (sdf.SDF3, error) {
		return sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, size*0.1)
	},
	"cylinder": func(size float64) (sdf.SDF3, error) {
		return sdf.Cylinder3D(size, size/2, size*0.05)
	},
	"ring": func(size float64) (sdf.SDF3, error) {
		outer, err := sdf.Cylinder3D(size/4, size/2, 0)
		if err != nil {
			return nil, err
		}
		hole, err := sdf.Cylinder3D(size/2, size/4, 0)
		if err != nil {
			return nil, err
		}
		return sdf.Difference3D(outer, hole), nil
	},
}

// Shapes lists the names Solid accepts
func Shapes() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Solid returns the named shape centered at the origin with the given
// overall size
func Solid(name string, size float64) (sdf.SDF3, error) {
	build, ok := shapes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownShape, name, strings.Join(Shapes(), ", "))
	}
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %g", size)
	}
	return build(size)
}

// Triangles tessellates a solid with marching cubes
func Triangles(s sdf.SDF3, cells int) []meshio.Triangle {
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	out := make([]meshio.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		out = append(out, meshio.Triangle{
			Normal: vec(tri.Normal()),
			V1:     vec(tri[0]),
			V2:     vec(tri[1]),
			V3:     vec(tri[2]),
		})
	}
	return out
}

func vec(v v3.Vec) geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Y, v.Z)
}
