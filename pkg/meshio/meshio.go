// Package meshio reads triangle meshes from disk into half-edge meshes.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Polygons is an indexed polygon list as read from a file
type Polygons struct {
	Positions []geometry.Vector3
	Faces     [][]int
}

// Load reads a mesh file, choosing the reader from the file extension
func Load(path string) (*mesh.Mesh, *mesh.Geometry, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".scad" {
		return loadSCAD(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var polys *Polygons
	switch ext {
	case ".obj":
		polys, err = ReadOBJ(file)
	case ".off":
		polys, err = ReadOFF(file)
	case ".stl":
		var tris []Triangle
		tris, err = ReadSTL(file)
		if err == nil {
			polys = Weld(tris)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q (expected .obj, .off, .stl or .scad)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return polys.Build()
}

// Build triangulates the polygons and constructs mesh and geometry
func (p *Polygons) Build() (*mesh.Mesh, *mesh.Geometry, error) {
	tris := make([][3]int, 0, len(p.Faces))
	for i, face := range p.Faces {
		if len(face) < 3 {
			return nil, nil, fmt.Errorf("%w: face %d has %d vertices", mesh.ErrInvalidFace, i, len(face))
		}
		for k := 1; k+1 < len(face); k++ {
			tris = append(tris, [3]int{face[0], face[k], face[k+1]})
		}
	}

	m, err := mesh.New(tris, len(p.Positions))
	if err != nil {
		return nil, nil, err
	}
	g, err := mesh.NewGeometry(m, p.Positions)
	if err != nil {
		return nil, nil, err
	}
	return m, g, nil
}
