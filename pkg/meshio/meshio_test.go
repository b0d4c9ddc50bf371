package meshio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetraOBJ = `# tetrahedron
o tetra
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
f 1//1 3//1 2//1
f 1/1/1 2/1/1 4/1/1
f -3 -2 -1
f 3 1 4 # trailing comment
`

const squareOFF = `OFF
# a unit square as a single quad
4 1 0
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3 255 0 0
`

const triangleASCII = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`

func TestReadOBJ(t *testing.T) {
	polys, err := ReadOBJ(strings.NewReader(tetraOBJ))
	require.NoError(t, err)

	assert.Len(t, polys.Positions, 4)
	assert.Equal(t, [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}}, polys.Faces)

	m, g, err := polys.Build()
	require.NoError(t, err)
	assert.Equal(t, 4, m.NFaces())
	assert.Equal(t, 6, m.NEdges())
	assert.Equal(t, geometry.UnitZ, g.Position(3))
}

func TestReadOBJErrors(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("v 1 2\n"))
	assert.Error(t, err)

	_, err = ReadOBJ(strings.NewReader("v 0 0 0\nf 0 1 2\n"))
	assert.Error(t, err)

	_, err = ReadOBJ(strings.NewReader("v 0 0 x\n"))
	assert.Error(t, err)
}

func TestReadOFFTriangulatesQuads(t *testing.T) {
	polys, err := ReadOFF(strings.NewReader(squareOFF))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, polys.Faces)

	m, g, err := polys.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NFaces())
	assert.Equal(t, 5, m.NEdges())
	assert.InDelta(t, 1.0, g.SurfaceArea(), 1e-12)
}

func TestReadOFFErrors(t *testing.T) {
	_, err := ReadOFF(strings.NewReader("PLY\n"))
	assert.Error(t, err)

	_, err = ReadOFF(strings.NewReader("OFF\n3 1 0\n0 0 0\n1 0 0\n"))
	assert.Error(t, err)
}

func TestReadSTLASCII(t *testing.T) {
	tris, err := ReadSTL(strings.NewReader(triangleASCII))
	require.NoError(t, err)
	require.Len(t, tris, 1)
	assert.Equal(t, geometry.UnitZ, tris[0].Normal)
	assert.Equal(t, geometry.UnitX, tris[0].V2)
}

func TestSTLBinaryRoundTrip(t *testing.T) {
	polys, err := ReadOBJ(strings.NewReader(tetraOBJ))
	require.NoError(t, err)

	var tris []Triangle
	for _, f := range polys.Faces {
		tris = append(tris, Triangle{V1: polys.Positions[f[0]], V2: polys.Positions[f[1]], V3: polys.Positions[f[2]]})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, "tetra", tris))
	assert.Equal(t, 84+50*len(tris), buf.Len())

	read, err := ReadSTL(&buf)
	require.NoError(t, err)
	require.Len(t, read, 4)

	welded := Weld(read)
	assert.Len(t, welded.Positions, 4)
	assert.Len(t, welded.Faces, 4)

	m, _, err := welded.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, m.BoundaryEdgeCount())
}

func TestWeldDropsCollapsedTriangles(t *testing.T) {
	p := geometry.NewVector3(1, 1, 1)
	polys := Weld([]Triangle{
		{V1: p, V2: p, V3: geometry.UnitX},
		{V1: geometry.UnitX, V2: geometry.UnitY, V3: geometry.UnitZ},
	})
	assert.Len(t, polys.Faces, 1)
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()

	objPath := filepath.Join(dir, "tetra.OBJ")
	require.NoError(t, os.WriteFile(objPath, []byte(tetraOBJ), 0o644))
	m, _, err := Load(objPath)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NVertices())

	offPath := filepath.Join(dir, "square.off")
	require.NoError(t, os.WriteFile(offPath, []byte(squareOFF), 0o644))
	m, _, err = Load(offPath)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NFaces())

	stlPath := filepath.Join(dir, "tri.stl")
	require.NoError(t, os.WriteFile(stlPath, []byte(triangleASCII), 0o644))
	m, _, err = Load(stlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NEdges())

	_, _, err = Load(filepath.Join(dir, "mesh.ply"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Load(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDependencies(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(lib, 0o755))

	main := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(main, []byte("use <lib/shapes.scad>\n// include <ignored.scad>\ncube(1);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "shapes.scad"), []byte("include <./util.scad>\nuse <main.scad>\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "util.scad"), []byte("module u() {}\n"), 0o644))

	deps, err := Dependencies(main)
	require.NoError(t, err)
	assert.Equal(t, []string{
		main,
		filepath.Join(lib, "shapes.scad"),
		filepath.Join(lib, "util.scad"),
	}, deps)

	objDeps, err := Dependencies(filepath.Join(dir, "mesh.obj"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "mesh.obj")}, objDeps)
}
