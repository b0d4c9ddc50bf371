package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// ReadOFF parses an Object File Format mesh. Per-face colour values after
// the vertex indices are ignored.
func ReadOFF(r io.Reader) (*Polygons, error) {
	scanner := bufio.NewScanner(r)
	var records [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			records = append(records, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OFF: %w", err)
	}

	if len(records) == 0 || records[0][0] != "OFF" {
		return nil, fmt.Errorf("missing OFF header")
	}
	countFields := records[0][1:]
	rest := records[1:]
	if len(countFields) == 0 {
		if len(rest) == 0 {
			return nil, fmt.Errorf("missing OFF counts")
		}
		countFields, rest = rest[0], rest[1:]
	}
	if len(countFields) < 2 {
		return nil, fmt.Errorf("bad OFF counts %v", countFields)
	}
	nVerts, err := strconv.Atoi(countFields[0])
	if err != nil {
		return nil, fmt.Errorf("bad vertex count: %w", err)
	}
	nFaces, err := strconv.Atoi(countFields[1])
	if err != nil {
		return nil, fmt.Errorf("bad face count: %w", err)
	}
	if len(rest) < nVerts+nFaces {
		return nil, fmt.Errorf("expected %d vertex and %d face records, got %d: %w", nVerts, nFaces, len(rest), io.ErrUnexpectedEOF)
	}

	polys := &Polygons{
		Positions: make([]geometry.Vector3, nVerts),
		Faces:     make([][]int, nFaces),
	}
	for v := range polys.Positions {
		fields := rest[v]
		if len(fields) < 3 {
			return nil, fmt.Errorf("vertex %d needs 3 coordinates", v)
		}
		var c [3]float64
		for i := range c {
			if c[i], err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", v, err)
			}
		}
		polys.Positions[v] = geometry.NewVector3(c[0], c[1], c[2])
	}
	for f := range polys.Faces {
		fields := rest[nVerts+f]
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", f, err)
		}
		if len(fields) < n+1 {
			return nil, fmt.Errorf("face %d lists %d of %d indices", f, len(fields)-1, n)
		}
		face := make([]int, n)
		for i := range face {
			if face[i], err = strconv.Atoi(fields[i+1]); err != nil {
				return nil, fmt.Errorf("face %d: %w", f, err)
			}
		}
		polys.Faces[f] = face
	}
	return polys, nil
}
