package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// ReadOBJ parses the vertex and face records of a Wavefront OBJ file.
// Texture and normal references in faces ("f 1/2/3") are ignored and
// negative indices count back from the last vertex read.
func ReadOBJ(r io.Reader) (*Polygons, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	polys := &Polygons{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				c[i] = value
			}
			polys.Positions = append(polys.Positions, geometry.NewVector3(c[0], c[1], c[2]))

		case "f":
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				if slash := strings.IndexByte(ref, '/'); slash >= 0 {
					ref = ref[:slash]
				}
				idx, err := strconv.Atoi(ref)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad face index %q", lineNo, ref)
				}
				switch {
				case idx > 0:
					idx--
				case idx < 0:
					idx += len(polys.Positions)
				default:
					return nil, fmt.Errorf("line %d: face index 0 is invalid", lineNo)
				}
				face = append(face, idx)
			}
			polys.Faces = append(polys.Faces, face)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return polys, nil
}
