package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// Triangle is one STL facet
type Triangle struct {
	Normal     geometry.Vector3
	V1, V2, V3 geometry.Vector3
}

// ReadSTL reads an STL stream.
// It automatically detects whether the data is ASCII or binary.
func ReadSTL(r io.Reader) ([]Triangle, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// Binary files may also start with "solid", so confirm with a keyword.
	if string(header) == "solid" {
		probe, _ := br.Peek(512)
		if bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid")) {
			return parseASCII(br)
		}
	}
	return parseBinary(br)
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader) ([]Triangle, error) {
	scanner := bufio.NewScanner(reader)
	var triangles []Triangle

	var normal geometry.Vector3
	var vertices []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVector(fields[2:5])
				if err != nil {
					return nil, err
				}
				normal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("vertex needs 3 coordinates")
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, err
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("facet %d has %d vertices", len(triangles), len(vertices))
			}
			triangles = append(triangles, Triangle{Normal: normal, V1: vertices[0], V2: vertices[1], V3: vertices[2]})
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return triangles, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i := range c {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// binaryFacet mirrors the 50-byte record of a binary STL
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader) ([]Triangle, error) {
	// 80-byte header, unused
	if _, err := io.CopyN(io.Discard, reader, 80); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	triangles := make([]Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		var facet binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, Triangle{
			Normal: vec32(facet.Normal),
			V1:     vec32(facet.V1),
			V2:     vec32(facet.V2),
			V3:     vec32(facet.V3),
		})
	}
	return triangles, nil
}

func vec32(c [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(c[0]), float64(c[1]), float64(c[2]))
}

// Weld merges STL corners with identical coordinates into shared vertices.
// Triangles that collapse after welding are dropped.
func Weld(triangles []Triangle) *Polygons {
	polys := &Polygons{}
	index := make(map[geometry.Vector3]int)
	vertex := func(p geometry.Vector3) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(polys.Positions)
		index[p] = i
		polys.Positions = append(polys.Positions, p)
		return i
	}

	for _, tri := range triangles {
		a, b, c := vertex(tri.V1), vertex(tri.V2), vertex(tri.V3)
		if a == b || b == c || a == c {
			continue
		}
		polys.Faces = append(polys.Faces, []int{a, b, c})
	}
	return polys
}

// WriteSTL writes triangles as a binary STL. Normals are recomputed from the
// corner order.
func WriteSTL(w io.Writer, name string, triangles []Triangle) error {
	var header [80]byte
	copy(header[:], name)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return err
	}

	for _, tri := range triangles {
		n := tri.V2.Sub(tri.V1).Cross(tri.V3.Sub(tri.V1)).Normalize()
		facet := binaryFacet{
			Normal: to32(n),
			V1:     to32(tri.V1),
			V2:     to32(tri.V2),
			V3:     to32(tri.V3),
		}
		if err := binary.Write(w, binary.LittleEndian, &facet); err != nil {
			return err
		}
	}
	return nil
}

func to32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
