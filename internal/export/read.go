package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// Row is one data line of an export file
type Row struct {
	Index    int
	Position geometry.Vector3
	Distance float64
}

// File is the parsed content of an export file
type File struct {
	Normal      geometry.Vector3
	Height      float64
	NumVertices int
	Rows        []Row
}

// Distances returns the distance column in file order
func (f *File) Distances() []float64 {
	out := make([]float64, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r.Distance
	}
	return out
}

// ReadFile parses the export file at path
func ReadFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses an export file. Header lines are optional; unknown comments
// are ignored.
func Read(r io.Reader) (*File, error) {
	out := &File{NumVertices: -1}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := out.parseHeader(strings.TrimSpace(line[1:])); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out.Rows = append(out.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if out.NumVertices >= 0 && out.NumVertices != len(out.Rows) {
		return nil, fmt.Errorf("header announces %d vertices, found %d rows", out.NumVertices, len(out.Rows))
	}
	return out, nil
}

func (f *File) parseHeader(comment string) error {
	key, value, ok := strings.Cut(comment, ":")
	if !ok {
		return nil
	}
	fields := strings.Fields(value)

	switch strings.TrimSpace(key) {
	case "Plane normal":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return fmt.Errorf("plane normal: %w", err)
		}
		f.Normal = geometry.NewVector3(v[0], v[1], v[2])
	case "Plane height":
		v, err := parseFloats(fields, 1)
		if err != nil {
			return fmt.Errorf("plane height: %w", err)
		}
		f.Height = v[0]
	case "Number of vertices":
		if len(fields) != 1 {
			return fmt.Errorf("number of vertices: expected 1 value, got %d", len(fields))
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("number of vertices: %w", err)
		}
		f.NumVertices = n
	}
	return nil
}

func parseRow(line string) (Row, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Row{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return Row{}, fmt.Errorf("vertex index: %w", err)
	}
	v, err := parseFloats(fields[1:], 4)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Index:    idx,
		Position: geometry.NewVector3(v[0], v[1], v[2]),
		Distance: v[3],
	}, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
