package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/geoplane/pkg/mesh"
)

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// openSCADBinary is the executable used to render .scad sources
var openSCADBinary = "openscad"

// loadSCAD renders an OpenSCAD file to a temporary STL and loads that
func loadSCAD(path string) (*mesh.Mesh, *mesh.Geometry, error) {
	tmp, err := os.CreateTemp("", "geoplane_*.stl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := RenderSCAD(path, tmp.Name()); err != nil {
		return nil, nil, err
	}
	return Load(tmp.Name())
}

// RenderSCAD renders an OpenSCAD file to STL with the openscad binary
func RenderSCAD(scadFile, outputFile string) error {
	if _, err := exec.LookPath(openSCADBinary); err != nil {
		return fmt.Errorf("openscad not found in PATH. Please install OpenSCAD from https://openscad.org/")
	}

	absScad, err := filepath.Abs(scadFile)
	if err != nil {
		return err
	}

	cmd := exec.Command(openSCADBinary, "-o", outputFile, absScad)
	cmd.Dir = filepath.Dir(absScad)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			msg.WriteString("\nstderr: ")
			msg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			msg.WriteString("\nstdout: ")
			msg.WriteString(stdout.String())
		}
		return fmt.Errorf("%s", msg.String())
	}
	return nil
}

// Dependencies returns the files a mesh source depends on, itself first.
// For OpenSCAD sources this follows use<> and include<> statements.
func Dependencies(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(abs)) != ".scad" {
		return []string{abs}, nil
	}

	visited := make(map[string]bool)
	var deps []string
	if err := collectSCADDeps(abs, filepath.Dir(abs), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func collectSCADDeps(file, workDir string, visited map[string]bool, deps *[]string) error {
	if visited[file] {
		return nil
	}
	visited[file] = true
	*deps = append(*deps, file)

	direct, err := parseSCADDeps(file, workDir)
	if err != nil {
		return err
	}
	for _, dep := range direct {
		if err := collectSCADDeps(dep, workDir, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseSCADDeps lists the use/include targets of a single file
func parseSCADDeps(file, workDir string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	var deps []string
	dir := filepath.Dir(file)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, re := range []*regexp.Regexp{useRegex, includeRegex} {
			if m := re.FindStringSubmatch(line); len(m) > 1 {
				deps = append(deps, resolveSCADPath(m[1], dir, workDir))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	return deps, nil
}

// resolveSCADPath resolves a dependency relative to the including file,
// falling back to the top-level work directory
func resolveSCADPath(dep, currentDir, workDir string) string {
	candidate := filepath.Clean(filepath.Join(currentDir, dep))
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return candidate
	}
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return filepath.Clean(filepath.Join(workDir, dep))
}
