// Package config reads geoplane settings from an INI style file.
//
// Example:
//
//	[Plane]
//	normalx = 0
//	normaly = 1
//	normalz = 0
//	height = -0.975
//
//	[Geodesic]
//	engine = fmm
//
//	[Export]
//	filename = geodesic_distances.txt
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/philipparndt/geoplane/internal/export"
	"github.com/philipparndt/geoplane/pkg/geodesic"
	"github.com/philipparndt/geoplane/pkg/geometry"
)

// Slider ranges of the control panel
const (
	MinHeight    = -1.0
	MaxHeight    = 1.0
	MinThickness = 0.001
	MaxThickness = 0.1
)

type PlaneConfig struct {
	NormalX, NormalY, NormalZ float64
	Height                    float64
	// Thickness is kept for the control panel; no computation reads it.
	Thickness float64
}

type GeodesicConfig struct {
	Engine string
}

type ExportConfig struct {
	Filename string
}

type WindowConfig struct {
	Width, Height int
	Title         string
	Wireframe     bool
}

// Config is the full settings file
type Config struct {
	Plane    PlaneConfig
	Geodesic GeodesicConfig
	Export   ExportConfig
	Window   WindowConfig
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		Plane: PlaneConfig{
			NormalX:   0,
			NormalY:   1,
			NormalZ:   0,
			Height:    -0.975,
			Thickness: 0.01,
		},
		Geodesic: GeodesicConfig{Engine: geodesic.FastMarchingName},
		Export:   ExportConfig{Filename: export.DefaultFilename},
		Window: WindowConfig{
			Width:  1400,
			Height: 900,
			Title:  "geoplane",
		},
	}
}

// Load reads path on top of the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads settings from a string on top of the defaults
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and names the first offending one
func (c *Config) Validate() error {
	n := c.Normal()
	if n.IsZero() || !n.IsFinite() {
		return fmt.Errorf("Plane.Normal must be a finite non-zero vector, got %s", n)
	}
	if math.IsNaN(c.Plane.Height) || math.IsInf(c.Plane.Height, 0) {
		return fmt.Errorf("Plane.Height must be finite, got %g", c.Plane.Height)
	}
	if c.Plane.Thickness < MinThickness || c.Plane.Thickness > MaxThickness {
		return fmt.Errorf("Plane.Thickness must be in range [%g, %g], got %g",
			MinThickness, MaxThickness, c.Plane.Thickness)
	}

	if c.Geodesic.Engine == "" || geodesic.CheckName(c.Geodesic.Engine) != nil {
		return fmt.Errorf("Geodesic.Engine must be %q or %q, got %q",
			geodesic.FastMarchingName, geodesic.DijkstraName, c.Geodesic.Engine)
	}

	if strings.TrimSpace(c.Export.Filename) == "" {
		return fmt.Errorf("Export.Filename must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("Window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Normal returns the configured plane normal as given (not normalized)
func (c *Config) Normal() geometry.Vector3 {
	return geometry.NewVector3(c.Plane.NormalX, c.Plane.NormalY, c.Plane.NormalZ)
}

// SetNormal stores n in the plane section
func (c *Config) SetNormal(n geometry.Vector3) {
	c.Plane.NormalX, c.Plane.NormalY, c.Plane.NormalZ = n.X, n.Y, n.Z
}

// PlaneValue builds the configured plane
func (c *Config) PlaneValue() (geometry.Plane, error) {
	return geometry.NewPlane(c.Normal(), c.Plane.Height)
}

// ParseVector reads "x,y,z" (commas or spaces) into a vector
func ParseVector(s string) (geometry.Vector3, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected three components, got %q", s)
	}
	var v [3]float64
	for i, f := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(f, 64); err != nil {
			return geometry.Vector3{}, fmt.Errorf("component %d of %q: %w", i+1, s, err)
		}
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}
