// Package session holds the application state of one loaded mesh and runs
// the commands the user triggers against it.
package session

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/philipparndt/geoplane/internal/config"
	"github.com/philipparndt/geoplane/internal/export"
	"github.com/philipparndt/geoplane/internal/plane"
	"github.com/philipparndt/geoplane/pkg/geodesic"
	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// State is the mutable application state. It is owned by a single
// goroutine; nothing in it is safe for concurrent use.
type State struct {
	Path     string
	Geometry *mesh.Geometry

	Plane geometry.Plane
	// Thickness is shown in the control panel but not used by any
	// computation.
	Thickness      float64
	Engine         string
	ExportFilename string

	// LastDuration is the wall time of the last successful computation
	LastDuration time.Duration

	distances []float64
	cut       *plane.Result

	notifier   Notifier
	visualizer Visualizer
}

// New builds the state for a loaded mesh. A nil notifier logs; a nil
// visualizer drops the quantities.
func New(path string, g *mesh.Geometry, cfg *config.Config, n Notifier, v Visualizer) (*State, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := cfg.PlaneValue()
	if err != nil {
		return nil, err
	}
	if n == nil {
		n = LogNotifier{}
	}
	if v == nil {
		v = nopVisualizer{}
	}

	return &State{
		Path:           path,
		Geometry:       g,
		Plane:          p,
		Thickness:      cfg.Plane.Thickness,
		Engine:         cfg.Geodesic.Engine,
		ExportFilename: cfg.Export.Filename,
		notifier:       n,
		visualizer:     v,
	}, nil
}

// Mesh returns the connectivity of the loaded mesh
func (s *State) Mesh() *mesh.Mesh {
	return s.Geometry.Mesh()
}

// Distances returns the current distance field, nil before the first
// successful computation. The slice must not be modified.
func (s *State) Distances() []float64 {
	return s.distances
}

// HasDistances reports whether a distance field is available
func (s *State) HasDistances() bool {
	return len(s.distances) > 0
}

// Cut returns the plane crossings of the last successful computation
func (s *State) Cut() *plane.Result {
	return s.cut
}

// Recompute intersects the mesh with the current plane and propagates
// geodesic distances from the crossings. On failure the previous field is
// kept.
func (s *State) Recompute() error {
	log.Printf("plane height: %g", s.Plane.Offset)
	start := time.Now()

	cut, err := plane.Intersect(s.Geometry, s.Plane)
	if err != nil {
		if errors.Is(err, plane.ErrNoSources) {
			s.notifier.Warning(plane.NoSourcesMessage)
		} else {
			s.notifier.Error(err.Error())
		}
		return err
	}

	solver, err := geodesic.New(s.Engine, s.Geometry)
	if err != nil {
		s.notifier.Error(err.Error())
		return err
	}
	if err := solver.Propagate(cut.Sources); err != nil {
		err = fmt.Errorf("failed to propagate geodesic distances: %w", err)
		s.notifier.Error(err.Error())
		return err
	}

	distances := geodesic.VertexDistances(solver, s.Mesh().NVertices())
	if unreachable := countInf(distances); unreachable > 0 {
		log.Printf("warning: %d of %d vertices are not reachable from the plane", unreachable, len(distances))
	}

	s.distances = distances
	s.cut = cut
	s.LastDuration = time.Since(start)

	s.visualizer.AddVertexScalarQuantity(DistanceQuantity, distances)
	s.visualizer.AddEdgeScalarQuantity(SourceEdgesQuantity, cut.EdgeIndicator)
	s.notifier.Info(fmt.Sprintf("Computed geodesic distances from plane with %d edge intersection points", cut.Count()))
	return nil
}

// SetNormal replaces the plane normal with n rescaled to unit length. A
// zero vector is rejected and the previous normal kept.
func (s *State) SetNormal(n geometry.Vector3) error {
	p, err := s.Plane.WithNormal(n)
	if err != nil {
		s.notifier.Warning(fmt.Sprintf("Plane normal must not be zero, keeping %s", s.Plane.Normal))
		return err
	}
	s.Plane = p
	return nil
}

// SetHeight moves the plane along its normal
func (s *State) SetHeight(h float64) {
	s.Plane.Offset = h
}

// SetThickness stores the band thickness clamped to the slider range
func (s *State) SetThickness(t float64) {
	s.Thickness = math.Max(config.MinThickness, math.Min(config.MaxThickness, t))
}

// SetEngine selects the geodesic solver for the next computation
func (s *State) SetEngine(name string) error {
	if err := geodesic.CheckName(name); err != nil {
		s.notifier.Error(err.Error())
		return err
	}
	s.Engine = name
	return nil
}

// SelectPreset sets an axis aligned normal and recomputes immediately
func (s *State) SelectPreset(p Preset) error {
	if err := s.SetNormal(p.Normal()); err != nil {
		return err
	}
	return s.Recompute()
}

// Export writes the distance field to ExportFilename
func (s *State) Export() error {
	path := s.ExportFilename
	err := export.ToFile(path, s.Plane, s.Geometry, s.distances)
	switch {
	case err == nil:
		s.notifier.Info(export.ExportedMessage(path))
	case errors.Is(err, export.ErrNothingComputed):
		s.notifier.Warning(export.NothingComputedMessage)
	case errors.Is(err, export.ErrOpen):
		s.notifier.Error(export.OpenFailedMessage(path))
	default:
		s.notifier.Error(err.Error())
	}
	return err
}

// ReplaceMesh swaps in a reloaded mesh, drops the old distance field and
// recomputes with the current plane.
func (s *State) ReplaceMesh(g *mesh.Geometry) error {
	s.Geometry = g
	s.distances = nil
	s.cut = nil
	return s.Recompute()
}

// Apply executes one intent collected by the user interface
func (s *State) Apply(in Intent) error {
	switch in.Action {
	case ActionRecompute:
		return s.Recompute()
	case ActionExport:
		return s.Export()
	case ActionPreset:
		return s.SelectPreset(in.Preset)
	default:
		return fmt.Errorf("unknown action %d", in.Action)
	}
}

func countInf(values []float64) int {
	n := 0
	for _, v := range values {
		if math.IsInf(v, 1) {
			n++
		}
	}
	return n
}
