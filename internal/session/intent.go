package session

import "github.com/philipparndt/geoplane/pkg/geometry"

// Action is a command the user interface can request
type Action int

const (
	ActionRecompute Action = iota
	ActionExport
	ActionPreset
)

// Intent is one user request, collected during a frame and executed by
// State.Apply before the next one.
type Intent struct {
	Action Action
	Preset Preset
}

// Preset is an axis aligned plane orientation
type Preset int

const (
	PresetXY Preset = iota
	PresetXZ
	PresetYZ
)

// Presets lists the presets in control panel order
var Presets = []Preset{PresetXY, PresetXZ, PresetYZ}

// Normal returns the plane normal of the preset
func (p Preset) Normal() geometry.Vector3 {
	switch p {
	case PresetXY:
		return geometry.UnitZ
	case PresetYZ:
		return geometry.UnitX
	default:
		return geometry.UnitY
	}
}

// Label is the button caption of the preset
func (p Preset) Label() string {
	switch p {
	case PresetXY:
		return "XY Plane (Z-normal)"
	case PresetYZ:
		return "YZ Plane (X-normal)"
	default:
		return "XZ Plane (Y-normal)"
	}
}
