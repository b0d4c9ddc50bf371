package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/geoplane/internal/export"
	"github.com/philipparndt/geoplane/pkg/geodesic"
)

const stripOBJ = `# two triangles spanning y in [-1, 1]
v 0 -1 0
v 1 -1 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath, engineName, normalText, planeHeight = "", geodesic.FastMarchingName, "", 0
		exportOutput = ""
		for _, name := range []string{"config", "engine", "normal", "height"} {
			if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
		if f := exportCmd.Flags().Lookup("output"); f != nil {
			f.Changed = false
		}
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	resetFlags(t)

	require.NoError(t, rootCmd.ParseFlags([]string{"--engine", "dijkstra", "--normal", "0,0,2", "--height", "0.5"}))
	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)

	assert.Equal(t, geodesic.DijkstraName, cfg.Geodesic.Engine)
	assert.Equal(t, 0.5, cfg.Plane.Height)
	assert.Equal(t, 2.0, cfg.Plane.NormalZ)

	p, err := cfg.PlaneValue()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.Normal.Z, 1e-12)
}

func TestLoadConfigRejectsNormal(t *testing.T) {
	resetFlags(t)

	require.NoError(t, rootCmd.ParseFlags([]string{"--normal", "1,2"}))
	_, err := loadConfig(rootCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--normal")
}

func TestExportCommand(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	meshPath := filepath.Join(dir, "strip.obj")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(meshPath, []byte(stripOBJ), 0o644))

	rootCmd.SetArgs([]string{"export", meshPath, "-o", outPath, "--engine", "dijkstra"})
	require.NoError(t, rootCmd.Execute())

	file, err := export.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 4, file.NumVertices)
	assert.InDelta(t, -0.975, file.Height, 1e-12)

	want := []float64{0.025, 0.025, 1.975, 1.975}
	got := file.Distances()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "vertex %d", i)
	}
}

func TestArgumentErrorsPrintUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
		{"too many args", []string{"a.obj", "b.obj"}, "accepts at most 1 arg(s), received 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()
			require.Error(t, err)
			reportError(rootCmd, err)

			assert.Contains(t, out.String(), "Usage:")
			assert.Contains(t, out.String(), tt.want)
			assert.Equal(t, 1, strings.Count(out.String(), "Error:"), out.String())
		})
	}
}

func TestRunErrorsSkipUsage(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() { exportCmd.SilenceUsage = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"export", filepath.Join(t.TempDir(), "missing.obj")})

	err := rootCmd.Execute()
	require.Error(t, err)
	reportError(rootCmd, err)

	assert.NotContains(t, out.String(), "Usage:")
	assert.Equal(t, 1, strings.Count(out.String(), "Error:"), out.String())
}
