package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/geoplane/internal/session"
	"github.com/philipparndt/geoplane/pkg/meshio"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <mesh>",
	Short: "Compute geodesic distances from the plane and write them to a text file",
	Long: `Runs the same computation as the viewer without opening a window: the mesh
is cut with the configured plane, distances are propagated from the crossing
edges and written in the viewer's export format.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if exportOutput != "" {
		cfg.Export.Filename = exportOutput
	}

	_, g, err := meshio.Load(path)
	if err != nil {
		return err
	}

	state, err := session.New(path, g, cfg, session.LogNotifier{}, nil)
	if err != nil {
		return err
	}
	if err := state.Recompute(); err != nil {
		return err
	}
	return state.Export()
}
