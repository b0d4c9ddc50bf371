package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/geoplane/internal/plane"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/pkg/meshio"
)

var intersectLimit int

var intersectCmd = &cobra.Command{
	Use:   "intersect <mesh>",
	Short: "List the mesh edges crossed by the plane",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntersect,
}

func init() {
	rootCmd.AddCommand(intersectCmd)

	intersectCmd.Flags().IntVar(&intersectLimit, "limit", 20, "Number of crossings to display (0 for all)")
}

func runIntersect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.PlaneValue()
	if err != nil {
		return err
	}

	m, g, err := meshio.Load(args[0])
	if err != nil {
		return err
	}

	cut, err := plane.Intersect(g, p)
	if err != nil {
		return err
	}

	fmt.Printf("Plane: normal %s, height %g\n", analysis.FormatVector(p.Normal), p.Offset)
	fmt.Printf("Crossed edges: %d of %d\n", cut.Count(), m.NEdges())
	fmt.Printf("Cut segments: %d\n\n", len(cut.Segments(g)))

	shown := cut.Sources
	if intersectLimit > 0 && len(shown) > intersectLimit {
		shown = shown[:intersectLimit]
	}
	positions := cut.Positions(g)

	fmt.Printf("%-8s %-10s %s\n", "Edge", "t", "Position")
	for i, src := range shown {
		fmt.Printf("%-8d %-10.6f %s\n", src.Edge, src.T, analysis.FormatVector(positions[i]))
	}
	if len(shown) < cut.Count() {
		fmt.Printf("... %d more\n", cut.Count()-len(shown))
	}
	return nil
}
