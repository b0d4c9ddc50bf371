package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/geoplane/internal/sample"
	"github.com/philipparndt/geoplane/pkg/meshio"
)

var (
	sampleOutput string
	sampleSize   float64
	sampleCells  int
)

var sampleCmd = &cobra.Command{
	Use:       "sample <shape>",
	Short:     "Generate a test mesh as binary STL",
	Long:      "Tessellates a simple solid (" + strings.Join(sample.Shapes(), ", ") + ") with marching cubes.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: sample.Shapes(),
	RunE:      runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "Output file (default <shape>.stl)")
	sampleCmd.Flags().Float64VarP(&sampleSize, "size", "s", 2, "Overall size of the solid")
	sampleCmd.Flags().IntVar(&sampleCells, "cells", sample.DefaultCells, "Marching cubes resolution")
}

func runSample(cmd *cobra.Command, args []string) error {
	shape := args[0]
	solid, err := sample.Solid(shape, sampleSize)
	if err != nil {
		return err
	}

	output := sampleOutput
	if output == "" {
		output = strings.ToLower(shape) + ".stl"
	}

	triangles := sample.Triangles(solid, sampleCells)

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := meshio.WriteSTL(file, shape, triangles); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d triangles to %s\n", len(triangles), output)
	return nil
}
