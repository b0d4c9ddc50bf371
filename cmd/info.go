package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/geoplane/internal/export"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/pkg/meshio"
)

var (
	infoEdges     int
	infoDistances string
)

var infoCmd = &cobra.Command{
	Use:   "info <mesh>",
	Short: "Display general information about a mesh",
	Long: `Show vertex, edge and face counts, surface area, bounding box and edge
statistics. With --distances an export file is summarized as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "l", 0, "Also list the N longest and shortest edges")
	infoCmd.Flags().StringVarP(&infoDistances, "distances", "d", "", "Exported distance file to summarize")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	_, g, err := meshio.Load(filename)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeMesh(g)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Edges: %d (%d on the boundary)\n", result.EdgeCount, result.BoundaryEdges)
	fmt.Printf("  Faces: %d\n", result.FaceCount)
	if result.Isolated > 0 {
		fmt.Printf("  Isolated vertices: %d\n", result.Isolated)
	}
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n\n", result.Dimensions.Z)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)

	if infoEdges > 0 {
		printEdges(fmt.Sprintf("Top %d Longest Edges", infoEdges), analysis.FindLongestEdges(result, infoEdges))
		printEdges(fmt.Sprintf("Top %d Shortest Edges", infoEdges), analysis.FindShortestEdges(result, infoEdges))
	}

	if infoDistances == "" {
		return nil
	}

	file, err := export.ReadFile(infoDistances)
	if err != nil {
		return err
	}
	if len(file.Rows) != result.VertexCount {
		fmt.Printf("\nwarning: %s has %d rows but the mesh has %d vertices\n", infoDistances, len(file.Rows), result.VertexCount)
	}

	stats := analysis.AnalyzeDistances(file.Distances())
	fmt.Printf("\nGeodesic Distances (%s):\n", infoDistances)
	fmt.Printf("  Plane normal: %s\n", analysis.FormatVector(file.Normal))
	fmt.Printf("  Plane height: %g\n", file.Height)
	fmt.Printf("  Reachable: %d of %d\n", stats.Reachable, stats.Count)
	fmt.Printf("  Minimum: %.6f\n", stats.Min)
	fmt.Printf("  Maximum: %.6f\n", stats.Max)
	fmt.Printf("  Mean: %.6f (std dev %.6f)\n", stats.Mean, stats.StdDev)
	fmt.Printf("  Median: %.6f\n", stats.Median)
	return nil
}

func printEdges(title string, edges []analysis.EdgeInfo) {
	fmt.Printf("\n%s\n", title)
	fmt.Println("====================")
	fmt.Printf("%-8s %-35s %-35s %-15s\n", "Edge", "Start", "End", "Length")
	for _, edge := range edges {
		fmt.Printf("%-8d %-35s %-35s %.6f\n", edge.Edge, analysis.FormatVector(edge.Start), analysis.FormatVector(edge.End), edge.Length)
	}
}
