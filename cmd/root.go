package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/geoplane/internal/app"
	"github.com/philipparndt/geoplane/internal/config"
	"github.com/philipparndt/geoplane/pkg/geodesic"
	"github.com/philipparndt/geoplane/pkg/meshio"
	"github.com/philipparndt/geoplane/version"
)

// DefaultMesh is opened when no mesh file is given
const DefaultMesh = "bunny.obj"

var (
	configPath  string
	engineName  string
	normalText  string
	planeHeight float64
)

var rootCmd = &cobra.Command{
	Use:   "geoplane [mesh]",
	Short: "Geodesic distances from a cutting plane",
	Long: `geoplane loads a triangle mesh (OBJ, OFF, STL or OpenSCAD), cuts it with a
plane and shows the geodesic distance of every vertex to the cut curve.
The distances can be exported to a text file from the control panel.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	// Execute prints the error; usage is printed by cobra for flag and
	// argument errors only
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags and arguments are valid once this runs
		cmd.SilenceUsage = true
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := DefaultMesh
		if len(args) == 1 {
			path = args[0]
		} else {
			fmt.Printf("No mesh file specified, loading default: %s\n", DefaultMesh)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		_, g, err := meshio.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load mesh %s: %w", path, err)
		}
		return app.Run(path, g, cfg)
	},
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("geoplane: ")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "INI style configuration file")
	flags.StringVarP(&engineName, "engine", "e", geodesic.FastMarchingName, "Geodesic solver (fmm or dijkstra)")
	flags.StringVarP(&normalText, "normal", "n", "", "Plane normal as x,y,z")
	flags.Float64Var(&planeHeight, "height", 0, "Signed plane offset along the normal")
}

// loadConfig reads the configuration file and applies command line
// overrides on top of it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Geodesic.Engine = engineName
	}
	if flags.Changed("normal") {
		n, err := config.ParseVector(normalText)
		if err != nil {
			return nil, fmt.Errorf("invalid --normal: %w", err)
		}
		cfg.SetNormal(n)
	}
	if flags.Changed("height") {
		cfg.Plane.Height = planeHeight
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd, err)
		os.Exit(1)
	}
}

func reportError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
