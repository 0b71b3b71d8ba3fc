// landtool generates and inspects distant land scenes.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "landtool",
		Usage: "generate and inspect distant land scenes",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "write a synthetic scene",
				ArgsUsage: "<scene.yaml>",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "random seed"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 5000, Usage: "number of statics"},
					&cli.Float64Flag{Name: "extent", Value: 8192, Usage: "world side length"},
					&cli.IntFlag{Name: "textures", Value: 32, Usage: "distinct textures"},
					&cli.IntFlag{Name: "meshes", Value: 64, Usage: "distinct meshes"},
					&cli.Float64Flag{Name: "alpha", Value: 0.25, Usage: "share of alpha-blended meshes"},
				},
				Action: cmdGenerate,
			},
			{
				Name:      "stats",
				Usage:     "build the quadtree for a scene and print its shape",
				ArgsUsage: "<scene.yaml>",
				Flags:     treeFlags(),
				Action:    cmdStats,
			},
			{
				Name:      "query",
				Usage:     "run a visibility query from a camera",
				ArgsUsage: "<scene.yaml>",
				Flags: append(treeFlags(),
					&cli.Float64SliceFlag{Name: "eye", Value: cli.NewFloat64Slice(0, 200, 0), Usage: "camera position x,y,z"},
					&cli.Float64SliceFlag{Name: "target", Value: cli.NewFloat64Slice(0, 0, -1000), Usage: "look-at point x,y,z"},
					&cli.Float64Flag{Name: "fov", Value: 60, Usage: "vertical field of view, degrees"},
					&cli.Float64Flag{Name: "aspect", Value: 16.0 / 9.0, Usage: "aspect ratio"},
					&cli.Float64Flag{Name: "far", Value: 12000, Usage: "far plane"},
					&cli.Float64Flag{Name: "radius", Usage: "limit to a view sphere around the eye (0 = off)"},
					&cli.IntFlag{Name: "limit", Value: 10, Usage: "meshes to list"},
				),
				Action: cmdQuery,
			},
		},
	}
}

func treeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "max-depth", Value: 6, Usage: "maximum subdivision depth"},
		&cli.IntFlag{Name: "merge-threshold", Value: 1, Usage: "leaf mesh count collapsed by optimize"},
	}
}
