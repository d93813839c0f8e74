package main

import (
	"path/filepath"
	"strings"

	"github.com/fogleman/simplify"
	"github.com/smasonuk/qemviz"
	"github.com/spf13/cobra"
)

var lodCmd = &cobra.Command{
	Use:   "lod <src.stl>",
	Short: "Write a chain of simplified fragments and their bounds metadata",
	Long: `Loads a binary STL mesh and writes it, plus --levels progressively
simplified copies, as <name>_<i>.stl into the output directory together with
<name>_metadata.txt. By default the output goes to <root>/<category>/<name>,
where assemble and watch look for it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		levels, _ := cmd.Flags().GetInt("levels")
		return runLOD(cmd, args[0], out, levels)
	},
}

func init() {
	lodCmd.Flags().String("out", "", "Output directory (defaults to the fragment directory)")
	lodCmd.Flags().Int("levels", 5, "Number of simplified levels after the source")
	rootCmd.AddCommand(lodCmd)
}

func runLOD(cmd *cobra.Command, src, out string, levels int) error {
	logger := newLogger(cmd)

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	if out == "" {
		out = opts.FragmentDir()
	}

	mesh, err := simplify.LoadBinarySTL(src)
	if err != nil {
		return err
	}
	logger.Info("loaded source mesh", "file", src, "triangles", len(mesh.Triangles))

	paths, err := qemviz.GenerateLODs(mesh, opts.Name, out, levels)
	for _, p := range paths {
		logger.Info("wrote fragment", "file", p)
	}
	return err
}
