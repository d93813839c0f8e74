package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/smasonuk/qemviz"
	"github.com/spf13/cobra"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds <file>",
	Short: "Print the bounding regions of a metadata file",
	Long: `Parses a metadata file and prints each accepted region as its center,
extent and fill color. Use --index to show a single cluster (1-based); 0
shows all of them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetUint("index")
		return runBounds(cmd, args[0], index)
	},
}

func init() {
	boundsCmd.Flags().Uint("index", 0, "Cluster to show (0 for all)")
	rootCmd.AddCommand(boundsCmd)
}

func runBounds(cmd *cobra.Command, file string, index uint) error {
	logger := newLogger(cmd)

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	model, report, err := qemviz.LoadBounds(os.DirFS(filepath.Dir(file)), filepath.Base(file))
	if err != nil {
		return err
	}
	logger.Info("loaded bounds", "file", file, "regions", report.Accepted, "skipped", report.Skipped)

	printRegions(cmd.OutOrStdout(), model.Select(index), opts.FillAlpha)
	return nil
}

func printRegions(w io.Writer, model qemviz.BoundsModel, alpha float64) {
	for i, r := range model {
		fill := r.Color.RGBA(alpha)
		size := r.Size()
		fmt.Fprintf(w, "%d\tcenter=(%.4f, %.4f, %.4f)\tsize=(%.4f, %.4f, %.4f)\trgba=#%02x%02x%02x%02x\n",
			i+1,
			r.Center.X(), r.Center.Y(), r.Center.Z(),
			size.X(), size.Y(), size.Z(),
			fill.R, fill.G, fill.B, fill.A)
	}
}
