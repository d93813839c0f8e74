package main

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/qemviz"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the fragments of one object and print their placements",
	Long: `Runs a single import pass over <root>/<category>/<name> and prints the
slot, name and placement of every fragment that was attached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(cmd)
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command) error {
	logger := newLogger(cmd)

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Name == "" {
		return fmt.Errorf("no object name: set --name or name in the options file")
	}

	im := qemviz.NewImporter(qemviz.OSLister{}, qemviz.NewAssembler(opts, qemviz.WithLogger(logger)))
	if _, err := im.Tick(); err != nil {
		return err
	}

	c := im.Container()
	if c == nil {
		return fmt.Errorf("fragment directory %s does not exist", opts.FragmentDir())
	}
	printContainer(cmd.OutOrStdout(), c)
	return nil
}

func printContainer(w io.Writer, c *qemviz.Container) {
	fmt.Fprintf(w, "%s at (%g, %g, %g): %d fragments\n",
		c.Name, c.Position.X(), c.Position.Y(), c.Position.Z(), c.Len())
	for _, rec := range c.Fragments() {
		printFragment(w, rec)
	}
}

func printFragment(w io.Writer, rec qemviz.FragmentRecord) {
	p := rec.Placement
	yaw := mgl64.RadToDeg(2 * math.Atan2(p.Rotation.Y(), p.Rotation.W))
	triangles := "-"
	if rec.Mesh != nil {
		triangles = fmt.Sprint(rec.Mesh.TriangleCount())
	}
	fmt.Fprintf(w, "%d\t%s\tpos=(%g, %g, %g)\tyaw=%g\tscale=%g\ttriangles=%s\n",
		rec.SlotIndex, rec.LogicalName,
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		yaw, p.Scale, triangles)
}
