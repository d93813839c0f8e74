package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/smasonuk/qemviz"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qemviz",
	Short: "qemviz inspects QEM simplification output",
	Long: `qemviz reads the bounds metadata written by the QEM mesh builder and
assembles generated mesh fragments into a deterministic side by side layout.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "YAML options file")
	rootCmd.PersistentFlags().String("name", "", "Logical object name (overrides the options file)")
	rootCmd.PersistentFlags().String("root", "", "Resource root (overrides the options file)")
	rootCmd.PersistentFlags().String("ext", "", "Fragment extension (overrides the options file)")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return qemviz.NewLogger(qemviz.ParseLevel(level))
}

// loadOptions reads the options file, if any, and applies flag overrides.
func loadOptions(cmd *cobra.Command) (qemviz.Options, error) {
	opts := qemviz.DefaultOptions()

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		var err error
		opts, err = qemviz.LoadOptions(path)
		if err != nil {
			return qemviz.Options{}, err
		}
	}

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		opts.Name = name
	}
	if cmd.Flags().Changed("root") {
		opts.Root, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("ext") {
		opts.Extension, _ = cmd.Flags().GetString("ext")
	}
	return opts, opts.Validate()
}
