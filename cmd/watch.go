package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smasonuk/qemviz"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Attach fragments as the generator writes them",
	Long: `Watches <root>/<category>/<name> and runs an import pass whenever it
changes, and on a fixed interval while the directory does not exist yet.
The bounds metadata next to the fragments is reloaded after each pass that
attached something.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		addr, _ := cmd.Flags().GetString("metrics-addr")
		return runWatch(cmd, interval, addr)
	},
}

func init() {
	watchCmd.Flags().Duration("interval", time.Second, "Polling interval while the fragment directory is missing")
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, interval time.Duration, metricsAddr string) error {
	logger := newLogger(cmd)

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Name == "" {
		return errors.New("no object name: set --name or name in the options file")
	}

	reg := prometheus.NewRegistry()
	metrics := qemviz.NewMetrics(reg)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	im := qemviz.NewImporter(qemviz.OSLister{}, qemviz.NewAssembler(opts,
		qemviz.WithLogger(logger),
		qemviz.WithMetrics(metrics),
	))

	bounds := qemviz.NewBoundsCache(os.DirFS(opts.Root), qemviz.MetadataPath(opts.Category, opts.Name, opts.Name))
	bounds.Logger = logger
	bounds.Metrics = metrics

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := opts.FragmentDir()
	watching := false
	watch := func() {
		if watching {
			return
		}
		if err := watcher.Add(dir); err == nil {
			watching = true
			logger.Debug("watching fragment directory", "dir", dir)
		}
	}

	tick := func() {
		watch()
		attached, err := im.Tick()
		if err != nil {
			logger.Error("import pass failed", "dir", dir, "error", err)
			return
		}
		for _, rec := range attached {
			printFragment(cmd.OutOrStdout(), rec)
		}
		if len(attached) > 0 {
			bounds.Invalidate()
			visible := bounds.Visible(opts.SelectedIndex)
			logger.Info("bounds refreshed", "object", opts.Name, "visible", visible.Len())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching", "object", opts.Name, "fragments", im.Container().Len())
			return nil

		case <-ticker.C:
			if !watching {
				tick()
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) && filepath.Clean(ev.Name) == filepath.Clean(dir) {
				// directory deleted; poll until the generator recreates it
				watching = false
				im.Invalidate()
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename) {
				tick()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
