package qemviz

import "log/slog"

// Assembler attaches newly generated fragment files to a container with a
// deterministic layout. It keeps no state between calls; the container is
// owned by the caller.
type Assembler struct {
	Options Options
	Loader  FragmentLoader
	Logger  *slog.Logger
	Metrics *Metrics
}

type AssemblerOption func(*Assembler)

func WithLoader(l FragmentLoader) AssemblerOption {
	return func(a *Assembler) { a.Loader = l }
}

func WithLogger(l *slog.Logger) AssemblerOption {
	return func(a *Assembler) { a.Logger = l }
}

func WithMetrics(m *Metrics) AssemblerOption {
	return func(a *Assembler) { a.Metrics = m }
}

// NewAssembler defaults to the built-in loader registry and a silent logger.
func NewAssembler(opts Options, options ...AssemblerOption) *Assembler {
	a := &Assembler{
		Options: opts,
		Loader:  NewRegistry(),
		Logger:  NopLogger(),
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// Assemble attaches every fragment of logicalName in listing that is not
// attached to existing yet, and returns the container with the records
// attached by this call.
//
// A nil listing means the fragment directory does not exist; existing is
// returned unchanged. A nil existing container is created on demand. Files
// that fail to load are logged and skipped without using up a slot.
func (a *Assembler) Assemble(logicalName string, existing *Container, listing *Listing) (*Container, []FragmentRecord) {
	if listing == nil {
		a.Metrics.directoryUnready(logicalName)
		a.logger().Debug("fragment directory not ready", "object", logicalName)
		return existing, nil
	}

	container := existing
	if container == nil {
		container = NewContainer(logicalName, a.Options.ParentOffset)
		a.logger().Debug("created container", "object", logicalName)
	}

	var attached []FragmentRecord
	for _, p := range listing.Paths {
		if !MatchesFragment(logicalName, a.Options.Extension, p) {
			continue
		}

		name := FragmentName(p)
		if _, ok := container.Find(name); ok {
			continue
		}

		mesh, err := a.loader().Load(p)
		if err != nil {
			a.Metrics.loadFailed(logicalName)
			a.logger().Warn("failed to load fragment", "object", logicalName, "path", p, "error", err)
			continue
		}

		slot := container.Len()
		rec := FragmentRecord{
			SourcePath:  p,
			LogicalName: name,
			SlotIndex:   slot,
			Placement:   PlacementFor(slot, a.Options),
			Mesh:        mesh,
		}
		container.attach(rec)
		attached = append(attached, rec)
		a.Metrics.attached(logicalName)
	}

	if len(attached) > 0 {
		a.logger().Info("attached fragments", "object", logicalName, "count", len(attached), "total", container.Len())
	}
	return container, attached
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return NopLogger()
	}
	return a.Logger
}

// loader falls back to the built-in registry for a zero Assembler.
func (a *Assembler) loader() FragmentLoader {
	if a.Loader == nil {
		a.Loader = NewRegistry()
	}
	return a.Loader
}
