package qemviz

import "fmt"

// Importer drives assembly for one logical object across ticks. It owns the
// container; callers must not run Tick and Invalidate concurrently.
type Importer struct {
	Lister    DirLister
	Assembler *Assembler

	container *Container
}

func NewImporter(lister DirLister, assembler *Assembler) *Importer {
	return &Importer{Lister: lister, Assembler: assembler}
}

func (im *Importer) Options() Options {
	return im.Assembler.Options
}

// Container returns the current container, nil before the first successful
// scan or after Invalidate.
func (im *Importer) Container() *Container {
	return im.container
}

// Tick scans the fragment directory and attaches anything new. It does
// nothing while no object name is configured or the directory is missing.
func (im *Importer) Tick() ([]FragmentRecord, error) {
	opts := im.Assembler.Options
	if opts.Name == "" {
		return nil, nil
	}

	listing, err := Scan(im.Lister, opts.FragmentDir())
	if err != nil {
		return nil, err
	}

	var attached []FragmentRecord
	im.container, attached = im.Assembler.Assemble(opts.Name, im.container, listing)
	return attached, nil
}

// Invalidate detaches and drops the container.
func (im *Importer) Invalidate() {
	im.container.Invalidate()
	im.container = nil
}

// SetOptions applies new options. Any change invalidates the container so
// the next tick lays fragments out again.
func (im *Importer) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("could not apply options: %w", err)
	}
	if opts == im.Assembler.Options {
		return nil
	}
	im.Assembler.Options = opts
	im.Invalidate()
	return nil
}
