// Package pipeline drives the directory traversal and runs the per-file
// parse, inference and rendering steps.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tilmweber/antismash-hmm-meta/internal/hmm"
	"github.com/tilmweber/antismash-hmm-meta/internal/model"
	"github.com/tilmweber/antismash-hmm-meta/internal/render"
	"github.com/tilmweber/antismash-hmm-meta/internal/source"
)

// Pipeline walks a directory tree and, for every profile file it finds,
// runs parse → infer → render to completion before moving on. Strictly
// sequential; each record lives for exactly one file.
type Pipeline struct {
	fs       afero.Fs
	cfg      *model.Config
	renderer *render.Renderer

	// Out receives the per-directory progress lines, ErrOut the skip
	// diagnostics. Both default to the process streams.
	Out    io.Writer
	ErrOut io.Writer
}

// NewPipeline creates a pipeline reading and writing through fs.
func NewPipeline(fs afero.Fs, cfg *model.Config) *Pipeline {
	return &Pipeline{
		fs:       fs,
		cfg:      cfg,
		renderer: render.NewRenderer(fs, cfg.Output.TableName, cfg.Output.JSONName),
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}
}

// Run performs a pre-order walk of the tree rooted at root. Subdirectories
// whose name is on the exclusion list are pruned before descent (the root
// itself is never pruned); files matching the configured pattern are
// processed in the order the walk yields them. The first error halts the
// whole run unless skip-errors is configured, in which case it is logged
// and the walk continues.
func (p *Pipeline) Run(root string) error {
	return afero.Walk(p.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && p.excluded(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		match, err := filepath.Match(p.cfg.Scan.Pattern, info.Name())
		if err != nil {
			return fmt.Errorf("bad scan pattern %q: %w", p.cfg.Scan.Pattern, err)
		}
		if !match {
			return nil
		}
		if err := p.processFile(filepath.Dir(path), info.Name()); err != nil {
			if p.cfg.Scan.SkipErrors {
				fmt.Fprintf(p.ErrOut, "skipping %s: %v\n", path, err)
				return nil
			}
			return err
		}
		return nil
	})
}

// processFile runs the full per-file pipeline: parse the header, infer the
// provenance, write both summaries next to the source file.
func (p *Pipeline) processFile(dir, name string) error {
	rec, err := hmm.Parse(p.fs, dir, name)
	if err != nil {
		return err
	}
	source.Infer(rec)

	fmt.Fprintln(p.Out, "Directory:", dir)

	if err := p.renderer.RenderTable(dir, rec); err != nil {
		return err
	}
	return p.renderer.RenderJSON(dir, rec)
}

func (p *Pipeline) excluded(name string) bool {
	for _, e := range p.cfg.Scan.Exclude {
		if name == e {
			return true
		}
	}
	return false
}
