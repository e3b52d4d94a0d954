// Package consolidate drives a consolidation run over the directories
// named on the command line.
//
// Directories are handled strictly one after another: resolve the branch
// copies, measure them, build a plan, then print it or run it. Nothing is
// shared between directories and nothing is persisted, so a run that was
// interrupted is resumed by running it again.
package consolidate

import (
	"context"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/magma1447/mergerfs-tools/pkg/branches"
	"github.com/magma1447/mergerfs-tools/pkg/config"
	"github.com/magma1447/mergerfs-tools/pkg/dirsize"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/executor"
	"github.com/magma1447/mergerfs-tools/pkg/filesystem"
	"github.com/magma1447/mergerfs-tools/pkg/logging"
	"github.com/magma1447/mergerfs-tools/pkg/mount"
	"github.com/magma1447/mergerfs-tools/pkg/planner"
	"github.com/magma1447/mergerfs-tools/pkg/ui"
	"github.com/magma1447/mergerfs-tools/pkg/xattr"
)

// Options configures a Consolidator. Zero values select the host
// filesystem, the getxattr reader and real processes.
type Options struct {
	Config *config.Config
	// Execute runs the plan instead of only printing it
	Execute bool
	// Verbose prints progress and skip diagnostics as shell comments
	Verbose bool
	Out     io.Writer
	Format  ui.Format

	FS        afero.Fs
	Attrs     xattr.Getter
	Runner    executor.Runner
	Canonical func(string) (string, error)
}

// Summary counts what a run did
type Summary struct {
	Processed           int
	Skipped             int
	AlreadyConsolidated int
	Consolidated        int
	Operations          int
	FailedOperations    int
}

// Consolidator processes input directories
type Consolidator struct {
	cfg       *config.Config
	execute   bool
	verbose   bool
	printer   *ui.Printer
	fs        afero.Fs
	attrs     xattr.Getter
	resolver  *branches.Resolver
	executor  *executor.Executor
	canonical func(string) (string, error)
	logger    zerolog.Logger

	// outErr holds the first failure to print a command line while executing
	outErr error
}

// New creates a Consolidator
func New(opts Options) *Consolidator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	attrs := opts.Attrs
	if attrs == nil {
		attrs = xattr.NewSystem()
	}
	canonical := opts.Canonical
	if canonical == nil {
		canonical = filesystem.Canonical
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	c := &Consolidator{
		cfg:       cfg,
		execute:   opts.Execute,
		verbose:   opts.Verbose,
		printer:   ui.NewPrinter(out, opts.Format),
		fs:        fs,
		attrs:     attrs,
		resolver:  branches.NewResolver(fs, attrs, cfg.Xattr.AllPaths),
		canonical: canonical,
		logger:    logging.GetLogger("consolidate"),
	}
	c.executor = executor.New(executor.Options{
		Transfer: cfg.Transfer,
		Prune:    cfg.Prune,
		Runner:   opts.Runner,
		OnStart: func(_ planner.Operation, line string) {
			if err := c.printer.Line(line); err != nil && c.outErr == nil {
				c.outErr = err
			}
		},
	})
	return c
}

// Run consolidates every directory in dirs, in order. It stops at the
// first hard error: a path that is not on a mergerfs mount, a failed
// attribute query, an unreadable branch or an output failure. Failed
// transfers and prunes are counted, not returned.
func (c *Consolidator) Run(ctx context.Context, dirs []string) (*Summary, error) {
	summary := &Summary{}
	done := logging.LogOperationStart(c.logger, "consolidate")
	defer done()

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := c.directory(ctx, dir, summary); err != nil {
			return summary, err
		}
	}

	c.logger.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("consolidated", summary.Consolidated).
		Int("failed_operations", summary.FailedOperations).
		Msg("Run finished")

	return summary, nil
}

func (c *Consolidator) directory(ctx context.Context, input string, summary *Summary) error {
	dir, err := c.canonical(input)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", input).Msg("Cannot resolve input")
		summary.Skipped++
		return c.comment("skipping %s: not a directory", input)
	}
	isDir, err := filesystem.IsDir(c.fs, dir)
	if err != nil || !isDir {
		summary.Skipped++
		return c.comment("skipping %s: not a directory", input)
	}

	m, err := mount.Open(c.fs, c.attrs, dir, c.cfg)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotMount, "%s is not a mergerfs mount", input).
			WithDetail("path", dir)
	}
	summary.Processed++
	if err := c.comment("%s (mergerfs %s at %s)", dir, m.Version, m.Root); err != nil {
		return err
	}

	paths, err := c.resolver.Resolve(dir)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		summary.AlreadyConsolidated++
		if len(paths) == 0 {
			return c.comment("%s: no branches found", dir)
		}
		return c.comment("%s: already consolidated on %s", dir, paths[0])
	}

	sized, err := dirsize.Measure(c.fs, paths)
	if err != nil {
		return err
	}
	plan := planner.Build(dir, sized)

	for _, b := range plan.Branches {
		if err := c.comment("  %s %s", humanize.IBytes(b.Size), b.Path); err != nil {
			return err
		}
	}
	if err := c.comment("target: %s", plan.Target); err != nil {
		return err
	}

	c.logger.Info().
		Str("directory", dir).
		Str("target", plan.Target).
		Strs("sources", plan.Sources()).
		Bool("execute", c.execute).
		Msg("Planned consolidation")

	summary.Consolidated++
	summary.Operations += len(plan.Operations)

	if !c.execute {
		for _, line := range c.executor.RenderPlan(plan) {
			if err := c.printer.Line(line); err != nil {
				return err
			}
		}
		return nil
	}

	c.outErr = nil
	results := c.executor.Run(ctx, plan)
	if c.outErr != nil {
		return c.outErr
	}
	for _, r := range results {
		if r.Success() {
			continue
		}
		summary.FailedOperations++
		if r.Skipped {
			continue
		}
		if err := c.warn("%s of %s failed: %v", r.Operation.Kind, r.Operation.Source, r.Error); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (c *Consolidator) comment(format string, args ...interface{}) error {
	if !c.verbose {
		return nil
	}
	return c.printer.Comment(format, args...)
}

func (c *Consolidator) warn(format string, args ...interface{}) error {
	if !c.verbose {
		return nil
	}
	return c.printer.Warn(format, args...)
}
