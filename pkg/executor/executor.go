package executor

import (
	"context"
	"time"

	"github.com/alessio/shellescape"
	"github.com/rs/zerolog"

	"github.com/magma1447/mergerfs-tools/pkg/config"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/logging"
	"github.com/magma1447/mergerfs-tools/pkg/planner"
)

// Separator chains rendered lines so a dry run reads as one sequence
const Separator = " &&"

// Options contains configuration for the executor
type Options struct {
	Transfer config.CommandConfig
	Prune    config.CommandConfig
	Runner   Runner
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
	// OnStart, when set, is called with the rendered line before each
	// operation runs.
	OnStart func(op planner.Operation, line string)
}

// Result is the outcome of one operation
type Result struct {
	Operation planner.Operation
	Command   []string
	Error     error
	Duration  time.Duration
	// Skipped is set when the run was cancelled before this operation
	Skipped bool
}

// Success reports whether the operation ran and exited zero
func (r Result) Success() bool {
	return !r.Skipped && r.Error == nil
}

// Executor renders and runs plan operations
type Executor struct {
	transfer config.CommandConfig
	prune    config.CommandConfig
	runner   Runner
	logger   zerolog.Logger
	onStart  func(op planner.Operation, line string)
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	runner := opts.Runner
	if runner == nil {
		runner = NewExecRunner()
	}

	return &Executor{
		transfer: opts.Transfer,
		prune:    opts.Prune,
		runner:   runner,
		logger:   logger,
		onStart:  opts.OnStart,
	}
}

// FromConfig creates an executor using the commands in cfg
func FromConfig(cfg *config.Config, runner Runner) *Executor {
	return New(Options{
		Transfer: cfg.Transfer,
		Prune:    cfg.Prune,
		Runner:   runner,
	})
}

// Command returns the argv of op
func (e *Executor) Command(op planner.Operation) []string {
	switch op.Kind {
	case planner.OpTransfer:
		argv := make([]string, 0, len(e.transfer.Args)+3)
		argv = append(argv, e.transfer.Command)
		argv = append(argv, e.transfer.Args...)
		return append(argv, op.Source, op.Dest)
	case planner.OpPruneEmptyDirs:
		argv := make([]string, 0, len(e.prune.Args)+2)
		argv = append(argv, e.prune.Command, op.Source)
		return append(argv, e.prune.Args...)
	}
	return nil
}

// Render returns op as a shell-quoted command line
func (e *Executor) Render(op planner.Operation) string {
	return shellescape.QuoteCommand(e.Command(op))
}

// RenderPlan renders every operation, one line each, chaining all but the
// last with Separator.
func (e *Executor) RenderPlan(plan *planner.Plan) []string {
	lines := make([]string, 0, len(plan.Operations))
	for i, op := range plan.Operations {
		line := e.Render(op)
		if i < len(plan.Operations)-1 {
			line += Separator
		}
		lines = append(lines, line)
	}
	return lines
}

// Run executes the plan's operations in order and returns one Result per
// operation. Failures do not stop the plan; cancellation of ctx does,
// marking the remaining operations as skipped.
func (e *Executor) Run(ctx context.Context, plan *planner.Plan) []Result {
	results := make([]Result, 0, len(plan.Operations))

	for _, op := range plan.Operations {
		argv := e.Command(op)
		if ctx.Err() != nil {
			results = append(results, Result{Operation: op, Command: argv, Skipped: true})
			continue
		}
		results = append(results, e.runOperation(ctx, op, argv))
	}

	return results
}

func (e *Executor) runOperation(ctx context.Context, op planner.Operation, argv []string) Result {
	start := time.Now()

	if e.onStart != nil {
		e.onStart(op, shellescape.QuoteCommand(argv))
	}
	logging.LogCommand(e.logger, argv[0], argv[1:])
	done := logging.LogOperationStart(e.logger, op.Kind.String())
	defer done()

	result := Result{Operation: op, Command: argv}
	if err := e.runner.Run(ctx, argv[0], argv[1:]...); err != nil {
		result.Error = errors.Wrapf(err, errors.ErrCommandExecute, "%s of %s failed", op.Kind, op.Source).
			WithDetail("command", argv[0])
		e.logger.Error().
			Err(err).
			Str("operation", op.Kind.String()).
			Str("source", op.Source).
			Msg("Operation failed, continuing with the next one")
	}
	result.Duration = time.Since(start)

	return result
}
