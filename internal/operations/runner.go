package operations

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"filmeda/internal/infrastructure"
)

// Runner executes sections one after another against a shared environment
type Runner struct {
	registry *Registry
	env      *Environment
	tracer   *SectionTracer
	logger   *slog.Logger
}

// NewRunner creates a runner. A nil tracer records nothing.
func NewRunner(registry *Registry, env *Environment, tracer *SectionTracer) *Runner {
	if tracer == nil {
		tracer, _ = NewSectionTracer(nil)
	}
	return &Runner{
		registry: registry,
		env:      env,
		tracer:   tracer,
		logger:   infrastructure.WithComponent(slog.Default(), "runner"),
	}
}

// SetLogger replaces the runner logger
func (r *Runner) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = infrastructure.WithComponent(logger, "runner")
	}
}

// Run executes the sections named by ids, or all of them, in registration
// order. A failing or panicking section is recorded and the run goes on;
// once ctx is done the remaining sections are skipped. The returned error
// is reserved for problems that prevent the run from starting.
func (r *Runner) Run(ctx context.Context, ids ...string) (*Report, error) {
	if r.registry == nil {
		return nil, NewValidationError("", "runner has no registry")
	}
	if err := r.env.validate(); err != nil {
		return nil, err
	}

	sections, err := r.registry.Select(ids...)
	if err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	report := NewReport(infrastructure.GetRunID(ctx))

	ctx, span := r.tracer.TraceRun(ctx, report.RunID, len(sections))
	defer span.End()

	r.logRunStart(ctx, sections)

	for _, section := range sections {
		state := NewSectionState(section.ID(), section.Name())
		report.Add(state)

		if ctx.Err() != nil {
			state.Skip("run cancelled")
			r.logSectionSkipped(ctx, state)
			continue
		}
		r.runSection(ctx, section, state)
	}

	report.Finish()
	r.logRunComplete(ctx, report)
	return report, nil
}

// runSection drives one section through its state transitions
func (r *Runner) runSection(ctx context.Context, section Section, state *SectionState) {
	ctx = infrastructure.WithSection(ctx, section.ID())
	ctx, span := r.tracer.TraceSection(ctx, section)
	defer span.End()

	state.Start()
	r.logSectionStart(ctx, section)

	outcome, err := r.execute(ctx, section)
	if err != nil {
		state.Fail(WrapError(err, section.ID()))
		r.logSectionError(ctx, state)
	} else {
		if outcome == nil {
			outcome = &Outcome{}
		}
		state.Complete(outcome)
		r.logSectionComplete(ctx, state)
	}

	r.tracer.RecordSection(ctx, span, state)
}

// execute calls the section, turning a panic into a fatal error
func (r *Runner) execute(ctx context.Context, section Section) (outcome *Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "section_panic",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			fatal := NewFatalError(fmt.Sprintf("section panicked: %v", rec), nil)
			fatal.Section = section.ID()
			outcome, err = nil, fatal
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, NewCancellationError(section.ID())
	}
	return section.Execute(ctx, r.env)
}
