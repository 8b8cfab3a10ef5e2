package operations

import (
	"context"
	"log/slog"

	apperrors "filmeda/internal/errors"
)

// logRunStart logs the start of a run
func (r *Runner) logRunStart(ctx context.Context, sections []Section) {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID()
	}
	r.logger.InfoContext(ctx, "run_start",
		slog.Int("rows", r.env.Table.Len()),
		slog.Any("sections", ids))
}

// logRunComplete logs the completion of a run
func (r *Runner) logRunComplete(ctx context.Context, report *Report) {
	level := slog.LevelInfo
	if report.HasFailures() {
		level = slog.LevelWarn
	}
	r.logger.Log(ctx, level, "run_complete",
		slog.Int("completed", report.Count(SectionStatusCompleted)),
		slog.Int("failed", report.Count(SectionStatusFailed)),
		slog.Int("skipped", report.Count(SectionStatusSkipped)),
		slog.Duration("duration", report.Duration()))
}

// logSectionStart logs the start of a section
func (r *Runner) logSectionStart(ctx context.Context, section Section) {
	r.logger.InfoContext(ctx, "section_start",
		slog.String("name", section.Name()))
}

// logSectionComplete logs the completion of a section
func (r *Runner) logSectionComplete(ctx context.Context, state *SectionState) {
	attrs := []any{
		slog.Duration("duration", state.Duration()),
		slog.Int("artifacts", state.ArtifactCount()),
	}
	if state.Outcome != nil {
		attrs = append(attrs,
			slog.Int("rows_in", state.Outcome.RowsIn),
			slog.Int("rows_out", state.Outcome.RowsOut),
			slog.String("summary", state.Outcome.Summary))
	}
	r.logger.InfoContext(ctx, "section_complete", attrs...)
}

// logSectionError logs a section failure. Failures that come from what the
// dataset holds are warnings; anything else is an error.
func (r *Runner) logSectionError(ctx context.Context, state *SectionState) {
	errorMsg := "unknown error"
	if state.Error != nil {
		errorMsg = state.Error.Error()
	}
	attrs := []any{
		slog.String("error", errorMsg),
		slog.String("error_type", string(GetErrorType(state.Error))),
		slog.Duration("duration", state.Duration()),
	}
	if code := apperrors.CodeOf(state.Error); code != "" {
		attrs = append(attrs, slog.String("error_code", string(code)))
	}
	r.logger.Log(ctx, failureLevel(state.Error), "section_error", attrs...)
}

func failureLevel(err error) slog.Level {
	switch {
	case apperrors.IsMissingColumn(err), apperrors.IsEmptySelection(err), apperrors.IsInvalidInput(err):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// logSectionSkipped logs a skipped section
func (r *Runner) logSectionSkipped(ctx context.Context, state *SectionState) {
	r.logger.WarnContext(ctx, "section_skipped",
		slog.String("section", state.ID),
		slog.String("reason", state.Message))
}
