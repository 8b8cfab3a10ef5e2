// Package operations runs the analysis sections of a filmeda run.
//
// Each section is an independent unit of work: it reads the shared,
// immutable film table from the Environment, computes one aggregate table
// and writes one chart artifact (plus, optionally, the aggregate as CSV).
// Sections never depend on one another.
//
// Core Components:
//
// Section: the interface every analysis implements. BaseSection carries the
// ID and display name.
//
// Registry: keeps sections in registration order and rejects duplicates.
//
// Runner: executes the requested sections one after another. A failure or a
// panic is recorded on that section's SectionState and the run moves on.
// Each section gets its own span, metrics and log context.
//
// Report: the states of every section of a run, written as manifest.json.
//
// Example usage:
//
//	registry, _ := operations.NewDefaultRegistry()
//	runner := operations.NewRunner(registry, env, tracer)
//	report, err := runner.Run(ctx)
//	if report.HasFailures() {
//		os.Exit(2)
//	}
package operations
